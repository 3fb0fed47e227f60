// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

// Package storagetest provides a conformance suite run against every storage
// backend so the in-memory and relational variants behave identically.
//
// Usage from a backend's tests:
//
//	func TestConformance(t *testing.T) {
//	    storagetest.Run(t, func(t *testing.T) *storage.Backend {
//	        return newBackend(t)
//	    })
//	}
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/filmorate/internal/models"
	"github.com/tomtom215/filmorate/internal/storage"
)

// Factory returns a fresh, empty backend with the default catalog seeded.
type Factory func(t *testing.T) *storage.Backend

// Run executes every conformance test against backends built by newBackend.
func Run(t *testing.T, newBackend Factory) {
	t.Helper()

	t.Run("Films", func(t *testing.T) { RunFilmStore(t, newBackend) })
	t.Run("Users", func(t *testing.T) { RunUserStore(t, newBackend) })
	t.Run("Catalog", func(t *testing.T) { RunCatalog(t, newBackend) })
}

// SampleFilm returns a valid film with no identifier.
func SampleFilm(name string) models.Film {
	return models.Film{
		Name:        name,
		Description: "A film called " + name,
		ReleaseDate: time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC),
		Duration:    136,
	}
}

// SampleUser returns a valid user with no identifier.
func SampleUser(login string) models.User {
	return models.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     "",
		Birthday: time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
}

// RunFilmStore checks the storage.FilmStore contract.
func RunFilmStore(t *testing.T, newBackend Factory) {
	ctx := context.Background()

	t.Run("AddAssignsUniqueIDs", func(t *testing.T) {
		films := newBackend(t).Films

		a := mustAddFilm(t, films, SampleFilm("A"))
		b := mustAddFilm(t, films, SampleFilm("B"))
		if a.ID == 0 || b.ID == 0 || a.ID == b.ID {
			t.Fatalf("ids not unique: %d, %d", a.ID, b.ID)
		}
		if b.ID <= a.ID {
			t.Errorf("ids not monotonic: %d then %d", a.ID, b.ID)
		}
		if len(a.Genres) != 0 || len(a.Likes) != 0 || a.Rating != nil {
			t.Errorf("new film should have no tags or likes: %+v", a)
		}
		exists, err := films.Exists(ctx, a.ID)
		checkNoError(t, err)
		if !exists {
			t.Error("Exists() = false for a stored film")
		}
	})

	t.Run("AddWithPresetIDFails", func(t *testing.T) {
		films := newBackend(t).Films

		g := mustAddFilm(t, films, SampleFilm("A"))
		_, err := films.AddFilm(ctx, g)
		checkErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("AddRoundTripsScalars", func(t *testing.T) {
		films := newBackend(t).Films

		in := SampleFilm("The Matrix")
		in.Description = "Ünïcödé description"
		added := mustAddFilm(t, films, in)

		got, err := films.GetFilm(ctx, added.ID)
		checkNoError(t, err)
		if got.Name != in.Name || got.Description != in.Description || got.Duration != in.Duration {
			t.Errorf("GetFilm() = %+v, want scalars of %+v", got, in)
		}
		if !sameDay(got.ReleaseDate, in.ReleaseDate) {
			t.Errorf("ReleaseDate = %v, want %v", got.ReleaseDate, in.ReleaseDate)
		}
	})

	t.Run("UpdateMissingFails", func(t *testing.T) {
		films := newBackend(t).Films

		f := SampleFilm("Ghost")
		f.ID = 999
		_, err := films.UpdateFilm(ctx, f)
		checkNotFound(t, err, models.KindFilm)
	})

	t.Run("UpdateOverwritesScalarsOnly", func(t *testing.T) {
		b := newBackend(t)
		films, users := b.Films, b.Users

		f := mustAddFilm(t, films, SampleFilm("Before"))
		u := mustCreateUser(t, users, SampleUser("fan"))
		checkNoError(t, films.Like(ctx, f.ID, u.ID))
		checkNoError(t, films.SetGenres(ctx, f.ID, []int{2}))

		f.Name = "After"
		f.Duration = 90
		f.Likes = nil
		f.Genres = nil
		updated, err := films.UpdateFilm(ctx, f)
		checkNoError(t, err)
		if updated.Name != "After" || updated.Duration != 90 {
			t.Errorf("UpdateFilm() = %+v", updated)
		}
		if !slices.Equal(updated.Likes, []int64{u.ID}) {
			t.Errorf("likes after update = %v, want [%d]", updated.Likes, u.ID)
		}
		if !slices.Equal(updated.GenreIDs(), []int{2}) {
			t.Errorf("genres after update = %v, want [2]", updated.GenreIDs())
		}
	})

	t.Run("GetMissingFails", func(t *testing.T) {
		_, err := newBackend(t).Films.GetFilm(ctx, 404)
		checkNotFound(t, err, models.KindFilm)
	})

	t.Run("GetFilmsEmptyAndOrdered", func(t *testing.T) {
		films := newBackend(t).Films

		all, err := films.GetFilms(ctx)
		checkNoError(t, err)
		if all == nil || len(all) != 0 {
			t.Fatalf("GetFilms() on empty store = %v, want empty slice", all)
		}

		for _, name := range []string{"C", "A", "B"} {
			mustAddFilm(t, films, SampleFilm(name))
		}
		all, err = films.GetFilms(ctx)
		checkNoError(t, err)
		if len(all) != 3 {
			t.Fatalf("GetFilms() returned %d films, want 3", len(all))
		}
		for i := 1; i < len(all); i++ {
			if all[i-1].ID >= all[i].ID {
				t.Errorf("GetFilms() not ordered by id: %d before %d", all[i-1].ID, all[i].ID)
			}
		}
	})

	t.Run("LikeUnlikeIdempotent", func(t *testing.T) {
		b := newBackend(t)
		films := b.Films

		f := mustAddFilm(t, films, SampleFilm("Liked"))
		u := mustCreateUser(t, b.Users, SampleUser("liker"))

		checkNoError(t, films.Like(ctx, f.ID, u.ID))
		checkNoError(t, films.Like(ctx, f.ID, u.ID))
		got, err := films.GetFilm(ctx, f.ID)
		checkNoError(t, err)
		if !slices.Equal(got.Likes, []int64{u.ID}) {
			t.Errorf("likes after double like = %v, want [%d]", got.Likes, u.ID)
		}

		checkNoError(t, films.Unlike(ctx, f.ID, u.ID))
		liked, err := films.IsLiked(ctx, f.ID, u.ID)
		checkNoError(t, err)
		if liked {
			t.Error("IsLiked() = true after unlike")
		}

		// Unliking a never-liked pair changes nothing.
		checkNoError(t, films.Unlike(ctx, f.ID, u.ID))
		got, err = films.GetFilm(ctx, f.ID)
		checkNoError(t, err)
		if len(got.Likes) != 0 {
			t.Errorf("likes after unlike = %v, want none", got.Likes)
		}
	})

	t.Run("TopByLikes", func(t *testing.T) {
		b := newBackend(t)
		films, users := b.Films, b.Users

		f1 := mustAddFilm(t, films, SampleFilm("F1"))
		f2 := mustAddFilm(t, films, SampleFilm("F2"))
		f3 := mustAddFilm(t, films, SampleFilm("F3"))
		u1 := mustCreateUser(t, users, SampleUser("u1"))
		u2 := mustCreateUser(t, users, SampleUser("u2"))

		checkNoError(t, films.Like(ctx, f2.ID, u1.ID))
		checkNoError(t, films.Like(ctx, f2.ID, u2.ID))
		checkNoError(t, films.Like(ctx, f3.ID, u1.ID))

		tests := []struct {
			n    int
			want []int64
		}{
			{n: 0, want: []int64{}},
			{n: -1, want: []int64{}},
			{n: 2, want: []int64{f2.ID, f3.ID}},
			{n: 10, want: []int64{f2.ID, f3.ID, f1.ID}},
		}
		for _, tt := range tests {
			t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
				top, err := films.TopByLikes(ctx, tt.n)
				checkNoError(t, err)
				if got := filmIDs(top); !slices.Equal(got, tt.want) {
					t.Errorf("TopByLikes(%d) = %v, want %v", tt.n, got, tt.want)
				}
			})
		}

		top, err := films.TopByLikes(ctx, 1)
		checkNoError(t, err)
		if len(top) != 1 || !slices.Equal(top[0].Likes, []int64{u1.ID, u2.ID}) {
			t.Errorf("TopByLikes() should hydrate likes: %+v", top)
		}
	})

	t.Run("TopByLikesTieBreak", func(t *testing.T) {
		b := newBackend(t)
		films := b.Films

		f1 := mustAddFilm(t, films, SampleFilm("F1"))
		f2 := mustAddFilm(t, films, SampleFilm("F2"))
		f3 := mustAddFilm(t, films, SampleFilm("F3"))
		u := mustCreateUser(t, b.Users, SampleUser("u"))
		checkNoError(t, films.Like(ctx, f3.ID, u.ID))
		checkNoError(t, films.Like(ctx, f1.ID, u.ID))

		top, err := films.TopByLikes(ctx, 3)
		checkNoError(t, err)
		if got, want := filmIDs(top), []int64{f1.ID, f3.ID, f2.ID}; !slices.Equal(got, want) {
			t.Errorf("TopByLikes(3) = %v, want %v", got, want)
		}
	})

	t.Run("SetGenresFullReplace", func(t *testing.T) {
		films := newBackend(t).Films
		f := mustAddFilm(t, films, SampleFilm("Tagged"))

		checkNoError(t, films.SetGenres(ctx, f.ID, []int{1, 2}))
		checkNoError(t, films.SetGenres(ctx, f.ID, []int{3}))
		got, err := films.GetFilm(ctx, f.ID)
		checkNoError(t, err)
		if !slices.Equal(got.GenreIDs(), []int{3}) {
			t.Errorf("genres = %v, want [3]", got.GenreIDs())
		}

		checkNoError(t, films.SetGenres(ctx, f.ID, []int{3, 1, 3}))
		got, err = films.GetFilm(ctx, f.ID)
		checkNoError(t, err)
		if !slices.Equal(got.GenreIDs(), []int{1, 3}) {
			t.Errorf("genres = %v, want [1 3]", got.GenreIDs())
		}

		checkNoError(t, films.SetGenres(ctx, f.ID, nil))
		got, err = films.GetFilm(ctx, f.ID)
		checkNoError(t, err)
		if len(got.Genres) != 0 {
			t.Errorf("genres after clear = %v, want none", got.GenreIDs())
		}

		checkNotFound(t, films.SetGenres(ctx, 12345, []int{1}), models.KindFilm)
	})

	t.Run("SetRating", func(t *testing.T) {
		films := newBackend(t).Films
		f := mustAddFilm(t, films, SampleFilm("Rated"))

		rating := 4
		checkNoError(t, films.SetRating(ctx, f.ID, &rating))
		got, err := films.GetFilm(ctx, f.ID)
		checkNoError(t, err)
		if got.Rating == nil || got.Rating.ID != 4 {
			t.Fatalf("rating = %+v, want id 4", got.Rating)
		}

		checkNoError(t, films.SetRating(ctx, f.ID, nil))
		got, err = films.GetFilm(ctx, f.ID)
		checkNoError(t, err)
		if got.Rating != nil {
			t.Errorf("rating after clear = %+v, want nil", got.Rating)
		}

		checkNotFound(t, films.SetRating(ctx, 12345, &rating), models.KindFilm)
	})

	t.Run("AddTaggedFilm", func(t *testing.T) {
		films := newBackend(t).Films
		rating := 3

		f, err := films.AddTaggedFilm(ctx, SampleFilm("Tagged"), []int{2, 1, 2}, &rating)
		checkNoError(t, err)
		if f.ID == 0 {
			t.Fatal("AddTaggedFilm() did not assign an id")
		}
		got, err := films.GetFilm(ctx, f.ID)
		checkNoError(t, err)
		if !slices.Equal(got.GenreIDs(), []int{1, 2}) {
			t.Errorf("genres = %v, want [1 2]", got.GenreIDs())
		}
		if got.Rating == nil || got.Rating.ID != 3 {
			t.Errorf("rating = %+v, want id 3", got.Rating)
		}

		plain, err := films.AddTaggedFilm(ctx, SampleFilm("Plain"), nil, nil)
		checkNoError(t, err)
		if len(plain.Genres) != 0 || plain.Rating != nil {
			t.Errorf("untagged film = %+v, want no tags", plain)
		}

		preset := SampleFilm("Preset")
		preset.ID = 77
		_, err = films.AddTaggedFilm(ctx, preset, []int{1}, nil)
		checkErrorIs(t, err, models.ErrInvalidInput)

		all, err := films.GetFilms(ctx)
		checkNoError(t, err)
		if len(all) != 2 {
			t.Errorf("GetFilms() returned %d films, want 2", len(all))
		}
	})

	t.Run("ReplaceFilm", func(t *testing.T) {
		b := newBackend(t)
		films := b.Films
		rating := 1
		f, err := films.AddTaggedFilm(ctx, SampleFilm("Before"), []int{1, 2}, &rating)
		checkNoError(t, err)
		u := mustCreateUser(t, b.Users, SampleUser("fan"))
		checkNoError(t, films.Like(ctx, f.ID, u.ID))

		changed := SampleFilm("After")
		changed.ID = f.ID
		changed.Duration = 90
		newRating := 5
		got, err := films.ReplaceFilm(ctx, changed, []int{3}, &newRating)
		checkNoError(t, err)
		if got.Name != "After" || got.Duration != 90 {
			t.Errorf("scalars = %q/%d, want After/90", got.Name, got.Duration)
		}
		if !slices.Equal(got.GenreIDs(), []int{3}) {
			t.Errorf("genres = %v, want [3]", got.GenreIDs())
		}
		if got.Rating == nil || got.Rating.ID != 5 {
			t.Errorf("rating = %+v, want id 5", got.Rating)
		}
		if !slices.Equal(got.Likes, []int64{u.ID}) {
			t.Errorf("likes = %v, want [%d]", got.Likes, u.ID)
		}

		cleared, err := films.ReplaceFilm(ctx, changed, nil, nil)
		checkNoError(t, err)
		if len(cleared.Genres) != 0 || cleared.Rating != nil {
			t.Errorf("after clear genres = %v rating = %+v, want none", cleared.GenreIDs(), cleared.Rating)
		}

		missing := SampleFilm("Ghost")
		missing.ID = 12345
		_, err = films.ReplaceFilm(ctx, missing, []int{1}, nil)
		checkNotFound(t, err, models.KindFilm)
	})

	t.Run("ReplaceIsNeverTorn", func(t *testing.T) {
		films := newBackend(t).Films
		f, err := films.AddTaggedFilm(ctx, SampleFilm("Old"), []int{1}, nil)
		checkNoError(t, err)

		// Each name is only ever written together with its genre.
		wantGenre := map[string]int{"Old": 1, "New": 2}
		const rounds = 200

		done := make(chan struct{})
		var torn []string
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				got, err := films.GetFilm(ctx, f.ID)
				if err != nil {
					torn = append(torn, err.Error())
					return
				}
				if ids := got.GenreIDs(); len(ids) != 1 || ids[0] != wantGenre[got.Name] {
					torn = append(torn, fmt.Sprintf("%s/%v", got.Name, ids))
				}
			}
		}()

		for i := 0; i < rounds; i++ {
			name := "New"
			if i%2 == 1 {
				name = "Old"
			}
			next := SampleFilm(name)
			next.ID = f.ID
			if _, err := films.ReplaceFilm(ctx, next, []int{wantGenre[name]}, nil); err != nil {
				close(done)
				wg.Wait()
				t.Fatalf("ReplaceFilm() error = %v", err)
			}
		}
		close(done)
		wg.Wait()

		if len(torn) > 0 {
			t.Errorf("observed %d inconsistent reads, first: %s", len(torn), torn[0])
		}
	})

	t.Run("SnapshotsAreDetached", func(t *testing.T) {
		b := newBackend(t)
		f := mustAddFilm(t, b.Films, SampleFilm("Snap"))
		u := mustCreateUser(t, b.Users, SampleUser("snap"))
		checkNoError(t, b.Films.Like(ctx, f.ID, u.ID))

		got, err := b.Films.GetFilm(ctx, f.ID)
		checkNoError(t, err)
		got.Likes[0] = -1

		again, err := b.Films.GetFilm(ctx, f.ID)
		checkNoError(t, err)
		if again.Likes[0] != u.ID {
			t.Errorf("mutating a snapshot changed stored likes: %v", again.Likes)
		}
	})

	t.Run("ConcurrentLikes", func(t *testing.T) {
		b := newBackend(t)
		f := mustAddFilm(t, b.Films, SampleFilm("Busy"))

		const n = 16
		ids := make([]int64, n)
		for i := range ids {
			ids[i] = mustCreateUser(t, b.Users, SampleUser(fmt.Sprintf("c%d", i))).ID
		}

		var wg sync.WaitGroup
		errs := make(chan error, n*2)
		for _, id := range ids {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				errs <- b.Films.Like(ctx, f.ID, id)
				errs <- b.Films.Like(ctx, f.ID, id)
			}(id)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			checkNoError(t, err)
		}

		got, err := b.Films.GetFilm(ctx, f.ID)
		checkNoError(t, err)
		if len(got.Likes) != n {
			t.Errorf("likes = %d, want %d", len(got.Likes), n)
		}
	})

	t.Run("ConcurrentAddsUnique", func(t *testing.T) {
		films := newBackend(t).Films

		const n = 20
		var wg sync.WaitGroup
		results := make(chan int64, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				f, err := films.AddFilm(ctx, SampleFilm(fmt.Sprintf("P%d", i)))
				if err != nil {
					t.Errorf("AddFilm() error = %v", err)
					return
				}
				results <- f.ID
			}(i)
		}
		wg.Wait()
		close(results)

		seen := make(map[int64]bool)
		for id := range results {
			if seen[id] {
				t.Errorf("duplicate id %d", id)
			}
			seen[id] = true
		}
		if len(seen) != n {
			t.Errorf("allocated %d ids, want %d", len(seen), n)
		}
	})
}

// RunUserStore checks the storage.UserStore contract.
func RunUserStore(t *testing.T, newBackend Factory) {
	ctx := context.Background()

	t.Run("CreateAppliesNameDefault", func(t *testing.T) {
		users := newBackend(t).Users

		u := mustCreateUser(t, users, SampleUser("dolore"))
		if u.Name != "dolore" {
			t.Errorf("Name = %q, want login", u.Name)
		}
		if len(u.Friends) != 0 {
			t.Errorf("Friends = %v, want none", u.Friends)
		}

		named := SampleUser("nick")
		named.Name = "Nick Name"
		n := mustCreateUser(t, users, named)
		if n.Name != "Nick Name" {
			t.Errorf("Name = %q, want %q", n.Name, "Nick Name")
		}
	})

	t.Run("CreateWithPresetIDFails", func(t *testing.T) {
		users := newBackend(t).Users
		u := SampleUser("preset")
		u.ID = 5
		_, err := users.CreateUser(ctx, u)
		checkErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("GetAndUpdate", func(t *testing.T) {
		users := newBackend(t).Users

		u := mustCreateUser(t, users, SampleUser("mutable"))
		got, err := users.GetUser(ctx, u.ID)
		checkNoError(t, err)
		if got.Email != u.Email || got.Login != u.Login || !sameDay(got.Birthday, u.Birthday) {
			t.Errorf("GetUser() = %+v, want %+v", got, u)
		}

		u.Email = "changed@example.com"
		u.Name = ""
		updated, err := users.UpdateUser(ctx, u)
		checkNoError(t, err)
		if updated.Email != "changed@example.com" || updated.Name != u.Login {
			t.Errorf("UpdateUser() = %+v", updated)
		}

		missing := SampleUser("ghost")
		missing.ID = 999
		_, err = users.UpdateUser(ctx, missing)
		checkNotFound(t, err, models.KindUser)

		_, err = users.GetUser(ctx, 999)
		checkNotFound(t, err, models.KindUser)
	})

	t.Run("GetUsersOrdered", func(t *testing.T) {
		users := newBackend(t).Users

		all, err := users.GetUsers(ctx)
		checkNoError(t, err)
		if all == nil || len(all) != 0 {
			t.Fatalf("GetUsers() on empty store = %v", all)
		}
		for _, login := range []string{"z", "a", "m"} {
			mustCreateUser(t, users, SampleUser(login))
		}
		all, err = users.GetUsers(ctx)
		checkNoError(t, err)
		if len(all) != 3 || all[0].ID >= all[1].ID || all[1].ID >= all[2].ID {
			t.Errorf("GetUsers() = %v, want 3 users ordered by id", userIDs(all))
		}
	})

	t.Run("FriendshipIsMutual", func(t *testing.T) {
		users := newBackend(t).Users
		a := mustCreateUser(t, users, SampleUser("a"))
		b := mustCreateUser(t, users, SampleUser("b"))

		checkNoError(t, users.AddFriend(ctx, a.ID, b.ID))
		checkNoError(t, users.AddFriend(ctx, a.ID, b.ID))
		checkNoError(t, users.AddFriend(ctx, b.ID, a.ID))

		assertFriends(t, users, a.ID, []int64{b.ID})
		assertFriends(t, users, b.ID, []int64{a.ID})

		got, err := users.GetUser(ctx, a.ID)
		checkNoError(t, err)
		if !slices.Equal(got.Friends, []int64{b.ID}) {
			t.Errorf("GetUser().Friends = %v, want [%d]", got.Friends, b.ID)
		}

		checkNoError(t, users.RemoveFriend(ctx, b.ID, a.ID))
		assertFriends(t, users, a.ID, []int64{})
		assertFriends(t, users, b.ID, []int64{})

		// Removing an absent friendship is a no-op.
		checkNoError(t, users.RemoveFriend(ctx, a.ID, b.ID))
	})

	t.Run("FriendEndpointsMustExist", func(t *testing.T) {
		users := newBackend(t).Users
		a := mustCreateUser(t, users, SampleUser("a"))

		err := users.AddFriend(ctx, a.ID, 999)
		checkNotFound(t, err, models.KindUser)
		err = users.AddFriend(ctx, 999, a.ID)
		checkNotFound(t, err, models.KindUser)
		err = users.RemoveFriend(ctx, a.ID, 999)
		checkNotFound(t, err, models.KindUser)

		_, err = users.FriendsOf(ctx, 999)
		checkNotFound(t, err, models.KindUser)
		_, err = users.CommonFriends(ctx, a.ID, 999)
		checkNotFound(t, err, models.KindUser)

		assertFriends(t, users, a.ID, []int64{})
	})

	t.Run("SelfFriendshipRejected", func(t *testing.T) {
		users := newBackend(t).Users
		a := mustCreateUser(t, users, SampleUser("solo"))

		err := users.AddFriend(ctx, a.ID, a.ID)
		checkErrorIs(t, err, models.ErrInvalidInput)
		assertFriends(t, users, a.ID, []int64{})
	})

	t.Run("FriendsOrderedByID", func(t *testing.T) {
		users := newBackend(t).Users
		hub := mustCreateUser(t, users, SampleUser("hub"))
		var spokes []int64
		for _, login := range []string{"s1", "s2", "s3"} {
			spokes = append(spokes, mustCreateUser(t, users, SampleUser(login)).ID)
		}
		for i := len(spokes) - 1; i >= 0; i-- {
			checkNoError(t, users.AddFriend(ctx, hub.ID, spokes[i]))
		}
		assertFriends(t, users, hub.ID, spokes)
	})

	t.Run("CommonFriends", func(t *testing.T) {
		users := newBackend(t).Users
		a := mustCreateUser(t, users, SampleUser("a"))
		b := mustCreateUser(t, users, SampleUser("b"))
		c := mustCreateUser(t, users, SampleUser("c"))
		d := mustCreateUser(t, users, SampleUser("d"))
		e := mustCreateUser(t, users, SampleUser("e"))

		common, err := users.CommonFriends(ctx, a.ID, b.ID)
		checkNoError(t, err)
		if common == nil || len(common) != 0 {
			t.Errorf("CommonFriends() with no friends = %v, want empty", userIDs(common))
		}

		checkNoError(t, users.AddFriend(ctx, a.ID, c.ID))
		checkNoError(t, users.AddFriend(ctx, a.ID, d.ID))
		checkNoError(t, users.AddFriend(ctx, b.ID, d.ID))
		checkNoError(t, users.AddFriend(ctx, b.ID, e.ID))

		common, err = users.CommonFriends(ctx, a.ID, b.ID)
		checkNoError(t, err)
		if got := userIDs(common); !slices.Equal(got, []int64{d.ID}) {
			t.Errorf("CommonFriends(a, b) = %v, want [%d]", got, d.ID)
		}

		checkNoError(t, users.AddFriend(ctx, b.ID, c.ID))
		common, err = users.CommonFriends(ctx, b.ID, a.ID)
		checkNoError(t, err)
		if got := userIDs(common); !slices.Equal(got, []int64{c.ID, d.ID}) {
			t.Errorf("CommonFriends(b, a) = %v, want [%d %d]", got, c.ID, d.ID)
		}

		common, err = users.CommonFriends(ctx, c.ID, e.ID)
		checkNoError(t, err)
		if got := userIDs(common); !slices.Equal(got, []int64{b.ID}) {
			t.Errorf("CommonFriends(c, e) = %v, want [%d]", got, b.ID)
		}
	})

	t.Run("UpdateKeepsFriends", func(t *testing.T) {
		users := newBackend(t).Users
		a := mustCreateUser(t, users, SampleUser("a"))
		b := mustCreateUser(t, users, SampleUser("b"))
		checkNoError(t, users.AddFriend(ctx, a.ID, b.ID))

		a.Login = "renamed"
		a.Friends = nil
		updated, err := users.UpdateUser(ctx, a)
		checkNoError(t, err)
		if !slices.Equal(updated.Friends, []int64{b.ID}) {
			t.Errorf("Friends after update = %v, want [%d]", updated.Friends, b.ID)
		}
	})

	t.Run("ConcurrentFriendToggles", func(t *testing.T) {
		users := newBackend(t).Users
		a := mustCreateUser(t, users, SampleUser("a"))
		b := mustCreateUser(t, users, SampleUser("b"))

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				if err := users.AddFriend(ctx, a.ID, b.ID); err != nil {
					t.Errorf("AddFriend() error = %v", err)
				}
			}()
			go func() {
				defer wg.Done()
				if err := users.RemoveFriend(ctx, b.ID, a.ID); err != nil {
					t.Errorf("RemoveFriend() error = %v", err)
				}
			}()
		}
		wg.Wait()

		fa, err := users.FriendsOf(ctx, a.ID)
		checkNoError(t, err)
		fb, err := users.FriendsOf(ctx, b.ID)
		checkNoError(t, err)
		if len(fa) != len(fb) {
			t.Errorf("half-formed friendship: a has %v, b has %v", userIDs(fa), userIDs(fb))
		}
	})
}

// RunCatalog checks the storage.Catalog contract against the default seed rows.
func RunCatalog(t *testing.T, newBackend Factory) {
	ctx := context.Background()

	t.Run("Genres", func(t *testing.T) {
		catalog := newBackend(t).Catalog

		genres, err := catalog.Genres(ctx)
		checkNoError(t, err)
		if !slices.Equal(genres, models.DefaultGenres()) {
			t.Errorf("Genres() = %v, want %v", genres, models.DefaultGenres())
		}

		g, err := catalog.Genre(ctx, 2)
		checkNoError(t, err)
		if g.Name != "Drama" {
			t.Errorf("Genre(2) = %+v, want Drama", g)
		}
		_, err = catalog.Genre(ctx, 99)
		checkNotFound(t, err, models.KindGenre)
	})

	t.Run("Ratings", func(t *testing.T) {
		catalog := newBackend(t).Catalog

		ratings, err := catalog.Ratings(ctx)
		checkNoError(t, err)
		if !slices.Equal(ratings, models.DefaultRatings()) {
			t.Errorf("Ratings() = %v, want %v", ratings, models.DefaultRatings())
		}

		r, err := catalog.Rating(ctx, 3)
		checkNoError(t, err)
		if r.Name != "PG-13" {
			t.Errorf("Rating(3) = %+v, want PG-13", r)
		}
		_, err = catalog.Rating(ctx, 0)
		checkNotFound(t, err, models.KindRating)
	})

	t.Run("ExistsAll", func(t *testing.T) {
		catalog := newBackend(t).Catalog

		tests := []struct {
			name    string
			genres  []int
			ratings []int
			want    bool
		}{
			{"empty input", nil, nil, true},
			{"all present", []int{1, 6}, []int{1, 5}, true},
			{"duplicates", []int{2, 2}, []int{3, 3}, true},
			{"one missing", []int{1, 7}, []int{5, 6}, false},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ok, err := catalog.GenresExist(ctx, tt.genres)
				checkNoError(t, err)
				if ok != tt.want {
					t.Errorf("GenresExist(%v) = %v, want %v", tt.genres, ok, tt.want)
				}
				ok, err = catalog.RatingsExist(ctx, tt.ratings)
				checkNoError(t, err)
				if ok != tt.want {
					t.Errorf("RatingsExist(%v) = %v, want %v", tt.ratings, ok, tt.want)
				}
			})
		}
	})
}

func mustAddFilm(t *testing.T, films storage.FilmStore, f models.Film) models.Film {
	t.Helper()
	added, err := films.AddFilm(context.Background(), f)
	if err != nil {
		t.Fatalf("AddFilm() error = %v", err)
	}
	return added
}

func mustCreateUser(t *testing.T, users storage.UserStore, u models.User) models.User {
	t.Helper()
	created, err := users.CreateUser(context.Background(), u)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return created
}

func assertFriends(t *testing.T, users storage.UserStore, id int64, want []int64) {
	t.Helper()
	friends, err := users.FriendsOf(context.Background(), id)
	checkNoError(t, err)
	if got := userIDs(friends); !slices.Equal(got, want) {
		t.Errorf("FriendsOf(%d) = %v, want %v", id, got, want)
	}
}

func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func checkErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want %v", err, target)
	}
}

func checkNotFound(t *testing.T, err error, kind string) {
	t.Helper()
	checkErrorIs(t, err, models.ErrNotFound)
	if got, _ := models.NotFoundKind(err); got != kind {
		t.Errorf("NotFound kind = %q, want %q", got, kind)
	}
}

func filmIDs(films []models.Film) []int64 {
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.ID)
	}
	return ids
}

func userIDs(users []models.User) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
