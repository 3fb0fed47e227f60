// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package memory

import (
	"context"
	"sync"

	"github.com/tomtom215/filmorate/internal/models"
	"github.com/tomtom215/filmorate/internal/storage"
)

// filmRow holds a film's scalar fields. Relations live in the store's maps.
type filmRow struct {
	film     models.Film
	ratingID *int
}

// FilmStore is the in-memory storage.FilmStore. A single RWMutex guards all
// records and relation sets.
type FilmStore struct {
	mu     sync.RWMutex
	seq    storage.Sequence
	films  map[int64]*filmRow
	likes  map[int64]map[int64]struct{}
	genres map[int64]map[int]struct{}
}

var _ storage.FilmStore = (*FilmStore)(nil)

// NewFilmStore creates an empty film store.
func NewFilmStore() *FilmStore {
	return &FilmStore{
		films:  make(map[int64]*filmRow),
		likes:  make(map[int64]map[int64]struct{}),
		genres: make(map[int64]map[int]struct{}),
	}
}

// AddFilm stores a new film and assigns its identifier.
func (s *FilmStore) AddFilm(_ context.Context, film models.Film) (models.Film, error) {
	if film.ID != 0 {
		return models.Film{}, models.InvalidInput("film id %d must not be set on create", film.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	film.ID = s.seq.Next()
	s.films[film.ID] = &filmRow{film: scalarFilm(film)}
	return s.snapshot(film.ID), nil
}

// UpdateFilm overwrites the scalar fields of an existing film.
func (s *FilmStore) UpdateFilm(_ context.Context, film models.Film) (models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.films[film.ID]
	if !ok {
		return models.Film{}, models.NotFound(models.KindFilm, film.ID)
	}
	row.film = scalarFilm(film)
	return s.snapshot(film.ID), nil
}

// GetFilm returns one film with its likes and tag identifiers.
func (s *FilmStore) GetFilm(_ context.Context, id int64) (models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.films[id]; !ok {
		return models.Film{}, models.NotFound(models.KindFilm, id)
	}
	return s.snapshot(id), nil
}

// GetFilms returns every film ordered by identifier.
func (s *FilmStore) GetFilms(_ context.Context) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotAll(), nil
}

// Exists reports whether a film with id is stored.
func (s *FilmStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.films[id]
	return ok, nil
}

// Like records that userID likes filmID. Repeated likes are no-ops.
func (s *FilmStore) Like(_ context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.likes[filmID]
	if !ok {
		set = make(map[int64]struct{})
		s.likes[filmID] = set
	}
	set[userID] = struct{}{}
	return nil
}

// Unlike removes a like. Removing an absent like is a no-op.
func (s *FilmStore) Unlike(_ context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if set, ok := s.likes[filmID]; ok {
		delete(set, userID)
		if len(set) == 0 {
			delete(s.likes, filmID)
		}
	}
	return nil
}

// IsLiked reports whether userID likes filmID.
func (s *FilmStore) IsLiked(_ context.Context, filmID, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.likes[filmID][userID]
	return ok, nil
}

// TopByLikes returns up to n films, most liked first, ties by ascending id.
func (s *FilmStore) TopByLikes(_ context.Context, n int) ([]models.Film, error) {
	if n <= 0 {
		return []models.Film{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return storage.RankByLikes(s.snapshotAll(), n), nil
}

// SetGenres replaces the film's genre set.
func (s *FilmStore) SetGenres(_ context.Context, filmID int64, genreIDs []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[filmID]; !ok {
		return models.NotFound(models.KindFilm, filmID)
	}
	s.setGenres(filmID, genreIDs)
	return nil
}

// SetRating attaches or clears the film's rating.
func (s *FilmStore) SetRating(_ context.Context, filmID int64, ratingID *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.films[filmID]
	if !ok {
		return models.NotFound(models.KindFilm, filmID)
	}
	row.ratingID = copyRating(ratingID)
	return nil
}

// AddTaggedFilm stores a new film with its genres and rating under one lock.
func (s *FilmStore) AddTaggedFilm(_ context.Context, film models.Film, genreIDs []int, ratingID *int) (models.Film, error) {
	if film.ID != 0 {
		return models.Film{}, models.InvalidInput("film id %d must not be set on create", film.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	film.ID = s.seq.Next()
	s.films[film.ID] = &filmRow{film: scalarFilm(film), ratingID: copyRating(ratingID)}
	s.setGenres(film.ID, genreIDs)
	return s.snapshot(film.ID), nil
}

// ReplaceFilm overwrites scalars, genres and rating under one lock.
func (s *FilmStore) ReplaceFilm(_ context.Context, film models.Film, genreIDs []int, ratingID *int) (models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.films[film.ID]
	if !ok {
		return models.Film{}, models.NotFound(models.KindFilm, film.ID)
	}
	row.film = scalarFilm(film)
	row.ratingID = copyRating(ratingID)
	s.setGenres(film.ID, genreIDs)
	return s.snapshot(film.ID), nil
}

// setGenres replaces the genre set of filmID. Callers hold s.mu.
func (s *FilmStore) setGenres(filmID int64, genreIDs []int) {
	if len(genreIDs) == 0 {
		delete(s.genres, filmID)
		return
	}
	set := make(map[int]struct{}, len(genreIDs))
	for _, id := range genreIDs {
		set[id] = struct{}{}
	}
	s.genres[filmID] = set
}

func copyRating(ratingID *int) *int {
	if ratingID == nil {
		return nil
	}
	id := *ratingID
	return &id
}

// snapshot builds a detached copy of film id. Callers hold s.mu.
func (s *FilmStore) snapshot(id int64) models.Film {
	row := s.films[id]
	film := row.film
	film.Rating = storage.RatingRef(row.ratingID)
	film.Genres = storage.GenreRefs(storage.SortedKeys(s.genres[id]))
	film.Likes = storage.SortedKeys(s.likes[id])
	return film
}

func (s *FilmStore) snapshotAll() []models.Film {
	ids := make(map[int64]struct{}, len(s.films))
	for id := range s.films {
		ids[id] = struct{}{}
	}
	films := make([]models.Film, 0, len(ids))
	for _, id := range storage.SortedKeys(ids) {
		films = append(films, s.snapshot(id))
	}
	return films
}

// scalarFilm strips relation fields so only core columns are retained.
func scalarFilm(f models.Film) models.Film {
	return models.Film{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: f.ReleaseDate,
		Duration:    f.Duration,
	}
}
