// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/filmorate/internal/models"
	"github.com/tomtom215/filmorate/internal/storage"
)

// FilmStore is the relational storage.FilmStore.
type FilmStore struct {
	db *DB
}

var _ storage.FilmStore = (*FilmStore)(nil)

const filmColumns = `id, name, description, release_date, duration, mpa_id`

// AddFilm inserts a new film and assigns its identifier.
func (s *FilmStore) AddFilm(ctx context.Context, film models.Film) (models.Film, error) {
	if film.ID != 0 {
		return models.Film{}, models.InvalidInput("film id %d must not be set on create", film.ID)
	}

	var out models.Film
	err := s.db.update(ctx, "add_film", func(q querier) error {
		id, err := nextID(ctx, q, "films")
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx,
			`INSERT INTO films (id, name, description, release_date, duration, mpa_id)
			 VALUES (?, ?, ?, ?, ?, NULL)`,
			id, film.Name, film.Description, s.db.dateArg(film.ReleaseDate), film.Duration); err != nil {
			return fmt.Errorf("insert film: %w", err)
		}
		out, err = s.db.loadFilm(ctx, q, id)
		return err
	})
	return out, err
}

// UpdateFilm overwrites the scalar fields of an existing film. Likes,
// genres and the rating are untouched.
func (s *FilmStore) UpdateFilm(ctx context.Context, film models.Film) (models.Film, error) {
	var out models.Film
	err := s.db.update(ctx, "update_film", func(q querier) error {
		if err := requireRow(ctx, q, "films", models.KindFilm, film.ID); err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx,
			`UPDATE films SET name = ?, description = ?, release_date = ?, duration = ? WHERE id = ?`,
			film.Name, film.Description, s.db.dateArg(film.ReleaseDate), film.Duration, film.ID); err != nil {
			return fmt.Errorf("update film: %w", err)
		}
		var err error
		out, err = s.db.loadFilm(ctx, q, film.ID)
		return err
	})
	return out, err
}

// GetFilm returns one film with its likes and tag identifiers.
func (s *FilmStore) GetFilm(ctx context.Context, id int64) (models.Film, error) {
	var out models.Film
	err := s.db.view(ctx, "get_film", func(q querier) error {
		var err error
		out, err = s.db.loadFilm(ctx, q, id)
		return err
	})
	return out, err
}

// GetFilms returns every film ordered by identifier.
func (s *FilmStore) GetFilms(ctx context.Context) ([]models.Film, error) {
	var out []models.Film
	err := s.db.view(ctx, "get_films", func(q querier) error {
		var err error
		out, err = s.db.queryFilms(ctx, q, nil)
		return err
	})
	return out, err
}

// Exists reports whether a film with id is stored.
func (s *FilmStore) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := s.db.run(ctx, "film_exists", func() error {
		var err error
		ok, err = exists(ctx, s.db.conn, "films", id)
		return err
	})
	return ok, err
}

// Like records that userID likes filmID. Repeated likes are no-ops.
func (s *FilmStore) Like(ctx context.Context, filmID, userID int64) error {
	return s.db.update(ctx, "like", func(q querier) error {
		_, err := q.ExecContext(ctx,
			`INSERT INTO likes (film_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			filmID, userID)
		return err
	})
}

// Unlike removes a like. Removing an absent like is a no-op.
func (s *FilmStore) Unlike(ctx context.Context, filmID, userID int64) error {
	return s.db.update(ctx, "unlike", func(q querier) error {
		_, err := q.ExecContext(ctx,
			`DELETE FROM likes WHERE film_id = ? AND user_id = ?`, filmID, userID)
		return err
	})
}

// IsLiked reports whether userID likes filmID.
func (s *FilmStore) IsLiked(ctx context.Context, filmID, userID int64) (bool, error) {
	var liked bool
	err := s.db.run(ctx, "is_liked", func() error {
		var n int64
		if err := s.db.conn.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM likes WHERE film_id = ? AND user_id = ?`,
			filmID, userID).Scan(&n); err != nil {
			return err
		}
		liked = n > 0
		return nil
	})
	return liked, err
}

// TopByLikes returns up to n films, most liked first, ties by ascending id.
func (s *FilmStore) TopByLikes(ctx context.Context, n int) ([]models.Film, error) {
	if n <= 0 {
		return []models.Film{}, nil
	}

	var out []models.Film
	err := s.db.view(ctx, "top_by_likes", func(q querier) error {
		rows, err := q.QueryContext(ctx,
			`SELECT f.id
			 FROM films f
			 LEFT JOIN likes l ON l.film_id = f.id
			 GROUP BY f.id
			 ORDER BY COUNT(l.user_id) DESC, f.id ASC
			 LIMIT ?`, n)
		if err != nil {
			return err
		}
		ids, err := scanIDs(rows)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			out = []models.Film{}
			return nil
		}

		films, err := s.db.queryFilms(ctx, q, ids)
		if err != nil {
			return err
		}
		out = storage.RankByLikes(films, n)
		return nil
	})
	return out, err
}

// SetGenres replaces the film's genre set. Only the difference between
// the stored and requested sets is written.
func (s *FilmStore) SetGenres(ctx context.Context, filmID int64, genreIDs []int) error {
	return s.db.update(ctx, "set_genres", func(q querier) error {
		if err := requireRow(ctx, q, "films", models.KindFilm, filmID); err != nil {
			return err
		}
		return s.db.replaceGenres(ctx, q, filmID, genreIDs)
	})
}

// SetRating attaches ratingID, or clears the rating when nil.
func (s *FilmStore) SetRating(ctx context.Context, filmID int64, ratingID *int) error {
	return s.db.update(ctx, "set_rating", func(q querier) error {
		if err := requireRow(ctx, q, "films", models.KindFilm, filmID); err != nil {
			return err
		}
		_, err := q.ExecContext(ctx, `UPDATE films SET mpa_id = ? WHERE id = ?`, ratingArg(ratingID), filmID)
		return err
	})
}

// AddTaggedFilm inserts a film, its genre rows and its rating in one
// transaction.
func (s *FilmStore) AddTaggedFilm(ctx context.Context, film models.Film, genreIDs []int, ratingID *int) (models.Film, error) {
	if film.ID != 0 {
		return models.Film{}, models.InvalidInput("film id %d must not be set on create", film.ID)
	}

	var out models.Film
	err := s.db.update(ctx, "add_tagged_film", func(q querier) error {
		id, err := nextID(ctx, q, "films")
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx,
			`INSERT INTO films (id, name, description, release_date, duration, mpa_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, film.Name, film.Description, s.db.dateArg(film.ReleaseDate), film.Duration,
			ratingArg(ratingID)); err != nil {
			return fmt.Errorf("insert film: %w", err)
		}
		if err := s.db.replaceGenres(ctx, q, id, genreIDs); err != nil {
			return err
		}
		out, err = s.db.loadFilm(ctx, q, id)
		return err
	})
	return out, err
}

// ReplaceFilm overwrites the scalar fields, genre rows and rating of an
// existing film in one transaction.
func (s *FilmStore) ReplaceFilm(ctx context.Context, film models.Film, genreIDs []int, ratingID *int) (models.Film, error) {
	var out models.Film
	err := s.db.update(ctx, "replace_film", func(q querier) error {
		if err := requireRow(ctx, q, "films", models.KindFilm, film.ID); err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx,
			`UPDATE films SET name = ?, description = ?, release_date = ?, duration = ?, mpa_id = ? WHERE id = ?`,
			film.Name, film.Description, s.db.dateArg(film.ReleaseDate), film.Duration,
			ratingArg(ratingID), film.ID); err != nil {
			return fmt.Errorf("update film: %w", err)
		}
		if err := s.db.replaceGenres(ctx, q, film.ID, genreIDs); err != nil {
			return err
		}
		var err error
		out, err = s.db.loadFilm(ctx, q, film.ID)
		return err
	})
	return out, err
}

// replaceGenres makes filmID's genre rows equal to genreIDs, writing only
// the difference. Callers run it inside an update transaction.
func (db *DB) replaceGenres(ctx context.Context, q querier, filmID int64, genreIDs []int) error {
	want := storage.Dedupe(genreIDs)

	current, err := db.genreIDs(ctx, q, filmID)
	if err != nil {
		return err
	}
	have := make(map[int]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}
	keep := make(map[int]struct{}, len(want))
	for _, id := range want {
		keep[id] = struct{}{}
	}

	for _, id := range current {
		if _, ok := keep[id]; ok {
			continue
		}
		if _, err := q.ExecContext(ctx,
			`DELETE FROM film_genres WHERE film_id = ? AND genre_id = ?`, filmID, id); err != nil {
			return fmt.Errorf("delete genre %d: %w", id, err)
		}
	}
	for _, id := range want {
		if _, ok := have[id]; ok {
			continue
		}
		if _, err := q.ExecContext(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES (?, ?)`, filmID, id); err != nil {
			return fmt.Errorf("insert genre %d: %w", id, err)
		}
	}
	return nil
}

// ratingArg maps an optional rating id to a nullable column value.
func ratingArg(ratingID *int) any {
	if ratingID == nil {
		return nil
	}
	return *ratingID
}

// loadFilm reads one film or returns NotFound.
func (db *DB) loadFilm(ctx context.Context, q querier, id int64) (models.Film, error) {
	films, err := db.queryFilms(ctx, q, []int64{id})
	if err != nil {
		return models.Film{}, err
	}
	if len(films) == 0 {
		return models.Film{}, models.NotFound(models.KindFilm, id)
	}
	return films[0], nil
}

// queryFilms loads films with their likes and genre ids, ordered by id.
// A nil ids slice selects every film.
func (db *DB) queryFilms(ctx context.Context, q querier, ids []int64) ([]models.Film, error) {
	filmWhere, likeWhere, genreWhere := "", "", ""
	var args []any
	if ids != nil {
		var clause string
		clause, args = inClause("id", ids)
		filmWhere = " WHERE " + clause
		clause, _ = inClause("film_id", ids)
		likeWhere = " WHERE " + clause
		genreWhere = likeWhere
	}

	rows, err := q.QueryContext(ctx, `SELECT `+filmColumns+` FROM films`+filmWhere+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query films: %w", err)
	}
	films := make([]models.Film, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			f       models.Film
			release dateValue
			mpaID   sql.NullInt64
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &release, &f.Duration, &mpaID); err != nil {
			closeQuietly(rows)
			return nil, fmt.Errorf("scan film: %w", err)
		}
		f.ReleaseDate = release.Time
		if mpaID.Valid {
			f.Rating = &models.Rating{ID: int(mpaID.Int64)}
		}
		f.Genres = []models.Genre{}
		f.Likes = []int64{}
		index[f.ID] = len(films)
		films = append(films, f)
	}
	if err := rows.Err(); err != nil {
		closeQuietly(rows)
		return nil, err
	}
	closeWithLog(ctx, rows, "film rows")
	if len(films) == 0 {
		return films, nil
	}

	likeRows, err := q.QueryContext(ctx,
		`SELECT film_id, user_id FROM likes`+likeWhere+` ORDER BY film_id, user_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query likes: %w", err)
	}
	if err := scanPairs(likeRows, func(filmID, userID int64) {
		if i, ok := index[filmID]; ok {
			films[i].Likes = append(films[i].Likes, userID)
		}
	}); err != nil {
		return nil, fmt.Errorf("scan likes: %w", err)
	}

	genreRows, err := q.QueryContext(ctx,
		`SELECT film_id, genre_id FROM film_genres`+genreWhere+` ORDER BY film_id, genre_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query film genres: %w", err)
	}
	if err := scanPairs(genreRows, func(filmID, genreID int64) {
		if i, ok := index[filmID]; ok {
			films[i].Genres = append(films[i].Genres, models.Genre{ID: int(genreID)})
		}
	}); err != nil {
		return nil, fmt.Errorf("scan film genres: %w", err)
	}

	return films, nil
}

func (db *DB) genreIDs(ctx context.Context, q querier, filmID int64) ([]int, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT genre_id FROM film_genres WHERE film_id = ? ORDER BY genre_id`, filmID)
	if err != nil {
		return nil, err
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out, nil
}

// scanIDs drains a single-column integer result and closes rows.
func scanIDs(rows *sql.Rows) ([]int64, error) {
	defer closeQuietly(rows)

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// scanPairs drains a two-column integer result and closes rows.
func scanPairs(rows *sql.Rows, fn func(a, b int64)) error {
	defer closeQuietly(rows)

	for rows.Next() {
		var a, b int64
		if err := rows.Scan(&a, &b); err != nil {
			return err
		}
		fn(a, b)
	}
	return rows.Err()
}

