// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/filmorate/internal/metrics"
	"github.com/tomtom215/filmorate/internal/models"
	"github.com/tomtom215/filmorate/internal/storage"
)

// catalogKey is the single cache slot holding a full catalog table.
const catalogKey = "all"

// Catalog is the relational storage.Catalog. The reference tables are
// small and rarely change, so each is read whole and cached.
type Catalog struct {
	db *DB
}

var _ storage.Catalog = (*Catalog)(nil)

// Genres lists every genre ordered by identifier.
func (c *Catalog) Genres(ctx context.Context) ([]models.Genre, error) {
	genres, err := c.genres(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Genre, len(genres))
	copy(out, genres)
	return out, nil
}

// Genre returns one genre.
func (c *Catalog) Genre(ctx context.Context, id int) (models.Genre, error) {
	genres, err := c.genres(ctx)
	if err != nil {
		return models.Genre{}, err
	}
	for _, g := range genres {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Genre{}, models.NotFound(models.KindGenre, int64(id))
}

// GenresExist reports whether every id names a genre.
func (c *Catalog) GenresExist(ctx context.Context, ids []int) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	genres, err := c.genres(ctx)
	if err != nil {
		return false, err
	}
	known := make(map[int]struct{}, len(genres))
	for _, g := range genres {
		known[g.ID] = struct{}{}
	}
	return containsAll(known, ids), nil
}

// Ratings lists every rating ordered by identifier.
func (c *Catalog) Ratings(ctx context.Context) ([]models.Rating, error) {
	ratings, err := c.ratings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Rating, len(ratings))
	copy(out, ratings)
	return out, nil
}

// Rating returns one rating.
func (c *Catalog) Rating(ctx context.Context, id int) (models.Rating, error) {
	ratings, err := c.ratings(ctx)
	if err != nil {
		return models.Rating{}, err
	}
	for _, r := range ratings {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Rating{}, models.NotFound(models.KindRating, int64(id))
}

// RatingsExist reports whether every id names a rating.
func (c *Catalog) RatingsExist(ctx context.Context, ids []int) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	ratings, err := c.ratings(ctx)
	if err != nil {
		return false, err
	}
	known := make(map[int]struct{}, len(ratings))
	for _, r := range ratings {
		known[r.ID] = struct{}{}
	}
	return containsAll(known, ids), nil
}

func (c *Catalog) genres(ctx context.Context) ([]models.Genre, error) {
	if cached, ok := c.db.genreCache.Get(catalogKey); ok {
		metrics.RecordCatalogLookup("genres", true)
		return cached, nil
	}
	metrics.RecordCatalogLookup("genres", false)

	var genres []models.Genre
	err := c.db.view(ctx, "list_genres", func(q querier) error {
		var err error
		genres, err = queryNamed(ctx, q, "genres", func(id int, name string) models.Genre {
			return models.Genre{ID: id, Name: name}
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	c.db.genreCache.Set(catalogKey, genres)
	return genres, nil
}

func (c *Catalog) ratings(ctx context.Context) ([]models.Rating, error) {
	if cached, ok := c.db.ratingCache.Get(catalogKey); ok {
		metrics.RecordCatalogLookup("ratings", true)
		return cached, nil
	}
	metrics.RecordCatalogLookup("ratings", false)

	var ratings []models.Rating
	err := c.db.view(ctx, "list_ratings", func(q querier) error {
		var err error
		ratings, err = queryNamed(ctx, q, "mpa_ratings", func(id int, name string) models.Rating {
			return models.Rating{ID: id, Name: name}
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	c.db.ratingCache.Set(catalogKey, ratings)
	return ratings, nil
}

// queryNamed reads an (id, name) reference table ordered by id.
func queryNamed[T any](ctx context.Context, q querier, table string, build func(id int, name string) T) ([]T, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name FROM "+table+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer closeQuietly(rows)

	out := make([]T, 0)
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, build(id, name))
	}
	return out, rows.Err()
}

func containsAll(known map[int]struct{}, ids []int) bool {
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return false
		}
	}
	return true
}
