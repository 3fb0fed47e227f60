// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package memory

import (
	"context"
	"slices"

	"github.com/tomtom215/filmorate/internal/models"
	"github.com/tomtom215/filmorate/internal/storage"
)

// Catalog is an immutable in-memory storage.Catalog.
type Catalog struct {
	genres  map[int]models.Genre
	ratings map[int]models.Rating
}

var _ storage.Catalog = (*Catalog)(nil)

// NewCatalog builds a catalog from fixed genre and rating rows.
func NewCatalog(genres []models.Genre, ratings []models.Rating) *Catalog {
	c := &Catalog{
		genres:  make(map[int]models.Genre, len(genres)),
		ratings: make(map[int]models.Rating, len(ratings)),
	}
	for _, g := range genres {
		c.genres[g.ID] = g
	}
	for _, r := range ratings {
		c.ratings[r.ID] = r
	}
	return c
}

// NewDefaultCatalog returns a catalog holding the deployment seed rows.
func NewDefaultCatalog() *Catalog {
	return NewCatalog(models.DefaultGenres(), models.DefaultRatings())
}

// Genres lists every genre ordered by identifier.
func (c *Catalog) Genres(_ context.Context) ([]models.Genre, error) {
	out := make([]models.Genre, 0, len(c.genres))
	for _, g := range c.genres {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b models.Genre) int { return a.ID - b.ID })
	return out, nil
}

// Genre returns one genre.
func (c *Catalog) Genre(_ context.Context, id int) (models.Genre, error) {
	g, ok := c.genres[id]
	if !ok {
		return models.Genre{}, models.NotFound(models.KindGenre, int64(id))
	}
	return g, nil
}

// GenresExist reports whether every id names a genre.
func (c *Catalog) GenresExist(_ context.Context, ids []int) (bool, error) {
	for _, id := range ids {
		if _, ok := c.genres[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// Ratings lists every rating ordered by identifier.
func (c *Catalog) Ratings(_ context.Context) ([]models.Rating, error) {
	out := make([]models.Rating, 0, len(c.ratings))
	for _, r := range c.ratings {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b models.Rating) int { return a.ID - b.ID })
	return out, nil
}

// Rating returns one rating.
func (c *Catalog) Rating(_ context.Context, id int) (models.Rating, error) {
	r, ok := c.ratings[id]
	if !ok {
		return models.Rating{}, models.NotFound(models.KindRating, int64(id))
	}
	return r, nil
}

// RatingsExist reports whether every id names a rating.
func (c *Catalog) RatingsExist(_ context.Context, ids []int) (bool, error) {
	for _, id := range ids {
		if _, ok := c.ratings[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}
