// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package service

import (
	"context"

	"github.com/tomtom215/filmorate/internal/models"
)

// Genres lists the Genre catalog.
func (s *Service) Genres(ctx context.Context) ([]models.Genre, error) {
	return s.catalog.Genres(ctx)
}

// Genre returns one genre or NotFound(genre).
func (s *Service) Genre(ctx context.Context, id int) (models.Genre, error) {
	return s.catalog.Genre(ctx, id)
}

// Ratings lists the Rating catalog.
func (s *Service) Ratings(ctx context.Context) ([]models.Rating, error) {
	return s.catalog.Ratings(ctx)
}

// Rating returns one rating or NotFound(rating).
func (s *Service) Rating(ctx context.Context, id int) (models.Rating, error) {
	return s.catalog.Rating(ctx, id)
}
