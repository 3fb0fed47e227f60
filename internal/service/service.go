// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package service

import (
	"context"

	"github.com/tomtom215/filmorate/internal/models"
	"github.com/tomtom215/filmorate/internal/storage"
)

// Service enforces the rules that span more than one store: like edges
// need both endpoints, tags must exist in the catalogs, and returned
// films carry resolved genre and rating names.
type Service struct {
	films   storage.FilmStore
	users   storage.UserStore
	catalog storage.Catalog
}

// New creates a Service over the given stores.
func New(films storage.FilmStore, users storage.UserStore, catalog storage.Catalog) *Service {
	return &Service{
		films:   films,
		users:   users,
		catalog: catalog,
	}
}

// NewFromBackend creates a Service over every store of backend.
func NewFromBackend(backend *storage.Backend) *Service {
	return New(backend.Films, backend.Users, backend.Catalog)
}

func (s *Service) requireFilm(ctx context.Context, id int64) error {
	ok, err := s.films.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NotFound(models.KindFilm, id)
	}
	return nil
}

func (s *Service) requireUser(ctx context.Context, id int64) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NotFound(models.KindUser, id)
	}
	return nil
}

// checkGenres fails InvalidInput unless every id is in the Genre catalog.
func (s *Service) checkGenres(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	ok, err := s.catalog.GenresExist(ctx, ids)
	if err != nil {
		return err
	}
	if !ok {
		return models.InvalidInput("unknown genre in %v", ids)
	}
	return nil
}

// checkRating fails InvalidInput unless id is nil or in the Rating catalog.
func (s *Service) checkRating(ctx context.Context, id *int) error {
	if id == nil {
		return nil
	}
	ok, err := s.catalog.RatingsExist(ctx, []int{*id})
	if err != nil {
		return err
	}
	if !ok {
		return models.InvalidInput("unknown rating %d", *id)
	}
	return nil
}
