// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package service

import (
	"context"

	"github.com/tomtom215/filmorate/internal/logging"
	"github.com/tomtom215/filmorate/internal/models"
)

// AddFilm stores a new film together with its genres and rating in one
// store write. Catalog references are checked before anything is written.
func (s *Service) AddFilm(ctx context.Context, film models.Film) (models.Film, error) {
	genreIDs, ratingID := film.GenreIDs(), film.RatingID()
	if err := s.checkTags(ctx, genreIDs, ratingID); err != nil {
		return models.Film{}, err
	}

	created, err := s.films.AddTaggedFilm(ctx, film, genreIDs, ratingID)
	if err != nil {
		return models.Film{}, err
	}

	logging.Ctx(ctx).Info().Int64("film_id", created.ID).Str("name", created.Name).Msg("Film created")
	return s.hydrateCommitted(ctx, created), nil
}

// UpdateFilm overwrites a film's fields. Genres and rating are replaced
// by the ones in film, so omitting them clears the stored tags. A missing
// film is reported before an unknown catalog reference.
func (s *Service) UpdateFilm(ctx context.Context, film models.Film) (models.Film, error) {
	if err := s.requireFilm(ctx, film.ID); err != nil {
		return models.Film{}, err
	}
	genreIDs, ratingID := film.GenreIDs(), film.RatingID()
	if err := s.checkTags(ctx, genreIDs, ratingID); err != nil {
		return models.Film{}, err
	}

	updated, err := s.films.ReplaceFilm(ctx, film, genreIDs, ratingID)
	if err != nil {
		return models.Film{}, err
	}

	logging.Ctx(ctx).Info().Int64("film_id", film.ID).Msg("Film updated")
	return s.hydrateCommitted(ctx, updated), nil
}

func (s *Service) checkTags(ctx context.Context, genreIDs []int, ratingID *int) error {
	if err := s.checkGenres(ctx, genreIDs); err != nil {
		return err
	}
	return s.checkRating(ctx, ratingID)
}

// hydrateCommitted resolves tag names on a film that is already stored.
// The write has succeeded, so a catalog failure leaves the names empty
// instead of failing the call.
func (s *Service) hydrateCommitted(ctx context.Context, film models.Film) models.Film {
	films, err := s.hydrate(ctx, []models.Film{film.Clone()})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("film_id", film.ID).Msg("Failed to resolve tag names for stored film")
		return film
	}
	return films[0]
}

// GetFilm returns one hydrated film.
func (s *Service) GetFilm(ctx context.Context, id int64) (models.Film, error) {
	film, err := s.films.GetFilm(ctx, id)
	if err != nil {
		return models.Film{}, err
	}
	films, err := s.hydrate(ctx, []models.Film{film})
	if err != nil {
		return models.Film{}, err
	}
	return films[0], nil
}

// GetFilms returns every film, hydrated, ordered by id.
func (s *Service) GetFilms(ctx context.Context) ([]models.Film, error) {
	films, err := s.films.GetFilms(ctx)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, films)
}

// TopByLikes returns up to n hydrated films, most liked first.
func (s *Service) TopByLikes(ctx context.Context, n int) ([]models.Film, error) {
	films, err := s.films.TopByLikes(ctx, n)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, films)
}

// Like records that userID likes filmID. A missing film is reported
// before a missing user.
func (s *Service) Like(ctx context.Context, filmID, userID int64) (models.Film, error) {
	if err := s.requireFilm(ctx, filmID); err != nil {
		return models.Film{}, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return models.Film{}, err
	}
	if err := s.films.Like(ctx, filmID, userID); err != nil {
		return models.Film{}, err
	}

	logging.Ctx(ctx).Debug().Int64("film_id", filmID).Int64("user_id", userID).Msg("Film liked")
	return s.GetFilm(ctx, filmID)
}

// Unlike removes userID's like from filmID. Removing an absent like is
// not an error, but both endpoints must exist.
func (s *Service) Unlike(ctx context.Context, filmID, userID int64) (models.Film, error) {
	if err := s.requireFilm(ctx, filmID); err != nil {
		return models.Film{}, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return models.Film{}, err
	}
	if err := s.films.Unlike(ctx, filmID, userID); err != nil {
		return models.Film{}, err
	}

	logging.Ctx(ctx).Debug().Int64("film_id", filmID).Int64("user_id", userID).Msg("Film unliked")
	return s.GetFilm(ctx, filmID)
}

// AttachGenres replaces the film's genres with genreIDs.
func (s *Service) AttachGenres(ctx context.Context, filmID int64, genreIDs []int) (models.Film, error) {
	if err := s.requireFilm(ctx, filmID); err != nil {
		return models.Film{}, err
	}
	if err := s.checkGenres(ctx, genreIDs); err != nil {
		return models.Film{}, err
	}
	if err := s.films.SetGenres(ctx, filmID, genreIDs); err != nil {
		return models.Film{}, err
	}
	return s.GetFilm(ctx, filmID)
}

// AttachRating sets the film's rating, or clears it when ratingID is nil.
func (s *Service) AttachRating(ctx context.Context, filmID int64, ratingID *int) (models.Film, error) {
	if err := s.requireFilm(ctx, filmID); err != nil {
		return models.Film{}, err
	}
	if err := s.checkRating(ctx, ratingID); err != nil {
		return models.Film{}, err
	}
	if err := s.films.SetRating(ctx, filmID, ratingID); err != nil {
		return models.Film{}, err
	}
	return s.GetFilm(ctx, filmID)
}

// hydrate resolves genre and rating names on films in place.
func (s *Service) hydrate(ctx context.Context, films []models.Film) ([]models.Film, error) {
	if len(films) == 0 {
		return films, nil
	}

	genres, err := s.catalog.Genres(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.catalog.Ratings(ctx)
	if err != nil {
		return nil, err
	}
	genreNames := make(map[int]string, len(genres))
	for _, g := range genres {
		genreNames[g.ID] = g.Name
	}
	ratingNames := make(map[int]string, len(ratings))
	for _, r := range ratings {
		ratingNames[r.ID] = r.Name
	}

	for i := range films {
		for j := range films[i].Genres {
			films[i].Genres[j].Name = genreNames[films[i].Genres[j].ID]
		}
		if films[i].Rating != nil {
			films[i].Rating.Name = ratingNames[films[i].Rating.ID]
		}
	}
	return films, nil
}
