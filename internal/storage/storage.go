// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

// Package storage defines the capability sets implemented by every storage
// backend, plus the helpers the backends share.
//
// Two variants implement each interface: internal/storage/memory and
// internal/database. Both must behave identically; the conformance suite in
// internal/storage/storagetest is run against each of them.
package storage

import (
	"context"

	"github.com/tomtom215/filmorate/internal/models"
)

// FilmStore owns film records, the like relation and the genre/rating
// relation rows. Returned films carry likes and tag identifiers only.
type FilmStore interface {
	AddFilm(ctx context.Context, film models.Film) (models.Film, error)
	UpdateFilm(ctx context.Context, film models.Film) (models.Film, error)
	GetFilm(ctx context.Context, id int64) (models.Film, error)
	GetFilms(ctx context.Context) ([]models.Film, error)
	Exists(ctx context.Context, id int64) (bool, error)

	Like(ctx context.Context, filmID, userID int64) error
	Unlike(ctx context.Context, filmID, userID int64) error
	IsLiked(ctx context.Context, filmID, userID int64) (bool, error)
	TopByLikes(ctx context.Context, n int) ([]models.Film, error)

	// SetGenres replaces the film's genre set in a single step.
	SetGenres(ctx context.Context, filmID int64, genreIDs []int) error
	// SetRating attaches ratingID, or clears the rating when nil.
	SetRating(ctx context.Context, filmID int64, ratingID *int) error

	// AddTaggedFilm inserts film with its genre set and rating in one step.
	AddTaggedFilm(ctx context.Context, film models.Film, genreIDs []int, ratingID *int) (models.Film, error)
	// ReplaceFilm overwrites the scalar fields, genre set and rating of an
	// existing film in one step. Likes are untouched.
	ReplaceFilm(ctx context.Context, film models.Film, genreIDs []int, ratingID *int) (models.Film, error)
}

// UserStore owns user records and the symmetrized friendship relation.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	Exists(ctx context.Context, id int64) (bool, error)

	AddFriend(ctx context.Context, id, friendID int64) error
	RemoveFriend(ctx context.Context, id, friendID int64) error
	FriendsOf(ctx context.Context, id int64) ([]models.User, error)
	CommonFriends(ctx context.Context, id, otherID int64) ([]models.User, error)
}

// Catalog serves the read-only Genre and Rating reference tables.
type Catalog interface {
	Genres(ctx context.Context) ([]models.Genre, error)
	Genre(ctx context.Context, id int) (models.Genre, error)
	GenresExist(ctx context.Context, ids []int) (bool, error)

	Ratings(ctx context.Context) ([]models.Rating, error)
	Rating(ctx context.Context, id int) (models.Rating, error)
	RatingsExist(ctx context.Context, ids []int) (bool, error)
}

// Backend bundles the three stores of one storage variant.
type Backend struct {
	Films   FilmStore
	Users   UserStore
	Catalog Catalog

	// Close releases backend resources. Nil for backends holding none.
	Close func() error
}
