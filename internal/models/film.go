// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package models

import (
	"slices"
	"time"
)

// CinemaBirthday is the date of the first public film screening.
// Release dates must fall strictly after it.
var CinemaBirthday = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// MaxDescriptionLength is the maximum film description length in characters.
const MaxDescriptionLength = 200

// Film is a rateable catalog item.
//
// Rating and Genres are resolved by the service layer; stores populate
// only their identifiers. Likes holds the ids of users who liked the film,
// sorted ascending.
type Film struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"notblank"`
	Description string    `json:"description" validate:"max=200"`
	ReleaseDate time.Time `json:"releaseDate" validate:"releasedate"`
	Duration    int       `json:"duration" validate:"gt=0"`
	Rating      *Rating   `json:"mpa,omitempty"`
	Genres      []Genre   `json:"genres"`
	Likes       []int64   `json:"likes"`
}

// Clone returns a deep copy so callers never alias another holder's slices.
func (f Film) Clone() Film {
	out := f
	if f.Rating != nil {
		r := *f.Rating
		out.Rating = &r
	}
	out.Genres = slices.Clone(f.Genres)
	if out.Genres == nil {
		out.Genres = []Genre{}
	}
	out.Likes = slices.Clone(f.Likes)
	if out.Likes == nil {
		out.Likes = []int64{}
	}
	return out
}

// RatingID returns the attached rating identifier, or nil when unrated.
func (f Film) RatingID() *int {
	if f.Rating == nil {
		return nil
	}
	id := f.Rating.ID
	return &id
}

// GenreIDs returns the attached genre identifiers in stored order.
func (f Film) GenreIDs() []int {
	ids := make([]int, 0, len(f.Genres))
	for _, g := range f.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}
