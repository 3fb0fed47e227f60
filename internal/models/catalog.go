// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package models

// Genre is a film genre reference record.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Rating is a Motion Picture Association rating reference record.
type Rating struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// DefaultGenres returns the genre catalog seeded at deployment.
func DefaultGenres() []Genre {
	return []Genre{
		{ID: 1, Name: "Comedy"},
		{ID: 2, Name: "Drama"},
		{ID: 3, Name: "Animation"},
		{ID: 4, Name: "Thriller"},
		{ID: 5, Name: "Documentary"},
		{ID: 6, Name: "Action"},
	}
}

// DefaultRatings returns the MPA rating catalog seeded at deployment.
func DefaultRatings() []Rating {
	return []Rating{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
}
