// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package api

import (
	"net/http"
)

// Genres handles GET /genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.svc.Genres(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, genres, len(genres))
}

// Genre handles GET /genres/{id}.
func (h *Handler) Genre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	genre, err := h.svc.Genre(r.Context(), int(id))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, genre)
}

// Ratings handles GET /mpa.
func (h *Handler) Ratings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.svc.Ratings(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, ratings, len(ratings))
}

// Rating handles GET /mpa/{id}.
func (h *Handler) Rating(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	rating, err := h.svc.Rating(r.Context(), int(id))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, rating)
}
