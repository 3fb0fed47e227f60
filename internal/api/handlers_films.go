// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package api

import (
	"net/http"

	"github.com/tomtom215/filmorate/internal/validation"
)

// AddFilm handles POST /films. The body must not carry an id.
func (h *Handler) AddFilm(w http.ResponseWriter, r *http.Request) {
	var req FilmRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	film := req.Film()
	if violations := validation.ValidateNewFilm(film); len(violations) > 0 {
		respondValidation(w, r, violations)
		return
	}

	created, err := h.svc.AddFilm(r.Context(), film)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, newFilmResponse(created))
}

// UpdateFilm handles PUT /films. Genres and mpa in the body replace the
// stored ones.
func (h *Handler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	var req FilmRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	film := req.Film()
	if violations := validation.ValidateFilm(film); len(violations) > 0 {
		respondValidation(w, r, violations)
		return
	}

	updated, err := h.svc.UpdateFilm(r.Context(), film)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newFilmResponse(updated))
}

// GetFilms handles GET /films.
func (h *Handler) GetFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.svc.GetFilms(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newFilmResponses(films), len(films))
}

// GetFilm handles GET /films/{id}.
func (h *Handler) GetFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	film, err := h.svc.GetFilm(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newFilmResponse(film))
}

// PopularFilms handles GET /films/popular?count=N. N defaults to the
// configured count and is capped by the configured maximum.
func (h *Handler) PopularFilms(w http.ResponseWriter, r *http.Request) {
	count, err := getIntParam(r, "count", h.config.DefaultPopularCount)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if limit := h.config.MaxPopularCount; limit > 0 && count > limit {
		count = limit
	}

	films, err := h.svc.TopByLikes(r.Context(), count)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newFilmResponses(films), len(films))
}

// Like handles PUT /films/{id}/like/{userId}.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	film, err := h.svc.Like(r.Context(), ids[0], ids[1])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newFilmResponse(film))
}

// Unlike handles DELETE /films/{id}/like/{userId}.
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	film, err := h.svc.Unlike(r.Context(), ids[0], ids[1])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newFilmResponse(film))
}
