// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package api

import (
	"net/http"

	"github.com/tomtom215/filmorate/internal/validation"
)

// CreateUser handles POST /users. A blank name defaults to the login.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	user := req.User()
	if violations := validation.ValidateNewUser(user); len(violations) > 0 {
		respondValidation(w, r, violations)
		return
	}

	created, err := h.svc.CreateUser(r.Context(), user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, newUserResponse(created))
}

// UpdateUser handles PUT /users.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	user := req.User()
	if violations := validation.ValidateUser(user); len(violations) > 0 {
		respondValidation(w, r, violations)
		return
	}

	updated, err := h.svc.UpdateUser(r.Context(), user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newUserResponse(updated))
}

// GetUsers handles GET /users.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.GetUsers(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newUserResponses(users), len(users))
}

// GetUser handles GET /users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newUserResponse(user))
}

// AddFriend handles PUT /users/{id}/friends/{friendId} and returns the
// updated user.
func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "friendId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if err := h.svc.AddFriend(r.Context(), ids[0], ids[1]); err != nil {
		respondServiceError(w, r, err)
		return
	}
	h.respondUser(w, r, ids[0])
}

// RemoveFriend handles DELETE /users/{id}/friends/{friendId} and returns
// the updated user.
func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "friendId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if err := h.svc.RemoveFriend(r.Context(), ids[0], ids[1]); err != nil {
		respondServiceError(w, r, err)
		return
	}
	h.respondUser(w, r, ids[0])
}

// Friends handles GET /users/{id}/friends.
func (h *Handler) Friends(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	friends, err := h.svc.Friends(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newUserResponses(friends), len(friends))
}

// CommonFriends handles GET /users/{id}/friends/common/{otherId}.
func (h *Handler) CommonFriends(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "otherId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	common, err := h.svc.CommonFriends(r.Context(), ids[0], ids[1])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newUserResponses(common), len(common))
}

func (h *Handler) respondUser(w http.ResponseWriter, r *http.Request, id int64) {
	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newUserResponse(user))
}
