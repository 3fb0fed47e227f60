// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

/*
Package api provides the HTTP REST API for Filmorate.

Key Components:

  - Router: chi route table and global middleware stack
  - Handler: request handlers over service.Service
  - ChiMiddleware: go-chi/cors and go-chi/httprate factories
  - FilmRequest, UserRequest and their responses: wire shapes with
    YYYY-MM-DD dates

Endpoints:

	POST   /films                             create a film (body must not carry an id)
	PUT    /films                             update a film, replacing genres and mpa
	GET    /films                             list films
	GET    /films/{id}                        one film
	GET    /films/popular?count=N             most liked films
	PUT    /films/{id}/like/{userId}          like
	DELETE /films/{id}/like/{userId}          unlike
	POST   /users                             create a user
	PUT    /users                             update a user
	GET    /users                             list users
	GET    /users/{id}                        one user
	GET    /users/{id}/friends                friends of a user
	GET    /users/{id}/friends/common/{other} common friends
	PUT    /users/{id}/friends/{friendId}     befriend
	DELETE /users/{id}/friends/{friendId}     unfriend
	GET    /genres, /genres/{id}              genre catalog
	GET    /mpa, /mpa/{id}                    MPA rating catalog
	GET    /health                            liveness and storage state
	GET    /metrics                           Prometheus metrics

Response Format:

Every body uses the models.APIResponse envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "...", "count": 3}}
	{"status": "error", "error": {"code": "NOT_FOUND", "message": "film 42 not found"}, ...}

Error Mapping:

	InvalidInput        400 INVALID_INPUT
	NotFound            404 NOT_FOUND
	StorageUnavailable  503 STORAGE_UNAVAILABLE
	rate limited        429 RATE_LIMIT_EXCEEDED
	anything else       500 INTERNAL_ERROR

Path ids that are not positive integers are rejected with 400 before the
service is called.
*/
package api
