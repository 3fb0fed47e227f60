// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/filmorate/internal/middleware"
)

type contextKey string

const startTimeKey contextKey = "start_time"

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. A nil middleware config uses the defaults.
func NewRouter(handler *Handler, mc *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mc),
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to chi's r.Use form.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// requestStart records when the request entered the router so responses
// can report query_time_ms.
func requestStart(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), startTimeKey, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(requestStart)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeInvalidInput, "method not allowed")
	})

	r.Get("/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Route("/films", func(r chi.Router) {
			r.Post("/", router.handler.AddFilm)
			r.Put("/", router.handler.UpdateFilm)
			r.Get("/", router.handler.GetFilms)
			r.Get("/popular", router.handler.PopularFilms)
			r.Get("/{id}", router.handler.GetFilm)
			r.Put("/{id}/like/{userId}", router.handler.Like)
			r.Delete("/{id}/like/{userId}", router.handler.Unlike)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", router.handler.CreateUser)
			r.Put("/", router.handler.UpdateUser)
			r.Get("/", router.handler.GetUsers)
			r.Get("/{id}", router.handler.GetUser)
			r.Get("/{id}/friends", router.handler.Friends)
			r.Get("/{id}/friends/common/{otherId}", router.handler.CommonFriends)
			r.Put("/{id}/friends/{friendId}", router.handler.AddFriend)
			r.Delete("/{id}/friends/{friendId}", router.handler.RemoveFriend)
		})

		r.Get("/genres", router.handler.Genres)
		r.Get("/genres/{id}", router.handler.Genre)
		r.Get("/mpa", router.handler.Ratings)
		r.Get("/mpa/{id}", router.handler.Rating)
	})

	return r
}
