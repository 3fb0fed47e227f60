// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package api

import (
	"context"
	"time"

	"github.com/tomtom215/filmorate/internal/config"
	"github.com/tomtom215/filmorate/internal/service"
)

// HealthChecker reports on the storage backend. The relational database
// implements it; the in-memory backend has nothing to report.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
	BreakerState() string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_films.go: film, like and popularity endpoints
//   - handlers_users.go: user and friendship endpoints
//   - handlers_catalog.go: genre and MPA rating endpoints
//   - handlers_health.go: health endpoint
type Handler struct {
	svc       *service.Service
	config    config.APIConfig
	health    HealthChecker
	startTime time.Time
}

// NewHandler creates the API handler. health may be nil.
//
// Example:
//
//	handler := api.NewHandler(svc, cfg.API, db)
//	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromAPI(cfg.API))
//	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
func NewHandler(svc *service.Service, cfg config.APIConfig, health HealthChecker) *Handler {
	if cfg.DefaultPopularCount <= 0 {
		cfg.DefaultPopularCount = 10
	}
	return &Handler{
		svc:       svc,
		config:    cfg,
		health:    health,
		startTime: time.Now(),
	}
}
