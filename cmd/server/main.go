// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/filmorate/internal/api"
	"github.com/tomtom215/filmorate/internal/config"
	"github.com/tomtom215/filmorate/internal/database"
	"github.com/tomtom215/filmorate/internal/logging"
	"github.com/tomtom215/filmorate/internal/service"
	"github.com/tomtom215/filmorate/internal/storage"
	"github.com/tomtom215/filmorate/internal/storage/memory"
	"github.com/tomtom215/filmorate/internal/supervisor"
	"github.com/tomtom215/filmorate/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("backend", cfg.Storage.Backend).
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Filmorate with supervisor tree")

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	backend, health, err := openBackend(cfg, tree)
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("Failed to initialize storage")
	}
	defer func() {
		if backend.Close == nil {
			return
		}
		if err := backend.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing storage")
		}
	}()

	svc := service.NewFromBackend(backend)
	handler := api.NewHandler(svc, cfg.API, health)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromAPI(cfg.API))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, u := range unstopped {
			logging.Warn().Str("service", u.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// openBackend builds the configured storage backend. Relational backends
// also get a storage monitor in the supervisor tree and report health
// through the returned checker; the memory backend returns a nil checker.
func openBackend(cfg *config.Config, tree *supervisor.SupervisorTree) (*storage.Backend, api.HealthChecker, error) {
	if !cfg.Storage.IsRelational() {
		logging.Info().Msg("Using in-memory storage")
		return memory.NewBackend(), nil, nil
	}

	db, err := database.New(&cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	logging.Info().
		Str("backend", db.Name()).
		Str("path", cfg.Storage.Path).
		Msg("Database initialized successfully")

	tree.AddStorageService(services.NewStorageMonitorService(db, cfg.Storage.HealthInterval))
	return db.Backend(), db, nil
}
