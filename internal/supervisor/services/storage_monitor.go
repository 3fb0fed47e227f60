// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/filmorate/internal/logging"
	"github.com/tomtom215/filmorate/internal/metrics"
)

// StoragePinger is implemented by the relational database.
type StoragePinger interface {
	Name() string
	Ping(ctx context.Context) error
	BreakerState() string
}

// StorageMonitorService probes the database on a fixed interval, exports
// the result as filmorate_storage_up and logs transitions between healthy
// and unhealthy.
type StorageMonitorService struct {
	db       StoragePinger
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger

	healthy atomic.Bool
	probed  bool
}

// NewStorageMonitorService creates a monitor. A non-positive interval uses 30s.
func NewStorageMonitorService(db StoragePinger, interval time.Duration) *StorageMonitorService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	timeout := interval / 2
	if timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	return &StorageMonitorService{
		db:       db,
		interval: interval,
		timeout:  timeout,
		logger:   logging.WithComponent("storage-monitor"),
	}
}

// Serve implements suture.Service. It probes immediately, then on every tick
// until ctx is canceled.
func (s *StorageMonitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

func (s *StorageMonitorService) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	err := s.db.Ping(pingCtx)
	cancel()
	if ctx.Err() != nil {
		return
	}

	healthy := err == nil
	metrics.SetStorageUp(s.db.Name(), healthy)

	if s.probed && healthy == s.healthy.Load() {
		return
	}
	s.probed = true
	s.healthy.Store(healthy)

	if healthy {
		s.logger.Info().Str("backend", s.db.Name()).Str("breaker", s.db.BreakerState()).Msg("Storage reachable")
		return
	}
	s.logger.Warn().Err(err).Str("backend", s.db.Name()).Str("breaker", s.db.BreakerState()).Msg("Storage unreachable")
}

// Healthy reports the result of the latest probe.
func (s *StorageMonitorService) Healthy() bool {
	return s.healthy.Load()
}

// String names the service in supervisor logs.
func (s *StorageMonitorService) String() string {
	return "storage-monitor"
}
