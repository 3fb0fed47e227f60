// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/filmorate/internal/config"
)

// healthPingTimeout bounds the storage ping made by the health endpoint.
const healthPingTimeout = 2 * time.Second

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status        string  `json:"status"` // healthy or degraded
	Backend       string  `json:"backend"`
	StorageOK     bool    `json:"storage_ok"`
	BreakerState  string  `json:"breaker_state,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Health handles GET /health. It always answers 200 while the process is
// serving; a failed storage ping or an open breaker reports "degraded".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:        "healthy",
		Backend:       config.BackendMemory,
		StorageOK:     true,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if h.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		status.Backend = h.health.Name()
		status.BreakerState = h.health.BreakerState()
		status.StorageOK = h.health.Ping(ctx) == nil
		if !status.StorageOK || status.BreakerState == "open" {
			status.Status = "degraded"
		}
	}

	respondData(w, r, http.StatusOK, status)
}
