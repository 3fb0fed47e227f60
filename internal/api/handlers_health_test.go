// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/filmorate/internal/service"
	"github.com/tomtom215/filmorate/internal/storage/memory"
)

type fakeHealth struct {
	name    string
	pingErr error
	breaker string
}

func (f fakeHealth) Name() string { return f.name }
func (f fakeHealth) Ping(context.Context) error { return f.pingErr }
func (f fakeHealth) BreakerState() string { return f.breaker }

func TestHealth(t *testing.T) {
	tests := []struct {
		name        string
		checker     HealthChecker
		wantStatus  string
		wantBackend string
		wantOK      bool
	}{
		{"memory backend", nil, "healthy", "memory", true},
		{"database healthy", fakeHealth{name: "sqlite", breaker: "closed"}, "healthy", "sqlite", true},
		{"ping failure", fakeHealth{name: "duckdb", breaker: "closed", pingErr: errors.New("database is closed")}, "degraded", "duckdb", false},
		{"breaker open", fakeHealth{name: "sqlite", breaker: "open"}, "degraded", "sqlite", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewFromBackend(memory.NewBackend())
			h := NewRouter(NewHandler(svc, testAPIConfig(), tt.checker), nil).SetupChi()

			rec, env := doRequest(t, h, http.MethodGet, "/health", "")
			expectStatus(t, rec, env, http.StatusOK, "")

			var status HealthStatus
			decodeData(t, env, &status)
			if status.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status.Status, tt.wantStatus)
			}
			if status.Backend != tt.wantBackend {
				t.Errorf("backend = %q, want %q", status.Backend, tt.wantBackend)
			}
			if status.StorageOK != tt.wantOK {
				t.Errorf("storage_ok = %v, want %v", status.StorageOK, tt.wantOK)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := setupTestRouter(t)

	// Generate at least one API sample.
	doRequest(t, h, http.MethodGet, "/genres", "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "filmorate_api_requests_total") {
		t.Error("metrics output is missing filmorate_api_requests_total")
	}
}
