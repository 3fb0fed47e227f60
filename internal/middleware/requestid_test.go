// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/filmorate/internal/logging"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	var capturedID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		capturedID = logging.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/films", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("Response %s %q is not a valid UUID: %v", RequestIDHeader, responseID, err)
	}
	if capturedID != responseID {
		t.Errorf("Context ID (%s) doesn't match response header ID (%s)", capturedID, responseID)
	}
}

func TestRequestID_UpstreamHeader(t *testing.T) {
	tests := []struct {
		name       string
		incoming   string
		wantReused bool
	}{
		{"proxy id preserved", "existing-request-id-12345", true},
		{"uuid preserved", uuid.New().String(), true},
		{"oversized id replaced", strings.Repeat("x", maxRequestIDLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedID string
			handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
				capturedID = logging.RequestIDFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.Header.Set(RequestIDHeader, tt.incoming)
			rec := httptest.NewRecorder()
			handler(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if reused := got == tt.incoming; reused != tt.wantReused {
				t.Errorf("%s = %q, reused = %v, want %v", RequestIDHeader, got, reused, tt.wantReused)
			}
			if capturedID != got {
				t.Errorf("Context ID (%s) doesn't match response header ID (%s)", capturedID, got)
			}
		})
	}
}

func TestRequestID_MultipleRequests(t *testing.T) {
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {})

	ids := make(map[string]bool)
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/films", nil))

		id := rec.Header().Get(RequestIDHeader)
		if ids[id] {
			t.Errorf("Duplicate request ID generated: %s", id)
		}
		ids[id] = true
	}
}

func TestRequestID_BindsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Ctx(r.Context()).Output(&buf)
		logger.Info().Msg("handled")
	})

	req := httptest.NewRequest(http.MethodGet, "/films", nil)
	req.Header.Set(RequestIDHeader, "proxy-id-42")
	handler(httptest.NewRecorder(), req)

	output := buf.String()
	if !strings.Contains(output, `"request_id":"proxy-id-42"`) {
		t.Errorf("expected request_id field, got: %s", output)
	}
	if n := strings.Count(output, `"request_id"`); n != 1 {
		t.Errorf("request_id appears %d times, want 1: %s", n, output)
	}
}
