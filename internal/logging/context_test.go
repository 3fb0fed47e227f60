// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q, want empty", got)
	}

	ctx = ContextWithRequestID(ctx, "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("RequestIDFromContext() = %q, want req-123", got)
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateRequestID()
		if len(id) != 36 {
			t.Fatalf("GenerateRequestID() = %q, want a UUID", id)
		}
		if seen[id] {
			t.Fatalf("duplicate request id %q", id)
		}
		seen[id] = true
	}
}

func TestCtxAddsRequestID(t *testing.T) {
	buf := captureGlobal(t, "info")
	ctx := ContextWithRequestID(context.Background(), "abc-def")

	Ctx(ctx).Info().Msg("handled")

	output := buf.String()
	if !strings.Contains(output, `"request_id":"abc-def"`) {
		t.Errorf("expected request_id field, got: %s", output)
	}
}

func TestCtxWithoutRequestID(t *testing.T) {
	buf := captureGlobal(t, "info")

	Ctx(context.Background()).Info().Msg("plain")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("unexpected request_id field: %s", buf.String())
	}
}

func TestCtxPrefersBoundLogger(t *testing.T) {
	global := captureGlobal(t, "info")

	var buf bytes.Buffer
	bound := zerolog.New(&buf).With().Str("request_id", "bound-id").Logger()
	ctx := ContextWithLogger(context.Background(), bound)
	ctx = ContextWithRequestID(ctx, "bound-id")

	Ctx(ctx).Info().Msg("handled")

	output := buf.String()
	if strings.Count(output, `"request_id"`) != 1 {
		t.Errorf("expected a single request_id field, got: %s", output)
	}
	if global.Len() != 0 {
		t.Errorf("global logger should stay silent, got: %s", global.String())
	}
}
