// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package models

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		invalid     bool
		notFound    bool
		unavailable bool
		message     string
	}{
		{
			name:     "not found",
			err:      NotFound(KindFilm, 42),
			notFound: true,
			message:  "film 42 not found",
		},
		{
			name:    "invalid input",
			err:     InvalidInput("genre %d is unknown", 9),
			invalid: true,
			message: "invalid input: genre 9 is unknown",
		},
		{
			name:        "storage unavailable",
			err:         Unavailable("get film", sql.ErrConnDone),
			unavailable: true,
			message:     "storage unavailable: get film: sql: connection is already closed",
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("like: %w", NotFound(KindUser, 7)),
			notFound: true,
			message:  "like: user 7 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := errors.Is(tt.err, ErrInvalidInput); got != tt.invalid {
				t.Errorf("errors.Is(ErrInvalidInput) = %v, want %v", got, tt.invalid)
			}
			if got := errors.Is(tt.err, ErrNotFound); got != tt.notFound {
				t.Errorf("errors.Is(ErrNotFound) = %v, want %v", got, tt.notFound)
			}
			if got := errors.Is(tt.err, ErrStorageUnavailable); got != tt.unavailable {
				t.Errorf("errors.Is(ErrStorageUnavailable) = %v, want %v", got, tt.unavailable)
			}
			if tt.err.Error() != tt.message {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.message)
			}
		})
	}
}

func TestUnavailableKeepsDomainErrors(t *testing.T) {
	t.Parallel()

	nf := NotFound(KindGenre, 3)
	if got := Unavailable("get genre", nf); got != nf {
		t.Errorf("Unavailable() rewrapped a domain error: %v", got)
	}
	if Unavailable("noop", nil) != nil {
		t.Error("Unavailable(nil) should be nil")
	}

	wrapped := Unavailable("query", sql.ErrTxDone)
	if !errors.Is(wrapped, sql.ErrTxDone) {
		t.Error("StorageError should unwrap to the driver error")
	}
}

func TestNotFoundKind(t *testing.T) {
	t.Parallel()

	kind, ok := NotFoundKind(fmt.Errorf("unlike: %w", NotFound(KindFilm, 1)))
	if !ok || kind != KindFilm {
		t.Errorf("NotFoundKind() = %q, %v; want %q, true", kind, ok, KindFilm)
	}
	if _, ok := NotFoundKind(InvalidInput("x")); ok {
		t.Error("NotFoundKind() should not match InvalidInputError")
	}
}
