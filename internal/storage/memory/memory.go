// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

// Package memory implements the storage interfaces on in-process maps.
// State lives for the lifetime of the process.
package memory

import "github.com/tomtom215/filmorate/internal/storage"

// NewBackend returns empty film and user stores with the seeded catalog.
func NewBackend() *storage.Backend {
	return &storage.Backend{
		Films:   NewFilmStore(),
		Users:   NewUserStore(),
		Catalog: NewDefaultCatalog(),
	}
}
