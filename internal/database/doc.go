// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

// Package database provides the relational storage backend for Filmorate.
//
// # Overview
//
// The same DB type runs on two engines, selected by storage.backend:
//   - duckdb: github.com/duckdb/duckdb-go/v2 (CGO)
//   - sqlite: modernc.org/sqlite (pure Go)
//
// DB.Backend exposes the database as the storage.FilmStore,
// storage.UserStore and storage.Catalog interfaces. Behavior matches the
// in-memory backend exactly; both run the storagetest conformance suite.
//
// # Architecture
//
//   - database.go: lifecycle (open, initialize, close)
//   - database_connection.go: DSNs and connection pool configuration
//   - database_schema.go: tables, indexes and catalog seeding
//   - query_helpers.go: transactions, id allocation, date scanning
//   - breaker.go: circuit breaker around every store operation
//   - films.go, users.go, catalog.go: the store implementations
//
// # Usage
//
//	db, err := database.New(&cfg.Storage)
//	if err != nil {
//	    return err
//	}
//	backend := db.Backend()
//	defer backend.Close()
//
//	film, err := backend.Films.AddFilm(ctx, film)
//
// # Concurrency
//
// All exported methods are safe for concurrent use. Write transactions are
// serialized through a process-wide mutex; identifiers are allocated inside
// the write transaction as MAX(id)+1. Reads run in their own transaction
// so a film and its relation rows come from one snapshot.
//
// # Error Handling
//
// Store methods return the kinds defined in internal/models:
//   - NotFound for a missing film or user
//   - InvalidInput for self-friendship or a preset id on create
//   - StorageUnavailable for any driver failure, and while the circuit
//     breaker is open
//
// Driver errors stay in the StorageUnavailable chain for logging; callers
// should branch on errors.Is only.
package database
