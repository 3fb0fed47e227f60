// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

/*
database_connection.go - Connection Strings and Pool Configuration

DuckDB:
  - Driver name "duckdb", DSN "<path>?threads=N&max_memory=X"
  - ":memory:" opens a private in-process database per sql.DB
  - Pool size from storage.max_open_conns; connections share one database

SQLite:
  - Driver name "sqlite" (pure Go, modernc.org/sqlite)
  - busy_timeout and WAL journaling are applied through _pragma parameters
  - The pool is pinned to one long-lived connection. An in-memory SQLite
    database belongs to a single connection, and SQLite admits one writer.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"fmt"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/tomtom215/filmorate/internal/config"
)

// connectionString returns the database/sql driver name and DSN for cfg.
func connectionString(cfg *config.StorageConfig) (driver, dsn string) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return "sqlite", sqliteDSN(cfg)
	default:
		return "duckdb", duckDBDSN(cfg)
	}
}

func duckDBDSN(cfg *config.StorageConfig) string {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	params := url.Values{}
	params.Set("threads", fmt.Sprintf("%d", threads))
	if cfg.MaxMemory != "" {
		params.Set("max_memory", cfg.MaxMemory)
	}
	return cfg.Path + "?" + params.Encode()
}

func sqliteDSN(cfg *config.StorageConfig) string {
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	if cfg.Path != MemoryPath {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	return cfg.Path + "?" + params.Encode()
}

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() {
	if db.backend == config.BackendSQLite {
		db.conn.SetMaxOpenConns(1)
		db.conn.SetMaxIdleConns(1)
		db.conn.SetConnMaxLifetime(0)
		db.conn.SetConnMaxIdleTime(0)
		return
	}

	maxOpen := db.cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = runtime.NumCPU()
	}
	db.conn.SetMaxOpenConns(maxOpen)
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// isConnectionError checks if an error indicates database connection loss
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"bad connection",
		"database is closed",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
