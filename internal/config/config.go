// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package config

import (
	"net"
	"strconv"
	"time"
)

// Storage backends selectable at startup.
const (
	BackendMemory = "memory"
	BackendDuckDB = "duckdb"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig `koanf:"storage"`
	Server  ServerConfig  `koanf:"server"`
	API     APIConfig     `koanf:"api"`
	Logging LoggingConfig `koanf:"logging"`
}

// StorageConfig selects and tunes the storage backend.
type StorageConfig struct {
	// Backend is one of memory, duckdb or sqlite. Default: memory
	Backend string `koanf:"backend"`

	// Path is the database file for the relational backends.
	// ":memory:" keeps the database in process memory.
	Path string `koanf:"path"`

	// DuckDB tuning. Threads of 0 uses runtime.NumCPU().
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`

	// MaxOpenConns caps the connection pool. SQLite always uses one connection.
	MaxOpenConns int `koanf:"max_open_conns"`

	// BusyTimeout is how long SQLite waits on a locked database.
	BusyTimeout time.Duration `koanf:"busy_timeout"`

	// SeedCatalog inserts the standard genre and MPA rows at startup.
	SeedCatalog bool `koanf:"seed_catalog"`

	// CatalogCacheTTL bounds how long catalog rows are served from memory.
	CatalogCacheTTL time.Duration `koanf:"catalog_cache_ttl"`

	// HealthInterval is how often the storage monitor pings the database.
	HealthInterval time.Duration `koanf:"health_interval"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the circuit breaker guarding the relational backend.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive storage failures that opens the breaker.
	MaxFailures uint32 `koanf:"max_failures"`

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration `koanf:"timeout"`

	// Interval resets failure counts while closed. 0 never resets.
	Interval time.Duration `koanf:"interval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging or production
}

// APIConfig holds request handling settings.
type APIConfig struct {
	// DefaultPopularCount is used when /films/popular has no count parameter.
	DefaultPopularCount int `koanf:"default_popular_count"`
	MaxPopularCount     int `koanf:"max_popular_count"`

	// RateLimitRequests per RateLimitWindow per client IP. 0 disables limiting.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes file and line in log entries.
	Caller bool `koanf:"caller"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsRelational reports whether the backend is backed by a database.
func (s StorageConfig) IsRelational() bool {
	return s.Backend == BackendDuckDB || s.Backend == BackendSQLite
}
