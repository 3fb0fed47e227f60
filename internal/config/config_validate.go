// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package config

import (
	"fmt"
	"strings"
)

var validBackends = map[string]bool{
	BackendMemory: true,
	BackendDuckDB: true,
	BackendSQLite: true,
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateStorage() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if !validBackends[c.Storage.Backend] {
		return fmt.Errorf("STORAGE_BACKEND must be one of: memory, duckdb, sqlite (got %q)", c.Storage.Backend)
	}
	if !c.Storage.IsRelational() {
		return nil
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("STORAGE_PATH is required for the %s backend", c.Storage.Backend)
	}
	if c.Storage.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	if c.Storage.MaxOpenConns < 1 {
		return fmt.Errorf("STORAGE_MAX_OPEN_CONNS must be at least 1")
	}
	if c.Storage.Breaker.MaxFailures < 1 {
		return fmt.Errorf("STORAGE_BREAKER_FAILURES must be at least 1")
	}
	if c.Storage.Breaker.Timeout <= 0 {
		return fmt.Errorf("STORAGE_BREAKER_TIMEOUT must be positive")
	}
	if c.Storage.CatalogCacheTTL <= 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL must be positive")
	}
	if c.Storage.HealthInterval <= 0 {
		return fmt.Errorf("STORAGE_HEALTH_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPopularCount < 1 {
		return fmt.Errorf("POPULAR_DEFAULT_COUNT must be at least 1")
	}
	if c.API.MaxPopularCount < c.API.DefaultPopularCount {
		return fmt.Errorf("POPULAR_MAX_COUNT must not be below POPULAR_DEFAULT_COUNT")
	}
	if c.API.RateLimitRequests < 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must not be negative")
	}
	if c.API.RateLimitRequests > 0 && c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
