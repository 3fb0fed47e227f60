// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

// isolateConfig points the loader at an empty directory so no stray
// config.yaml is picked up.
func isolateConfig(t *testing.T) {
	t.Helper()
	orig := DefaultConfigPaths
	DefaultConfigPaths = []string{filepath.Join(t.TempDir(), "absent.yaml")}
	t.Cleanup(func() { DefaultConfigPaths = orig })
	t.Setenv(ConfigPathEnvVar, "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("Storage.Backend = %q, want memory", cfg.Storage.Backend)
	}
	if !cfg.Storage.SeedCatalog {
		t.Error("Storage.SeedCatalog should be true by default")
	}
	if cfg.Storage.Breaker.MaxFailures != 5 {
		t.Errorf("Storage.Breaker.MaxFailures = %d, want 5", cfg.Storage.Breaker.MaxFailures)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.API.DefaultPopularCount != 10 {
		t.Errorf("API.DefaultPopularCount = %d, want 10", cfg.API.DefaultPopularCount)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"STORAGE_BACKEND", "storage.backend"},
		{"DUCKDB_PATH", "storage.path"},
		{"SQLITE_PATH", "storage.path"},
		{"DUCKDB_MAX_MEMORY", "storage.max_memory"},
		{"STORAGE_BREAKER_FAILURES", "storage.breaker.max_failures"},
		{"HTTP_PORT", "server.port"},
		{"POPULAR_DEFAULT_COUNT", "api.default_popular_count"},
		{"CORS_ORIGINS", "api.cors_origins"},
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},

		// Unmapped variables are skipped
		{"PATH", ""},
		{"HOME", ""},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	explicit := filepath.Join(tmpDir, "explicit.yaml")
	fallback := filepath.Join(tmpDir, "fallback.yaml")
	for _, p := range []string{explicit, fallback} {
		if err := os.WriteFile(p, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	orig := DefaultConfigPaths
	t.Cleanup(func() { DefaultConfigPaths = orig })
	DefaultConfigPaths = []string{filepath.Join(tmpDir, "missing.yaml"), fallback}

	t.Run("env var wins", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, explicit)
		if got := findConfigFile(); got != explicit {
			t.Errorf("findConfigFile() = %q, want %q", got, explicit)
		}
	})

	t.Run("missing env path falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(tmpDir, "nope.yaml"))
		if got := findConfigFile(); got != fallback {
			t.Errorf("findConfigFile() = %q, want %q", got, fallback)
		}
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		DefaultConfigPaths = []string{filepath.Join(tmpDir, "missing.yaml")}
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolateConfig(t)
	t.Setenv("STORAGE_BACKEND", "SQLite")
	t.Setenv("STORAGE_PATH", ":memory:")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORAGE_BREAKER_TIMEOUT", "45s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != ":memory:" {
		t.Errorf("Storage.Path = %q, want :memory:", cfg.Storage.Path)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Storage.Breaker.Timeout != 45*time.Second {
		t.Errorf("Storage.Breaker.Timeout = %v, want 45s", cfg.Storage.Breaker.Timeout)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !slices.Equal(cfg.API.CORSOrigins, want) {
		t.Errorf("API.CORSOrigins = %v, want %v", cfg.API.CORSOrigins, want)
	}

	// Unset values keep their defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.API.DefaultPopularCount != 10 {
		t.Errorf("API.DefaultPopularCount = %d, want 10 (default)", cfg.API.DefaultPopularCount)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	isolateConfig(t)

	configContent := `
storage:
  backend: duckdb
  path: /tmp/films.duckdb
  max_memory: 1GB
server:
  port: 7070
api:
  default_popular_count: 5
logging:
  level: warn
  format: console
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Storage.Backend != BackendDuckDB {
		t.Errorf("Storage.Backend = %q, want duckdb", cfg.Storage.Backend)
	}
	if cfg.Storage.MaxMemory != "1GB" {
		t.Errorf("Storage.MaxMemory = %q, want 1GB", cfg.Storage.MaxMemory)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.API.DefaultPopularCount != 5 {
		t.Errorf("API.DefaultPopularCount = %d, want 5", cfg.API.DefaultPopularCount)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	isolateConfig(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: 7070\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "6060")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 6060 {
		t.Errorf("Server.Port = %d, want 6060 (env should win)", cfg.Server.Port)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown backend",
			env:     map[string]string{"STORAGE_BACKEND": "postgres"},
			wantErr: "STORAGE_BACKEND",
		},
		{
			name:    "port out of range",
			env:     map[string]string{"HTTP_PORT": "70000"},
			wantErr: "HTTP_PORT",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"LOG_LEVEL": "verbose"},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "zero popular count",
			env:     map[string]string{"POPULAR_DEFAULT_COUNT": "0"},
			wantErr: "POPULAR_DEFAULT_COUNT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRelationalStorage(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing path", func(c *Config) { c.Storage.Path = "" }, "STORAGE_PATH"},
		{"negative threads", func(c *Config) { c.Storage.Threads = -1 }, "DUCKDB_THREADS"},
		{"no connections", func(c *Config) { c.Storage.MaxOpenConns = 0 }, "STORAGE_MAX_OPEN_CONNS"},
		{"zero breaker failures", func(c *Config) { c.Storage.Breaker.MaxFailures = 0 }, "STORAGE_BREAKER_FAILURES"},
		{"zero cache ttl", func(c *Config) { c.Storage.CatalogCacheTTL = 0 }, "CATALOG_CACHE_TTL"},
		{"zero health interval", func(c *Config) { c.Storage.HealthInterval = 0 }, "STORAGE_HEALTH_INTERVAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Storage.Backend = BackendDuckDB
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %s", err, tt.wantErr)
			}
		})
	}

	// The memory backend ignores relational settings.
	cfg := defaultConfig()
	cfg.Storage.Path = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("memory backend should not require a path: %v", err)
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", got)
	}
}
