// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/filmorate/internal/config"
	"github.com/tomtom215/filmorate/internal/metrics"
	"github.com/tomtom215/filmorate/internal/models"
	"github.com/tomtom215/filmorate/internal/storage"
	"github.com/tomtom215/filmorate/internal/storage/storagetest"
)

// testDBSemaphore limits how many databases are open at once. DuckDB
// instances are CGO-heavy and running dozens in parallel starves CI.
var testDBSemaphore = make(chan struct{}, 4)

var testBackends = []string{config.BackendDuckDB, config.BackendSQLite}

func testStorageConfig(backend, path string) *config.StorageConfig {
	return &config.StorageConfig{
		Backend:         backend,
		Path:            path,
		MaxMemory:       "256MB",
		Threads:         2,
		MaxOpenConns:    4,
		BusyTimeout:     5 * time.Second,
		SeedCatalog:     true,
		CatalogCacheTTL: time.Minute,
		Breaker: config.BreakerConfig{
			MaxFailures: 5,
			Timeout:     time.Minute,
		},
	}
}

func setupTestDB(t *testing.T, backend string) *DB {
	t.Helper()
	return setupTestDBWithConfig(t, testStorageConfig(backend, MemoryPath))
}

func setupTestDBWithConfig(t *testing.T, cfg *config.StorageConfig) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestConformance(t *testing.T) {
	for _, backend := range testBackends {
		t.Run(backend, func(t *testing.T) {
			storagetest.Run(t, func(t *testing.T) *storage.Backend {
				return setupTestDB(t, backend).Backend()
			})
		})
	}
}

func TestNewRejectsMemoryBackend(t *testing.T) {
	_, err := New(testStorageConfig(config.BackendMemory, MemoryPath))
	if err == nil {
		t.Fatal("New() with memory backend should fail")
	}
}

func TestReopenKeepsData(t *testing.T) {
	for _, backend := range testBackends {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "nested", "filmorate."+backend)
			cfg := testStorageConfig(backend, path)

			db, err := New(cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			b := db.Backend()
			film, err := b.Films.AddFilm(ctx, storagetest.SampleFilm("Persisted"))
			if err != nil {
				t.Fatalf("AddFilm() error = %v", err)
			}
			user, err := b.Users.CreateUser(ctx, storagetest.SampleUser("keeper"))
			if err != nil {
				t.Fatalf("CreateUser() error = %v", err)
			}
			if err := b.Films.Like(ctx, film.ID, user.ID); err != nil {
				t.Fatalf("Like() error = %v", err)
			}
			if err := db.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			db = setupTestDBWithConfig(t, cfg)
			b = db.Backend()

			got, err := b.Films.GetFilm(ctx, film.ID)
			if err != nil {
				t.Fatalf("GetFilm() after reopen error = %v", err)
			}
			if got.Name != "Persisted" || len(got.Likes) != 1 {
				t.Errorf("GetFilm() after reopen = %+v", got)
			}

			genres, err := b.Catalog.Genres(ctx)
			if err != nil {
				t.Fatalf("Genres() error = %v", err)
			}
			if len(genres) != len(models.DefaultGenres()) {
				t.Errorf("catalog reseeded: %d genres", len(genres))
			}

			next, err := b.Films.AddFilm(ctx, storagetest.SampleFilm("Next"))
			if err != nil {
				t.Fatalf("AddFilm() error = %v", err)
			}
			if next.ID <= film.ID {
				t.Errorf("id %d reused after reopen (previous %d)", next.ID, film.ID)
			}
		})
	}
}

func TestUnseededCatalogIsEmpty(t *testing.T) {
	cfg := testStorageConfig(config.BackendSQLite, MemoryPath)
	cfg.SeedCatalog = false
	db := setupTestDBWithConfig(t, cfg)

	ok, err := db.Backend().Catalog.GenresExist(context.Background(), []int{1})
	if err != nil {
		t.Fatalf("GenresExist() error = %v", err)
	}
	if ok {
		t.Error("GenresExist([1]) = true on an unseeded catalog")
	}

	genres, err := db.Backend().Catalog.Genres(context.Background())
	if err != nil {
		t.Fatalf("Genres() error = %v", err)
	}
	if genres == nil || len(genres) != 0 {
		t.Errorf("Genres() = %#v, want empty non-nil slice", genres)
	}
	ratings, err := db.Backend().Catalog.Ratings(context.Background())
	if err != nil {
		t.Fatalf("Ratings() error = %v", err)
	}
	if ratings == nil || len(ratings) != 0 {
		t.Errorf("Ratings() = %#v, want empty non-nil slice", ratings)
	}
}

func TestCatalogIsCached(t *testing.T) {
	db := setupTestDB(t, config.BackendSQLite)
	catalog := db.Backend().Catalog
	ctx := context.Background()

	hits := metrics.CatalogCacheHits.WithLabelValues("ratings")
	before := testutil.ToFloat64(hits)

	for i := 0; i < 3; i++ {
		if _, err := catalog.Ratings(ctx); err != nil {
			t.Fatalf("Ratings() error = %v", err)
		}
	}
	if got := testutil.ToFloat64(hits) - before; got != 2 {
		t.Errorf("cache hits = %v, want 2", got)
	}

	// Callers must not be able to corrupt the cached rows.
	ratings, err := catalog.Ratings(ctx)
	if err != nil {
		t.Fatalf("Ratings() error = %v", err)
	}
	ratings[0].Name = "mutated"
	r, err := catalog.Rating(ctx, ratings[0].ID)
	if err != nil {
		t.Fatalf("Rating() error = %v", err)
	}
	if r.Name == "mutated" {
		t.Error("mutating Ratings() result changed the cache")
	}
}

func TestBreakerOpensOnStorageFailures(t *testing.T) {
	cfg := testStorageConfig(config.BackendSQLite, MemoryPath)
	cfg.Breaker.MaxFailures = 2
	db := setupTestDBWithConfig(t, cfg)
	films := db.Backend().Films
	ctx := context.Background()

	if err := db.conn.Close(); err != nil {
		t.Fatalf("closing pool: %v", err)
	}

	for i := 0; i < 3; i++ {
		_, err := films.GetFilm(ctx, 1)
		if !errors.Is(err, models.ErrStorageUnavailable) {
			t.Fatalf("GetFilm() #%d error = %v, want ErrStorageUnavailable", i, err)
		}
	}
	if got := db.BreakerState(); got != "open" {
		t.Errorf("BreakerState() = %q, want open", got)
	}
}

func TestBreakerIgnoresDomainErrors(t *testing.T) {
	cfg := testStorageConfig(config.BackendSQLite, MemoryPath)
	cfg.Breaker.MaxFailures = 1
	db := setupTestDBWithConfig(t, cfg)
	b := db.Backend()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := b.Films.GetFilm(ctx, 404)
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("GetFilm() error = %v, want ErrNotFound", err)
		}
	}
	if got := db.BreakerState(); got != "closed" {
		t.Errorf("BreakerState() = %q, want closed", got)
	}
}

func TestConnectionString(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *config.StorageConfig
		wantDriver string
		wantParts  []string
		notParts   []string
	}{
		{
			name:       "duckdb memory",
			cfg:        testStorageConfig(config.BackendDuckDB, MemoryPath),
			wantDriver: "duckdb",
			wantParts:  []string{":memory:?", "threads=2", "max_memory=256MB"},
		},
		{
			name:       "sqlite memory",
			cfg:        testStorageConfig(config.BackendSQLite, MemoryPath),
			wantDriver: "sqlite",
			wantParts:  []string{":memory:?", "busy_timeout%285000%29"},
			notParts:   []string{"journal_mode"},
		},
		{
			name:       "sqlite file",
			cfg:        testStorageConfig(config.BackendSQLite, "/data/films.db"),
			wantDriver: "sqlite",
			wantParts:  []string{"/data/films.db?", "journal_mode%28WAL%29"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver, dsn := connectionString(tt.cfg)
			if driver != tt.wantDriver {
				t.Errorf("driver = %q, want %q", driver, tt.wantDriver)
			}
			for _, part := range tt.wantParts {
				if !strings.Contains(dsn, part) {
					t.Errorf("dsn %q missing %q", dsn, part)
				}
			}
			for _, part := range tt.notParts {
				if strings.Contains(dsn, part) {
					t.Errorf("dsn %q should not contain %q", dsn, part)
				}
			}
		})
	}
}

func TestDateValueScan(t *testing.T) {
	want := time.Date(1967, time.March, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		src     any
		wantErr bool
	}{
		{"time", time.Date(1967, time.March, 25, 0, 0, 0, 0, time.FixedZone("X", 3600)), false},
		{"date string", "1967-03-25", false},
		{"datetime string", "1967-03-25 00:00:00+00:00", false},
		{"bytes", []byte("1967-03-25"), false},
		{"garbage", "yesterday", true},
		{"wrong type", 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d dateValue
			err := d.Scan(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan(%v) error = %v, wantErr %v", tt.src, err, tt.wantErr)
			}
			if !tt.wantErr && !d.Time.Equal(want) {
				t.Errorf("Scan(%v) = %v, want %v", tt.src, d.Time, want)
			}
		})
	}
}

func TestInClause(t *testing.T) {
	clause, args := inClause("film_id", []int64{3, 1, 2})
	if clause != "film_id IN (?, ?, ?)" {
		t.Errorf("clause = %q", clause)
	}
	if fmt.Sprint(args) != "[3 1 2]" {
		t.Errorf("args = %v", args)
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"connection refused", fmt.Errorf("dial: connection refused"), true},
		{"bad connection", fmt.Errorf("driver: bad connection"), true},
		{"sql database is closed", fmt.Errorf("sql: database is closed"), true},
		{"regular error", fmt.Errorf("some other error"), false},
		{"syntax error", fmt.Errorf("syntax error near 'SELECT'"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.want {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
