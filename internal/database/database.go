// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/tomtom215/filmorate/internal/cache"
	"github.com/tomtom215/filmorate/internal/config"
	"github.com/tomtom215/filmorate/internal/logging"
	"github.com/tomtom215/filmorate/internal/models"
	"github.com/tomtom215/filmorate/internal/storage"
)

// MemoryPath opens a private in-process database instead of a file.
const MemoryPath = ":memory:"

// DB wraps a DuckDB or SQLite connection pool and implements the
// film, user and catalog stores on top of it.
type DB struct {
	conn    *sql.DB
	cfg     *config.StorageConfig
	backend string
	logger  zerolog.Logger

	// writeMu serializes write transactions. DuckDB aborts concurrent
	// writers on conflict and SQLite allows a single writer.
	writeMu sync.Mutex

	breaker *breaker

	genreCache  *cache.Cache[[]models.Genre]
	ratingCache *cache.Cache[[]models.Rating]
}

// New opens the database selected by cfg.Backend and initializes the schema.
func New(cfg *config.StorageConfig) (*DB, error) {
	if !cfg.IsRelational() {
		return nil, fmt.Errorf("backend %q is not relational", cfg.Backend)
	}

	if cfg.Path != MemoryPath {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	driver, dsn := connectionString(cfg)
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:        conn,
		cfg:         cfg,
		backend:     cfg.Backend,
		logger:      logging.WithComponent("database").With().Str("backend", cfg.Backend).Logger(),
		genreCache:  cache.New[[]models.Genre](cfg.CatalogCacheTTL),
		ratingCache: cache.New[[]models.Rating](cfg.CatalogCacheTTL),
	}
	db.breaker = newBreaker("storage-"+cfg.Backend, cfg.Breaker)

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		db.closeCaches()
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	db.logger.Info().Str("path", cfg.Path).Msg("Database opened")
	return db, nil
}

// Backend exposes the database as the three storage capability sets.
func (db *DB) Backend() *storage.Backend {
	return &storage.Backend{
		Films:   &FilmStore{db: db},
		Users:   &UserStore{db: db},
		Catalog: &Catalog{db: db},
		Close:   db.Close,
	}
}

// Conn returns the underlying connection pool.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Name returns the driver backing this database: duckdb or sqlite.
func (db *DB) Name() string {
	return db.backend
}

// BreakerState reports the storage circuit breaker as closed, half-open or open.
func (db *DB) BreakerState() string {
	return db.breaker.State()
}

// Close releases the catalog caches and the connection pool.
func (db *DB) Close() error {
	db.closeCaches()
	if db.conn == nil {
		return nil
	}
	if db.backend == config.BackendDuckDB && db.cfg.Path != MemoryPath {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			db.logger.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}
	return db.conn.Close()
}

// Ping checks if the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// initialize creates tables and seeds the catalog.
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}
	if err := db.createIndexes(); err != nil {
		return err
	}
	if db.cfg.SeedCatalog {
		if err := db.seedCatalog(models.DefaultGenres(), models.DefaultRatings()); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) closeCaches() {
	db.genreCache.Close()
	db.ratingCache.Close()
}
