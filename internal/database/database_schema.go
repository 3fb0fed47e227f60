// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

/*
database_schema.go - Database Schema Management

Tables:
  - films: scalar film fields plus the optional mpa_id rating reference
  - users: scalar user fields
  - likes: (film_id, user_id) like edges
  - friendships: (user_id, friend_id) edges, always stored in both directions
  - film_genres: (film_id, genre_id) genre tags
  - genres, mpa_ratings: seeded reference catalogs

The DDL is portable between DuckDB and SQLite. Referential integrity is
enforced by the stores rather than foreign keys, so both engines behave
the same when rows are replaced inside a transaction.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/filmorate/internal/models"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS genres (
			id INTEGER PRIMARY KEY,
			name VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS mpa_ratings (
			id INTEGER PRIMARY KEY,
			name VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS films (
			id BIGINT PRIMARY KEY,
			name VARCHAR NOT NULL,
			description VARCHAR NOT NULL DEFAULT '',
			release_date DATE NOT NULL,
			duration INTEGER NOT NULL,
			mpa_id INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			email VARCHAR NOT NULL,
			login VARCHAR NOT NULL,
			name VARCHAR NOT NULL,
			birthday DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS likes (
			film_id BIGINT NOT NULL,
			user_id BIGINT NOT NULL,
			PRIMARY KEY (film_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS friendships (
			user_id BIGINT NOT NULL,
			friend_id BIGINT NOT NULL,
			PRIMARY KEY (user_id, friend_id)
		)`,
		`CREATE TABLE IF NOT EXISTS film_genres (
			film_id BIGINT NOT NULL,
			genre_id INTEGER NOT NULL,
			PRIMARY KEY (film_id, genre_id)
		)`,
	}
}

// createIndexes adds secondary indexes for reverse lookups.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_likes_user ON likes(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_friendships_friend ON friendships(friend_id)`,
	}
	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}

// seedCatalog inserts the reference rows. Existing rows are left alone,
// so the call is safe on every startup.
func (db *DB) seedCatalog(genres []models.Genre, ratings []models.Rating) error {
	ctx, cancel := schemaContext()
	defer cancel()

	return db.inTx(ctx, func(q querier) error {
		for _, g := range genres {
			if _, err := q.ExecContext(ctx,
				`INSERT INTO genres (id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`,
				g.ID, g.Name); err != nil {
				return fmt.Errorf("failed to seed genre %d: %w", g.ID, err)
			}
		}
		for _, r := range ratings {
			if _, err := q.ExecContext(ctx,
				`INSERT INTO mpa_ratings (id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`,
				r.ID, r.Name); err != nil {
				return fmt.Errorf("failed to seed rating %d: %w", r.ID, err)
			}
		}
		return nil
	})
}
