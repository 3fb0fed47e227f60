// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/filmorate/internal/config"
	"github.com/tomtom215/filmorate/internal/logging"
	"github.com/tomtom215/filmorate/internal/metrics"
	"github.com/tomtom215/filmorate/internal/models"
)

// dateLayout is the storage format for calendar dates.
const dateLayout = "2006-01-02"

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// view runs fn in a transaction so multi-query reads see one snapshot.
func (db *DB) view(ctx context.Context, op string, fn func(q querier) error) error {
	return db.run(ctx, op, func() error {
		return db.inTx(ctx, fn)
	})
}

// update runs fn in a write transaction. Writers are serialized so id
// allocation and relation replacement never interleave.
func (db *DB) update(ctx context.Context, op string, fn func(q querier) error) error {
	return db.run(ctx, op, func() error {
		db.writeMu.Lock()
		defer db.writeMu.Unlock()
		return db.inTx(ctx, fn)
	})
}

// run wraps one store operation with the circuit breaker, error
// classification, metrics and failure logging.
func (db *DB) run(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	err := models.Unavailable(op, db.breaker.execute(op, fn))
	metrics.RecordStoreOperation(db.backend, op, time.Since(start), err)

	if errors.Is(err, models.ErrStorageUnavailable) {
		event := logging.Ctx(ctx).Warn()
		if isConnectionError(err) {
			event = logging.Ctx(ctx).Error()
		}
		event.Err(err).Str("backend", db.backend).Str("op", op).Msg("Storage operation failed")
	}
	return err
}

func (db *DB) inTx(ctx context.Context, fn func(q querier) error) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logging.Ctx(ctx).Warn().Err(rbErr).Msg("Failed to roll back transaction")
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// exists reports whether table holds a row with the given id.
func exists(ctx context.Context, q querier, table string, id int64) (bool, error) {
	var n int64
	query := "SELECT COUNT(*) FROM " + table + " WHERE id = ?"
	if err := q.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// requireRow returns NotFound(kind, id) when table has no row with id.
func requireRow(ctx context.Context, q querier, table, kind string, id int64) error {
	ok, err := exists(ctx, q, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NotFound(kind, id)
	}
	return nil
}

// nextID allocates the next identifier for table. Callers hold writeMu.
func nextID(ctx context.Context, q querier, table string) (int64, error) {
	var id int64
	query := "SELECT COALESCE(MAX(id), 0) + 1 FROM " + table
	if err := q.QueryRowContext(ctx, query).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// inClause builds "column IN (?, ?, ...)" and its arguments.
func inClause[T int | int64](column string, ids []T) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return column + " IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ") + ")", args
}

// dateArg converts a calendar date into a bind argument for the driver.
// DuckDB binds time.Time to DATE natively; SQLite stores ISO-8601 text.
func (db *DB) dateArg(t time.Time) any {
	if db.backend == config.BackendSQLite {
		return t.Format(dateLayout)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dateValue scans a DATE column from either driver into a UTC midnight time.
type dateValue struct {
	Time time.Time
}

// Scan implements sql.Scanner.
func (d *dateValue) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported date type %T", src)
	}
}

func (d *dateValue) parse(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	d.Time = t
	return nil
}
