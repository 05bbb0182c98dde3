// Package sqlite implements the domain repositories on an embedded SQLite
// file, the default local store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"weighttrack/internal/domain"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// DB wraps a single SQLite connection and implements domain repository
// interfaces.
type DB struct {
	sql *sql.DB
	// mu serialises writers on top of SQLite's own file locking.
	mu sync.Mutex
}

// Open opens (creating if needed) the database at path and runs
// migrations. ":memory:" gives a private in-memory database.
func Open(path string) (*DB, error) {
	dsn := "file::memory:?" + pragmas
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn = "file:" + path + "?" + pragmas
	}

	s, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One owned connection: an in-memory database lives and dies with it,
	// and the pragmas above apply per connection.
	s.SetMaxOpenConns(1)
	s.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// mapError translates constraint failures into domain errors.
func mapError(err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return domain.ErrDuplicateUsername
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %s", domain.ErrConstraintViolation, se.Error())
	case sqlite3.SQLITE_CONSTRAINT:
		// Primary result code only; the message names the constraint.
		msg := se.Error()
		switch {
		case strings.Contains(msg, "UNIQUE"):
			return domain.ErrDuplicateUsername
		case strings.Contains(msg, "FOREIGN KEY"):
			return fmt.Errorf("%w: %s", domain.ErrConstraintViolation, msg)
		}
	}
	return err
}

func unixMilli(t time.Time) int64 { return t.UnixMilli() }

func fromUnixMilli(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
