// Package casedb opens and seeds the case database: the small, fixed world
// the learner investigates with SQL.
//
// The database is an embedded SQLite handle, usually in-memory, seeded from
// an embedded SQL script. Seeding is idempotent, and each play session gets
// its own fresh copy so one learner's session can never observe another's
// transient state. The engine's only contract with this package is "supply
// a live, queryable handle before any validator is invoked".
package casedb

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed seed.sql
var seedSQL string

// CaseDB owns the seeded database handle for one session.
type CaseDB struct {
	db *sql.DB
}

// OpenMemory opens a fresh in-memory case database. This is the normal
// mode: every play session starts from the same seeded world.
func OpenMemory() (*CaseDB, error) {
	return Open(":memory:")
}

// Open opens (and seeds, if needed) a case database at the given path.
// A file path is useful for authoring tools that want to poke at the
// world with external sqlite tooling.
func Open(path string) (*CaseDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open case database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to case database: %w", err)
	}

	// Single connection: SQLite allows one writer, and an in-memory
	// database exists per-connection, so a pool would see empty copies.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := applySeed(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed case database: %w", err)
	}

	return &CaseDB{db: db}, nil
}

// Close closes the underlying handle.
func (c *CaseDB) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB returns the live handle the validation engine executes against.
func (c *CaseDB) DB() *sql.DB {
	return c.db
}

// Query is a convenience wrapper for callers that render ad-hoc output.
// Callers close the returned rows.
func (c *CaseDB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySeed runs the embedded seed script. The script uses CREATE TABLE
// IF NOT EXISTS plus INSERT OR IGNORE so reopening a file-backed case
// database is a no-op.
func applySeed(db *sql.DB) error {
	if _, err := db.Exec(seedSQL); err != nil {
		return fmt.Errorf("execute seed script: %w", err)
	}
	return nil
}
