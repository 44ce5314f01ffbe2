package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gumshoe-sql/gumshoe/internal/tabular"
)

// QueryError wraps a query that the database engine rejected: syntax
// errors, unknown tables or columns, type errors. The engine's message is
// preserved verbatim - it is part of the learning feedback loop and is
// shown to the learner as-is when the failing query is theirs.
type QueryError struct {
	SQL string
	Err error
}

// Error returns the engine's message verbatim.
func (e *QueryError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the driver error for errors.Is/As.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError reports whether err is (or wraps) a QueryError.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}

// Execute runs one SQL string against the handle and canonicalizes the
// first result set. A statement that produces no result set canonicalizes
// to an empty result. Multi-statement batches are not a supported input
// shape; only the first statement's output is observed.
func Execute(ctx context.Context, db *sql.DB, query string) (tabular.Result, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return tabular.Result{}, &QueryError{SQL: query, Err: err}
	}
	defer rows.Close()

	result, err := tabular.FromRows(rows)
	if err != nil {
		return tabular.Result{}, &QueryError{SQL: query, Err: err}
	}
	return result, nil
}

// ExecuteIsolated runs the query inside a transaction that is always
// rolled back. Learner SQL is arbitrary - it may drop tables or mutate
// seed rows - and it shares a handle with the reference query that runs
// right after it. Rolling back means the shared database is in the same
// state after the learner's statement as before it, so a destructive
// statement cannot make the reference computation fail.
func ExecuteIsolated(ctx context.Context, db *sql.DB, query string) (tabular.Result, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return tabular.Result{}, fmt.Errorf("begin isolation transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return tabular.Result{}, &QueryError{SQL: query, Err: err}
	}
	defer rows.Close()

	result, err := tabular.FromRows(rows)
	if err != nil {
		return tabular.Result{}, &QueryError{SQL: query, Err: err}
	}
	return result, nil
}
