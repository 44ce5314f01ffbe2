package tabular

import (
	"database/sql"
	"fmt"
	"sort"
)

// Result is the canonical tabular shape of one query execution.
//
// Columns and rows are both order-significant; whether row order matters
// for equivalence is the comparison policy's decision, not the model's.
// A statement that produces no result set at all canonicalizes to empty
// columns and empty rows.
type Result struct {
	Columns []string
	Rows    [][]Value
}

// Empty reports whether the result carries no columns and no rows.
func (r Result) Empty() bool {
	return len(r.Columns) == 0 && len(r.Rows) == 0
}

// RowCount returns the number of rows.
func (r Result) RowCount() int {
	return len(r.Rows)
}

// SortedRows returns a copy of the rows sorted by the CompareRows total
// order. Used for order-insensitive comparison; the receiver is never
// mutated (results are constructed fresh per execution and discarded).
func (r Result) SortedRows() [][]Value {
	rows := make([][]Value, len(r.Rows))
	copy(rows, r.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return CompareRows(rows[i], rows[j]) < 0
	})
	return rows
}

// FromRows drains an already-executed *sql.Rows into a Result,
// canonicalizing every scanned value. The rows are closed by the caller.
func FromRows(rows *sql.Rows) (Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return Result{}, fmt.Errorf("read columns: %w", err)
	}

	result := Result{Columns: columns, Rows: [][]Value{}}
	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Result{}, fmt.Errorf("scan row: %w", err)
		}

		row := make([]Value, len(columns))
		for i, v := range raw {
			row[i] = FromDriver(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}
