package engine

import "fmt"

// Category identifies the single diagnostic class of a failed verdict.
// Exactly one category applies per verdict; tests assert on the category,
// not on hint wording.
type Category string

const (
	// CategoryNone marks a passing verdict.
	CategoryNone Category = ""

	// CategoryNotRun: the learner has not executed any query yet.
	CategoryNotRun Category = "NOT_RUN"

	// CategoryColumnMismatch: column names, order, or count differ.
	CategoryColumnMismatch Category = "COLUMN_MISMATCH"

	// CategoryRowCountMismatch: row counts differ; the hint states the
	// expected count without revealing the data.
	CategoryRowCountMismatch Category = "ROW_COUNT_MISMATCH"

	// CategoryRowShapeMismatch: a row carries the wrong number of values.
	// Only reachable for results built outside the executor, which pads
	// every row to the column count.
	CategoryRowShapeMismatch Category = "ROW_SHAPE_MISMATCH"

	// CategoryOrderOrValueMismatch: positional comparison under an
	// order-enforcing policy found a differing cell.
	CategoryOrderOrValueMismatch Category = "ORDER_OR_VALUE_MISMATCH"

	// CategoryValueMismatch: order-insensitive comparison found a
	// differing cell after both sides were sorted.
	CategoryValueMismatch Category = "VALUE_MISMATCH"

	// CategoryInternal: the reference query itself failed - an authoring
	// defect, never the learner's fault.
	CategoryInternal Category = "INTERNAL_ERROR"
)

// Verdict is the outcome of one validation. It is produced synchronously
// per check action and replaces any prior verdict for the step; only the
// OK flag outlives it (in the progress store).
type Verdict struct {
	OK       bool
	Category Category
	Hint     string
}

// Pass returns the passing verdict.
func Pass() Verdict {
	return Verdict{OK: true}
}

// Fail returns a failing verdict with the category's standard hint.
func Fail(c Category) Verdict {
	return Verdict{OK: false, Category: c, Hint: hintFor(c, 0)}
}

// FailRowCount returns the row-count verdict; its hint tells the learner
// how many rows were expected (how far off they are) without revealing
// the data itself.
func FailRowCount(expected int) Verdict {
	return Verdict{OK: false, Category: CategoryRowCountMismatch, Hint: hintFor(CategoryRowCountMismatch, expected)}
}

// hintFor maps each failure category to exactly one hint string.
func hintFor(c Category, expectedRows int) string {
	switch c {
	case CategoryNotRun:
		return "run your query first"
	case CategoryColumnMismatch:
		return "columns mismatch; check names and order"
	case CategoryRowCountMismatch:
		return fmt.Sprintf("wrong number of rows; expected %d", expectedRows)
	case CategoryRowShapeMismatch:
		return "malformed result row"
	case CategoryOrderOrValueMismatch:
		return "ordering or values differ"
	case CategoryValueMismatch:
		return "values differ"
	case CategoryInternal:
		return "internal validation error"
	default:
		return ""
	}
}
