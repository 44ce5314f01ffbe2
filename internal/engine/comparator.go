package engine

import (
	"github.com/gumshoe-sql/gumshoe/internal/tabular"
)

// Policy configures one step's notion of equivalence. It is fixed at
// step-authoring time and never changes at runtime.
type Policy struct {
	// EnforceOrder makes row order part of the contract: learner rows
	// must match reference rows positionally. When false, both sides are
	// sorted by the tabular total order before the same pairwise
	// comparison (order-insensitive multiset equality).
	EnforceOrder bool

	// Normalize canonicalizes values before equality checks.
	Normalize tabular.Normalizer
}

// DefaultPolicy enforces row order with default normalization. Most steps
// demand an explicit ORDER BY, and positional comparison checks shape and
// ordering in one mechanism.
func DefaultPolicy() Policy {
	return Policy{EnforceOrder: true, Normalize: tabular.DefaultNormalizer()}
}

// Compare decides equivalence between the learner's result and the
// reference result under a policy. Checks run in strict precedence order;
// the first failure wins and later checks never run. user is nil when the
// learner has not executed any query yet.
func Compare(user *tabular.Result, reference tabular.Result, policy Policy) Verdict {
	if user == nil {
		return Fail(CategoryNotRun)
	}

	if !sameColumns(user.Columns, reference.Columns) {
		return Fail(CategoryColumnMismatch)
	}

	if user.RowCount() != reference.RowCount() {
		return FailRowCount(reference.RowCount())
	}

	userRows, refRows := user.Rows, reference.Rows
	mismatch := CategoryOrderOrValueMismatch
	if !policy.EnforceOrder {
		userRows, refRows = user.SortedRows(), reference.SortedRows()
		mismatch = CategoryValueMismatch
	}

	for i := range refRows {
		if len(userRows[i]) != len(refRows[i]) {
			return Fail(CategoryRowShapeMismatch)
		}
		for j := range refRows[i] {
			got := policy.Normalize.Apply(userRows[i][j])
			want := policy.Normalize.Apply(refRows[i][j])
			if !tabular.Equal(got, want) {
				return Fail(mismatch)
			}
		}
	}

	return Pass()
}

// sameColumns demands exact sequence equality: same names, same order,
// same count. Column order is part of the contract a learner must satisfy;
// report consumers depend on it.
func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
