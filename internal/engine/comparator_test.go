package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gumshoe-sql/gumshoe/internal/tabular"
)

func staffResult(rows ...[]tabular.Value) tabular.Result {
	return tabular.Result{
		Columns: []string{"name", "role"},
		Rows:    rows,
	}
}

func row(vals ...string) []tabular.Value {
	out := make([]tabular.Value, len(vals))
	for i, v := range vals {
		out[i] = tabular.Text(v)
	}
	return out
}

func TestCompare_Pass(t *testing.T) {
	ref := staffResult(row("Ann", "Cook"), row("Bo", "Server"))
	user := staffResult(row("Ann", "Cook"), row("Bo", "Server"))

	v := Compare(&user, ref, DefaultPolicy())
	assert.True(t, v.OK)
	assert.Equal(t, CategoryNone, v.Category)
	assert.Empty(t, v.Hint)
}

func TestCompare_NotRun(t *testing.T) {
	ref := staffResult(row("Ann", "Cook"))

	v := Compare(nil, ref, DefaultPolicy())
	assert.False(t, v.OK)
	assert.Equal(t, CategoryNotRun, v.Category)
	assert.Equal(t, "run your query first", v.Hint)
}

func TestCompare_ColumnOrderIsStrict(t *testing.T) {
	ref := staffResult(row("Ann", "Cook"))
	user := tabular.Result{
		Columns: []string{"role", "name"},
		Rows:    [][]tabular.Value{{tabular.Text("Cook"), tabular.Text("Ann")}},
	}

	v := Compare(&user, ref, DefaultPolicy())
	assert.False(t, v.OK)
	assert.Equal(t, CategoryColumnMismatch, v.Category)
}

func TestCompare_ColumnNameMismatch(t *testing.T) {
	ref := staffResult(row("Ann", "Cook"))
	user := tabular.Result{
		Columns: []string{"name", "job"},
		Rows:    [][]tabular.Value{{tabular.Text("Ann"), tabular.Text("Cook")}},
	}

	v := Compare(&user, ref, DefaultPolicy())
	assert.Equal(t, CategoryColumnMismatch, v.Category)
}

func TestCompare_RowCountShortCircuits(t *testing.T) {
	// The surviving user row matches the reference's first row exactly,
	// so a pass here would mean value comparison ran after a count
	// mismatch.
	ref := staffResult(row("Ann", "Cook"), row("Bo", "Server"))
	user := staffResult(row("Ann", "Cook"))

	v := Compare(&user, ref, DefaultPolicy())
	assert.False(t, v.OK)
	assert.Equal(t, CategoryRowCountMismatch, v.Category)
	assert.Contains(t, v.Hint, "2", "hint states the expected row count")
}

func TestCompare_OrderSensitivity(t *testing.T) {
	ref := staffResult(row("Ann", "Cook"), row("Bo", "Server"))
	user := staffResult(row("Bo", "Server"), row("Ann", "Cook"))

	v := Compare(&user, ref, DefaultPolicy())
	assert.False(t, v.OK)
	assert.Equal(t, CategoryOrderOrValueMismatch, v.Category)
	assert.Equal(t, "ordering or values differ", v.Hint)
}

func TestCompare_OrderInsensitivity(t *testing.T) {
	ref := staffResult(row("Ann", "Cook"), row("Bo", "Server"))
	user := staffResult(row("Bo", "Server"), row("Ann", "Cook"))

	policy := DefaultPolicy()
	policy.EnforceOrder = false

	v := Compare(&user, ref, policy)
	assert.True(t, v.OK)
}

func TestCompare_UnorderedValueMismatch(t *testing.T) {
	ref := staffResult(row("Ann", "Cook"), row("Bo", "Server"))
	user := staffResult(row("Bo", "Server"), row("Ann", "Chef"))

	policy := DefaultPolicy()
	policy.EnforceOrder = false

	v := Compare(&user, ref, policy)
	assert.False(t, v.OK)
	assert.Equal(t, CategoryValueMismatch, v.Category)
}

func TestCompare_NullHandling(t *testing.T) {
	ref := tabular.Result{
		Columns: []string{"note"},
		Rows:    [][]tabular.Value{{tabular.Null()}},
	}

	for _, user := range []tabular.Result{
		{Columns: []string{"note"}, Rows: [][]tabular.Value{{tabular.Text("NULL")}}},
		{Columns: []string{"note"}, Rows: [][]tabular.Value{{tabular.Text("")}}},
	} {
		v := Compare(&user, ref, DefaultPolicy())
		assert.False(t, v.OK)
		assert.Equal(t, CategoryOrderOrValueMismatch, v.Category)
	}

	match := tabular.Result{Columns: []string{"note"}, Rows: [][]tabular.Value{{tabular.Null()}}}
	assert.True(t, Compare(&match, ref, DefaultPolicy()).OK)
}

func TestCompare_WhitespaceNormalization(t *testing.T) {
	ref := tabular.Result{
		Columns: []string{"shift_end"},
		Rows:    [][]tabular.Value{{tabular.Text("23:00")}},
	}
	user := tabular.Result{
		Columns: []string{"shift_end"},
		Rows:    [][]tabular.Value{{tabular.Text("23:00 ")}},
	}

	assert.True(t, Compare(&user, ref, DefaultPolicy()).OK)

	raw := Policy{EnforceOrder: true, Normalize: tabular.RawNormalizer()}
	v := Compare(&user, ref, raw)
	assert.False(t, v.OK, "raw policy compares byte-exact")
	assert.Equal(t, CategoryOrderOrValueMismatch, v.Category)
}

func TestCompare_RowShapeMismatch(t *testing.T) {
	// Malformed engine output: equal row counts, but one row is short.
	ref := staffResult(row("Ann", "Cook"))
	user := tabular.Result{
		Columns: []string{"name", "role"},
		Rows:    [][]tabular.Value{{tabular.Text("Ann")}},
	}

	v := Compare(&user, ref, DefaultPolicy())
	assert.False(t, v.OK)
	assert.Equal(t, CategoryRowShapeMismatch, v.Category)
}

func TestCompare_EmptyResults(t *testing.T) {
	ref := tabular.Result{Columns: []string{}, Rows: [][]tabular.Value{}}
	user := tabular.Result{Columns: []string{}, Rows: [][]tabular.Value{}}

	assert.True(t, Compare(&user, ref, DefaultPolicy()).OK)
}

func TestCompare_CrossNumericKinds(t *testing.T) {
	ref := tabular.Result{
		Columns: []string{"total"},
		Rows:    [][]tabular.Value{{tabular.Int(23)}},
	}
	user := tabular.Result{
		Columns: []string{"total"},
		Rows:    [][]tabular.Value{{tabular.Float(23.0)}},
	}

	assert.True(t, Compare(&user, ref, DefaultPolicy()).OK)
}
