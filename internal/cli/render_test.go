package cli

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/gumshoe-sql/gumshoe/internal/engine"
	"github.com/gumshoe-sql/gumshoe/internal/tabular"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	color.NoColor = true
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRenderResult_Golden(t *testing.T) {
	g := newGoldie(t)

	result := tabular.Result{
		Columns: []string{"name", "shift_end", "badge"},
		Rows: [][]tabular.Value{
			{tabular.Text("Ann Reyes"), tabular.Text("22:00"), tabular.Int(12)},
			{tabular.Text("Bo Lindqvist"), tabular.Null(), tabular.Int(7)},
		},
	}

	var buf bytes.Buffer
	renderResult(&buf, result)
	g.Assert(t, "staff_table", buf.Bytes())
}

func TestRenderVerdicts_Golden(t *testing.T) {
	g := newGoldie(t)

	var buf bytes.Buffer
	renderVerdict(&buf, engine.Pass())
	renderVerdict(&buf, engine.Fail(engine.CategoryNotRun))
	renderVerdict(&buf, engine.Fail(engine.CategoryColumnMismatch))
	renderVerdict(&buf, engine.FailRowCount(2))
	renderVerdict(&buf, engine.Fail(engine.CategoryRowShapeMismatch))
	renderVerdict(&buf, engine.Fail(engine.CategoryOrderOrValueMismatch))
	renderVerdict(&buf, engine.Fail(engine.CategoryValueMismatch))
	renderVerdict(&buf, engine.Fail(engine.CategoryInternal))
	g.Assert(t, "verdicts", buf.Bytes())
}

func TestRenderResult_NoResultSet(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	renderResult(&buf, tabular.Result{})
	assert.Equal(t, "(no result set)\n", buf.String())
}

func TestRenderResult_SingleRowLabel(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	renderResult(&buf, tabular.Result{
		Columns: []string{"n"},
		Rows:    [][]tabular.Value{{tabular.Int(1)}},
	})
	assert.Contains(t, buf.String(), "(1 row)\n")
}
