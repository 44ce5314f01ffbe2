package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/gumshoe-sql/gumshoe/internal/engine"
	"github.com/gumshoe-sql/gumshoe/internal/tabular"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	passColor    = color.New(color.FgGreen, color.Bold)
	failColor    = color.New(color.FgRed, color.Bold)
	mutedColor   = color.New(color.Faint)
	titleColor   = color.New(color.Bold)
	sqlErrColor  = color.New(color.FgYellow)
	promptString = "sql> "
)

// renderResult writes a fixed-width table of the canonical result.
// NULL renders as the literal word NULL (see tabular.Value.String).
func renderResult(w io.Writer, r tabular.Result) {
	if len(r.Columns) == 0 {
		mutedColor.Fprintln(w, "(no result set)")
		return
	}

	widths := make([]int, len(r.Columns))
	for i, col := range r.Columns {
		widths[i] = len(col)
	}
	for _, row := range r.Rows {
		for i, v := range row {
			if i < len(widths) && len(v.String()) > widths[i] {
				widths[i] = len(v.String())
			}
		}
	}

	var header strings.Builder
	var rule strings.Builder
	for i, col := range r.Columns {
		if i > 0 {
			header.WriteString("  ")
			rule.WriteString("  ")
		}
		header.WriteString(pad(col, widths[i]))
		rule.WriteString(strings.Repeat("-", widths[i]))
	}
	headerColor.Fprintln(w, strings.TrimRight(header.String(), " "))
	fmt.Fprintln(w, rule.String())

	for _, row := range r.Rows {
		var line strings.Builder
		for i, v := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			if i < len(widths) {
				line.WriteString(pad(v.String(), widths[i]))
			} else {
				line.WriteString(v.String())
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}

	switch r.RowCount() {
	case 1:
		mutedColor.Fprintln(w, "(1 row)")
	default:
		mutedColor.Fprintf(w, "(%d rows)\n", r.RowCount())
	}
}

// renderVerdict writes one verdict line.
func renderVerdict(w io.Writer, v engine.Verdict) {
	if v.OK {
		passColor.Fprintln(w, "✔ correct")
		return
	}
	failColor.Fprintf(w, "✘ %s\n", v.Hint)
}

// renderQueryError surfaces a learner query failure verbatim; the engine
// message is part of the feedback loop.
func renderQueryError(w io.Writer, err error) {
	sqlErrColor.Fprintf(w, "sql error: %v\n", err)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
