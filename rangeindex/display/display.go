// Package display renders matched rows and the planner's per-column
// attribution as a table, grounded in the teacher's
// datalog/executor/table_formatter.go (tablewriter markdown rendering)
// and datalog/annotations/output.go (fatih/color highlighting).
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/wbrown/rangeindex/planner"
)

// Table renders rows as a markdown table via tablewriter, matching
// TableFormatter's output shape.
type Table struct {
	MaxWidth int
}

// NewTable returns a Table with the teacher's default column width.
func NewTable() *Table {
	return &Table{MaxWidth: 50}
}

// Render formats headers and rows as a markdown table followed by a row
// count line.
func (t *Table) Render(headers []string, rows [][]any) string {
	if len(rows) == 0 {
		return fmt.Sprintf("_Columns: %v_\n\n_No rows_", headers)
	}

	out := &strings.Builder{}
	alignment := make([]tw.Align, len(headers))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(out,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(headers)

	for _, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = t.formatValue(v)
		}
		table.Append(cells)
	}
	table.Render()

	fmt.Fprintf(out, "\n_%d rows_\n", len(rows))
	return out.String()
}

func (t *Table) formatValue(val any) string {
	if val == nil {
		return "nil"
	}
	switch v := val.(type) {
	case string:
		return v
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%.2f", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// AttributionSummary renders one colorized line per index column showing
// whether planner.Attribute bound it to an interval or left it universal,
// the same "index-bound vs. post-filtered" distinction
// datalog/annotations/output.go highlights for scan annotations.
func AttributionSummary(columnNames []string, matches []*planner.ColumnMatch) string {
	var b strings.Builder
	for i, name := range columnNames {
		if i >= len(matches) {
			fmt.Fprintf(&b, "%s %s\n", color.YellowString("post-filter"), name)
			continue
		}
		m := matches[i]
		if m.Interval.HasLower || m.Interval.HasUpper || m.Interval.Empty {
			fmt.Fprintf(&b, "%s %s %s\n",
				color.GreenString("index-bound"),
				name,
				color.CyanString(m.Interval.String()))
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", color.BlueString("unconstrained"), name)
	}
	return b.String()
}

// Print writes Render's output to stdout, a thin convenience wrapper
// matching executor.PrintRelation's role.
func Print(headers []string, rows [][]any) {
	fmt.Println(NewTable().Render(headers, rows))
}
