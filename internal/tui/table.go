package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mrz1836/taskbook/internal/date"
	"github.com/mrz1836/taskbook/internal/domain"
)

// TableColumn defines a column in a table. A Width of 0 sizes the column to
// its widest value.
type TableColumn struct {
	Name  string
	Width int
	Align Alignment
}

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table renders rows of cells in aligned columns. Widths are measured in
// terminal cells, so wide runes line up.
type Table struct {
	w       io.Writer
	styles  *TableStyles
	columns []TableColumn
	rows    [][]cell
}

// cell is a value plus an optional pre-rendered form that differs only in
// styling escape codes.
type cell struct {
	plain  string
	styled string
}

// NewTable creates a new table with the given columns.
func NewTable(w io.Writer, columns []TableColumn) *Table {
	return &Table{
		w:       w,
		styles:  NewTableStyles(),
		columns: columns,
	}
}

// AddRow queues a row of plain values.
func (t *Table) AddRow(values ...string) {
	row := make([]cell, len(values))
	for i, v := range values {
		row[i] = cell{plain: v}
	}
	t.rows = append(t.rows, row)
}

// addStyledRow queues a row whose cell at styledIndex has a styled form.
func (t *Table) addStyledRow(values []string, styledIndex int, styled string) {
	t.AddRow(values...)
	t.rows[len(t.rows)-1][styledIndex].styled = styled
}

// Render writes the header and every queued row.
func (t *Table) Render() {
	widths := t.widths()

	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = t.styles.Header.Render(pad(col.Name, widths[i], col.Align))
	}
	_, _ = fmt.Fprintln(t.w, strings.TrimRight(strings.Join(parts, "  "), " "))

	for _, row := range t.rows {
		for i, col := range t.columns {
			var c cell
			if i < len(row) {
				c = row[i]
			}
			value := runewidth.Truncate(c.plain, widths[i], "…")
			if c.styled != "" && value == c.plain {
				// Pad around the styled text using the plain width.
				gap := widths[i] - runewidth.StringWidth(c.plain)
				parts[i] = c.styled + strings.Repeat(" ", max(gap, 0))
				continue
			}
			parts[i] = pad(value, widths[i], col.Align)
		}
		_, _ = fmt.Fprintln(t.w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		if col.Width > 0 {
			widths[i] = col.Width
			continue
		}
		widths[i] = runewidth.StringWidth(col.Name)
		for _, row := range t.rows {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i].plain))
			}
		}
	}
	return widths
}

func pad(s string, width int, align Alignment) string {
	if align == AlignRight {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}

// Column widths for task listings.
const (
	nameWidth     = 30
	categoryWidth = 15
	ownerWidth    = 12
)

// TaskColumns returns the task listing columns. The owner column is only
// shown to the admin.
func TaskColumns(withOwner bool) []TableColumn {
	cols := []TableColumn{
		{Name: "ID", Align: AlignRight},
		{Name: "NAME", Width: nameWidth},
		{Name: "PRIORITY", Align: AlignRight},
		{Name: "DUE DATE"},
		{Name: "STATUS", Width: runewidth.StringWidth("⚠ " + domain.StatusNotDone.String())},
		{Name: "CATEGORY", Width: categoryWidth},
	}
	if withOwner {
		cols = append(cols, TableColumn{Name: "OWNER", Width: ownerWidth})
	}
	return cols
}

// statusColumn is the index of STATUS in TaskColumns.
const statusColumn = 4

// RenderTasks writes tasks as a table. Status is computed against today.
func RenderTasks(w io.Writer, tasks []*domain.Task, today date.Date, withOwner bool) {
	table := NewTable(w, TaskColumns(withOwner))
	for _, t := range tasks {
		status := t.Status(today)
		values := []string{
			strconv.Itoa(t.ID),
			t.Name,
			strconv.Itoa(t.Priority),
			t.DueDate,
			StatusIcon(status) + " " + status.String(),
			t.Category,
		}
		if withOwner {
			values = append(values, t.Owner)
		}
		table.addStyledRow(values, statusColumn, table.styles.Status(status))
	}
	table.Render()
}

// FormatProgress renders a completion summary line.
func FormatProgress(completed, total int, percent float64) string {
	return fmt.Sprintf("Progress: %d/%d tasks completed (%.1f%%)", completed, total, percent)
}
