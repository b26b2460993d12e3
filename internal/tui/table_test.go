package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/taskbook/internal/date"
	"github.com/mrz1836/taskbook/internal/domain"
)

func TestTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	CheckNoColor()

	columns := []TableColumn{
		{Name: "NAME", Width: 10},
		{Name: "VALUE"},
		{Name: "COUNT", Align: AlignRight},
	}

	t.Run("aligns and truncates", func(t *testing.T) {
		var buf bytes.Buffer
		table := NewTable(&buf, columns)
		table.AddRow("verylongname", "value", "42")
		table.AddRow("short", "a much longer value", "7")
		table.Render()

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "NAME        VALUE"))
		assert.Contains(t, lines[1], "verylongn…")
		assert.True(t, strings.HasSuffix(lines[1], "   42"))
		assert.True(t, strings.HasSuffix(lines[2], "    7"))
	})

	t.Run("wide runes count as two cells", func(t *testing.T) {
		var buf bytes.Buffer
		table := NewTable(&buf, []TableColumn{{Name: "N"}, {Name: "X"}})
		table.AddRow("日本", "1")
		table.Render()

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		assert.Equal(t, "N     X", lines[0])
		assert.Equal(t, "日本  1", lines[1])
	})

	t.Run("missing values", func(t *testing.T) {
		var buf bytes.Buffer
		table := NewTable(&buf, columns)
		table.AddRow("only")
		table.Render()
		assert.Contains(t, buf.String(), "only")
	})
}

func TestRenderTasks(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	CheckNoColor()

	today := date.Date{Day: 15, Month: 3, Year: 2026}
	tasks := []*domain.Task{
		{ID: 1, Name: "Buy milk", Priority: 2, DueDate: "31-12-2099", Done: true, Category: "Shopping", Owner: "alice"},
		{ID: 2, Name: "File taxes", Priority: 1, DueDate: "01-03-2026", Category: "Finance", Owner: "bob"},
		{ID: 3, Name: "A task name that is far too long to fit in the column", Priority: 5, DueDate: "20-03-2026", Category: "General", Owner: "alice"},
	}

	var buf bytes.Buffer
	RenderTasks(&buf, tasks, today, false)
	out := buf.String()

	assert.Contains(t, out, "PRIORITY")
	assert.NotContains(t, out, "OWNER")
	assert.Contains(t, out, "✓ Done")
	assert.Contains(t, out, "⚠ Overdue")
	assert.Contains(t, out, "○ Not Done")
	assert.Contains(t, out, "…")

	buf.Reset()
	RenderTasks(&buf, tasks, today, true)
	assert.Contains(t, buf.String(), "OWNER")
	assert.Contains(t, buf.String(), "bob")
}

func TestFormatProgress(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Progress: 1/4 tasks completed (25.0%)", FormatProgress(1, 4, 25))
	assert.Equal(t, "Progress: 0/0 tasks completed (0.0%)", FormatProgress(0, 0, 0))
}
