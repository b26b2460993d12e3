package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/taskbook/internal/date"
)

func TestTask_Status(t *testing.T) {
	t.Parallel()

	today := date.Date{Day: 15, Month: 6, Year: 2024}

	tests := []struct {
		name string
		task Task
		want Status
	}{
		{"done wins over overdue", Task{DueDate: "01-01-2020", Done: true}, StatusDone},
		{"past and open", Task{DueDate: "14-06-2024"}, StatusOverdue},
		{"due today", Task{DueDate: "15-06-2024"}, StatusNotDone},
		{"future", Task{DueDate: "31-12-2099"}, StatusNotDone},
		{"unparseable date is never overdue", Task{DueDate: "soon"}, StatusNotDone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.task.Status(today))
		})
	}
}

func TestTask_Clone(t *testing.T) {
	t.Parallel()

	orig := &Task{ID: 1, Name: "a", Owner: "alice"}
	c := orig.Clone()
	c.Name = "b"

	assert.Equal(t, "a", orig.Name)
	assert.Equal(t, 1, c.ID)
}

func TestValidPriority(t *testing.T) {
	t.Parallel()

	for p := -1; p <= 7; p++ {
		assert.Equal(t, p >= 1 && p <= 5, ValidPriority(p), "priority %d", p)
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	done := &Task{Done: true}
	open := &Task{}

	assert.True(t, FilterAll.Match(done))
	assert.True(t, FilterAll.Match(open))
	assert.True(t, FilterCompleted.Match(done))
	assert.False(t, FilterCompleted.Match(open))
	assert.True(t, FilterIncomplete.Match(open))
	assert.False(t, FilterIncomplete.Match(done))

	assert.False(t, Filter("pending").IsValid())
	assert.False(t, Filter("pending").Match(open))
	for _, f := range ValidFilters() {
		assert.True(t, f.IsValid())
	}
}

func TestSortCriterion(t *testing.T) {
	t.Parallel()

	a := &Task{Priority: 1, DueDate: "01-12-2024", Name: "alpha", Owner: "zed"}
	b := &Task{Priority: 3, DueDate: "02-01-2024", Name: "beta", Owner: "amy"}

	assert.True(t, SortByPriority.Less(a, b))
	assert.True(t, SortByDate.Less(a, b), "date ordering is textual, day first")
	assert.True(t, SortByName.Less(a, b))
	assert.True(t, SortByOwner.Less(b, a))
	assert.False(t, SortCriterion("size").Less(a, b))

	assert.NotContains(t, SortCriteria(false), SortByOwner)
	assert.Contains(t, SortCriteria(true), SortByOwner)
}
