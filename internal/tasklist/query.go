package tasklist

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mrz1836/taskbook/internal/domain"
	tberrors "github.com/mrz1836/taskbook/internal/errors"
)

// Stats summarizes completion across the tasks a session can see.
type Stats struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Percent   float64 `json:"percent"`
}

// View is the result of Show: the matching tasks and session-wide progress.
type View struct {
	Tasks []*domain.Task `json:"tasks"`
	Stats Stats          `json:"stats"`
}

// Query narrows Show. Empty fields do not filter.
type Query struct {
	Filter   domain.Filter
	Category string
	Owner    string
}

// Show returns the visible tasks matching q, in stored order. Stats always
// cover every visible task regardless of q.
func (s *Session) Show(q Query) (*View, error) {
	filter := q.Filter
	if filter == "" {
		filter = domain.FilterAll
	}
	if !filter.IsValid() {
		return nil, tberrors.Wrapf(tberrors.ErrInvalidFilter, "%q", q.Filter)
	}

	view := &View{Tasks: []*domain.Task{}}
	for _, t := range s.tasks {
		if !s.visible(t) {
			continue
		}
		view.Stats.Total++
		if t.Done {
			view.Stats.Completed++
		}
		if !filter.Match(t) {
			continue
		}
		if q.Category != "" && t.Category != q.Category {
			continue
		}
		if q.Owner != "" && t.Owner != q.Owner {
			continue
		}
		view.Tasks = append(view.Tasks, t.Clone())
	}
	if view.Stats.Total > 0 {
		view.Stats.Percent = float64(view.Stats.Completed) * 100 / float64(view.Stats.Total)
	}
	return view, nil
}

// Search returns visible tasks whose name or category contains text,
// ignoring case. A non-empty owner restricts the result to that owner.
func (s *Session) Search(text, owner string) []*domain.Task {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(text))

	out := []*domain.Task{}
	for _, t := range s.tasks {
		if !s.visible(t) || (owner != "" && t.Owner != owner) {
			continue
		}
		if strings.Contains(fold.String(t.Name), needle) || strings.Contains(fold.String(t.Category), needle) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Overdue returns the visible incomplete tasks due before today.
func (s *Session) Overdue() []*domain.Task {
	today := s.Today()
	out := []*domain.Task{}
	for _, t := range s.tasks {
		if s.visible(t) && t.IsOverdue(today) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Owners returns the distinct owners of the visible tasks.
func (s *Session) Owners() []string {
	var visible []*domain.Task
	for _, t := range s.tasks {
		if s.visible(t) {
			visible = append(visible, t)
		}
	}
	return distinctOwners(visible)
}
