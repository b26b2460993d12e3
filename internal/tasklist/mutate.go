package tasklist

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mrz1836/taskbook/internal/constants"
	"github.com/mrz1836/taskbook/internal/date"
	"github.com/mrz1836/taskbook/internal/domain"
	tberrors "github.com/mrz1836/taskbook/internal/errors"
)

// NewTask holds the user-supplied fields of a task to add.
type NewTask struct {
	Name     string
	Priority int
	DueDate  string
	Category string
}

// Update holds the replacement fields for EditTask. A zero field keeps the
// current value: an empty Name or Category, a Priority outside 1-5, or a
// DueDate of "" or constants.UnchangedDate.
type Update struct {
	Name     string
	Priority int
	DueDate  string
	Category string
}

// AddTask validates and appends a task owned by the session user, then
// saves. The returned task is a copy. If the save fails the task is still
// added in memory and the storage error is returned alongside it.
func (s *Session) AddTask(ctx context.Context, in NewTask) (*domain.Task, error) {
	if s.admin {
		return nil, tberrors.ErrAdminReadOnly
	}

	name, category, err := s.validate(in.Name, in.Priority, in.Category)
	if err != nil {
		return nil, err
	}
	due, ok := date.Normalize(strings.TrimSpace(in.DueDate))
	if !ok {
		return nil, fmt.Errorf("%w: %q", tberrors.ErrInvalidDate, in.DueDate)
	}

	t := &domain.Task{
		ID:       s.nextID,
		Name:     name,
		Priority: in.Priority,
		DueDate:  due,
		Category: category,
		Owner:    s.user,
	}
	s.tasks = append(s.tasks, t)
	s.nextID++

	s.logger.Debug().Int("task_id", t.ID).Str("category", category).Msg("task added")
	return t.Clone(), s.persist(ctx)
}

// EditTask updates the fields of a task the session user owns. Fields left
// at their keep value are not changed. A due date that is supplied but
// invalid rejects the whole edit and leaves the task untouched.
func (s *Session) EditTask(ctx context.Context, id int, in Update) (*domain.Task, error) {
	if s.admin {
		return nil, tberrors.ErrAdminReadOnly
	}

	t := s.owned(id)
	if t == nil {
		return nil, fmt.Errorf("%w: id %d", tberrors.ErrTaskNotFound, id)
	}

	due := t.DueDate
	if raw := strings.TrimSpace(in.DueDate); raw != "" && raw != constants.UnchangedDate {
		normalized, ok := date.Normalize(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %q", tberrors.ErrInvalidDate, in.DueDate)
		}
		due = normalized
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		t.Name = name
	}
	if domain.ValidPriority(in.Priority) {
		t.Priority = in.Priority
	}
	if category := strings.TrimSpace(in.Category); category != "" {
		t.Category = category
	}
	t.DueDate = due

	s.logger.Debug().Int("task_id", id).Msg("task updated")
	return t.Clone(), s.persist(ctx)
}

// MarkDone marks an owned task complete.
func (s *Session) MarkDone(ctx context.Context, id int) (*domain.Task, error) {
	return s.setDone(ctx, id, true)
}

// Unmark marks an owned task incomplete.
func (s *Session) Unmark(ctx context.Context, id int) (*domain.Task, error) {
	return s.setDone(ctx, id, false)
}

func (s *Session) setDone(ctx context.Context, id int, done bool) (*domain.Task, error) {
	if s.admin {
		return nil, tberrors.ErrAdminReadOnly
	}

	t := s.owned(id)
	if t == nil {
		return nil, fmt.Errorf("%w: id %d", tberrors.ErrTaskNotFound, id)
	}
	if t.Done == done {
		return nil, fmt.Errorf("%w: id %d", tberrors.ErrAlreadyInState, id)
	}

	t.Done = done
	s.logger.Debug().Int("task_id", id).Bool("done", done).Msg("task status changed")
	return t.Clone(), s.persist(ctx)
}

// DeleteTask removes an owned task. Its id is not handed out again during
// this session.
func (s *Session) DeleteTask(ctx context.Context, id int) error {
	if s.admin {
		return tberrors.ErrAdminReadOnly
	}

	idx := slices.IndexFunc(s.tasks, func(t *domain.Task) bool {
		return t.ID == id && t.Owner == s.user
	})
	if idx < 0 {
		return fmt.Errorf("%w: id %d", tberrors.ErrTaskNotFound, id)
	}

	s.tasks = slices.Delete(s.tasks, idx, idx+1)
	s.logger.Debug().Int("task_id", id).Msg("task deleted")
	return s.persist(ctx)
}

// ClearAll removes every task owned by the session user and restarts the
// id counter at 1. Without confirmed it returns ErrNotConfirmed and changes
// nothing. The admin session is read-only and gets ErrAdminReadOnly.
func (s *Session) ClearAll(ctx context.Context, confirmed bool) (int, error) {
	if s.admin {
		return 0, tberrors.ErrAdminReadOnly
	}
	if !confirmed {
		return 0, tberrors.ErrNotConfirmed
	}

	removed := 0
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Owner == s.user {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	clear(s.tasks[len(kept):])
	s.tasks = kept
	s.nextID = 1

	s.logger.Info().Int("removed", removed).Msg("tasks cleared")
	return removed, s.persist(ctx)
}

// Sort reorders the visible tasks by criterion and saves the new order.
// Ties keep their current relative order. An unknown criterion, or "owner"
// outside the admin session, changes nothing.
func (s *Session) Sort(ctx context.Context, criterion domain.SortCriterion) error {
	if !slices.Contains(domain.SortCriteria(s.admin), criterion) {
		return fmt.Errorf("%w: %q", tberrors.ErrInvalidSortCriterion, criterion)
	}

	slices.SortStableFunc(s.tasks, func(a, b *domain.Task) int {
		switch {
		case criterion.Less(a, b):
			return -1
		case criterion.Less(b, a):
			return 1
		default:
			return 0
		}
	})

	s.logger.Debug().Str("criterion", string(criterion)).Msg("tasks sorted")
	if s.admin {
		return s.persistOwners(ctx, distinctOwners(s.tasks))
	}
	return s.persist(ctx)
}

// DropOwner forgets every in-memory task belonging to owner and returns
// how many were dropped. Nothing is saved.
func (s *Session) DropOwner(owner string) int {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t *domain.Task) bool {
		return t.Owner == owner
	})
	return before - len(s.tasks)
}

// validate checks the shared add/edit fields and returns the trimmed name
// and the effective category.
func (s *Session) validate(name string, priority int, category string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", tberrors.ErrEmptyName
	}
	if !domain.ValidPriority(priority) {
		return "", "", fmt.Errorf("%w: got %d", tberrors.ErrInvalidPriority, priority)
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = s.defaultCategory
	}
	return name, category, nil
}
