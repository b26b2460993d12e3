// Package tasklist holds one session's in-memory task collection and the
// operations over it. Every mutation is followed by a full rewrite of the
// affected owner's task file.
//
// A session is bound to one identity and an admin flag for its lifetime.
// A non-admin session only ever sees and changes its own tasks. The admin
// session sees every user's tasks but cannot create or change them.
package tasklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/taskbook/internal/clock"
	"github.com/mrz1836/taskbook/internal/constants"
	"github.com/mrz1836/taskbook/internal/date"
	"github.com/mrz1836/taskbook/internal/domain"
	tberrors "github.com/mrz1836/taskbook/internal/errors"
	"github.com/mrz1836/taskbook/internal/storage"
)

// Store is the persistence a session needs. *storage.Gateway implements it.
type Store interface {
	Save(ctx context.Context, tasks []*domain.Task, identity string) error
	SaveOwners(ctx context.Context, tasks []*domain.Task, owners []string) error
	Load(ctx context.Context, identity string) (*storage.LoadResult, error)
	LoadAll(ctx context.Context) (*storage.LoadResult, error)
	RemoveUser(ctx context.Context, identity string) (bool, error)
}

// Session owns the task collection of one authenticated user.
type Session struct {
	user            string
	admin           bool
	store           Store
	clock           clock.Clock
	logger          zerolog.Logger
	defaultCategory string

	tasks    []*domain.Task
	nextID   int
	found    bool
	warnings int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithClock sets the time source used for overdue checks.
func WithClock(c clock.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithDefaultCategory sets the category applied to tasks added without one.
func WithDefaultCategory(category string) Option {
	return func(s *Session) {
		if category != "" {
			s.defaultCategory = category
		}
	}
}

// Open creates a session for user and loads its tasks: the user's own file,
// or every task file for the admin. The id counter starts after the highest
// id loaded.
func Open(ctx context.Context, store Store, user string, admin bool, opts ...Option) (*Session, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, fmt.Errorf("session user %w", tberrors.ErrEmptyValue)
	}

	s := &Session{
		user:            user,
		admin:           admin,
		store:           store,
		clock:           clock.RealClock{},
		logger:          zerolog.Nop(),
		defaultCategory: constants.DefaultCategory,
		nextID:          1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("user", user).Bool("admin", admin).Logger()

	var (
		res *storage.LoadResult
		err error
	)
	if admin {
		res, err = store.LoadAll(ctx)
	} else {
		res, err = store.Load(ctx, user)
	}
	if err != nil {
		return nil, tberrors.Wrap(err, "failed to load tasks")
	}

	s.tasks = res.Tasks
	s.found = res.Found
	s.warnings = len(res.Warnings)
	for _, t := range s.tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}

	s.logger.Debug().
		Int("tasks", len(s.tasks)).
		Int("skipped", s.warnings).
		Bool("found", s.found).
		Msg("session opened")
	return s, nil
}

// User returns the session identity.
func (s *Session) User() string { return s.user }

// IsAdmin reports whether this is the admin session.
func (s *Session) IsAdmin() bool { return s.admin }

// NextID returns the id the next added task will receive.
func (s *Session) NextID() int { return s.nextID }

// Found reports whether any task file existed when the session was opened.
func (s *Session) Found() bool { return s.found }

// Skipped returns how many malformed records were dropped at load.
func (s *Session) Skipped() int { return s.warnings }

// Today returns the current calendar day from the session clock.
func (s *Session) Today() date.Date {
	return date.Today(s.clock)
}

// Tasks returns copies of the tasks visible to this session, in stored order.
func (s *Session) Tasks() []*domain.Task {
	out := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if s.visible(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// visible reports whether the session may see t.
func (s *Session) visible(t *domain.Task) bool {
	return s.admin || t.Owner == s.user
}

// owned returns the task with id that belongs to the session user, or nil.
// A foreign id and a missing id are indistinguishable.
func (s *Session) owned(id int) *domain.Task {
	for _, t := range s.tasks {
		if t.ID == id && t.Owner == s.user {
			return t
		}
	}
	return nil
}

// persist rewrites the session user's file. On failure the in-memory state
// is kept as the source of truth.
func (s *Session) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.tasks, s.user); err != nil {
		s.logger.Error().Err(err).Msg("failed to save tasks")
		return tberrors.Wrap(err, "changes kept in memory but not saved")
	}
	return nil
}

// persistOwners rewrites the file of every owner in owners.
func (s *Session) persistOwners(ctx context.Context, owners []string) error {
	if err := s.store.SaveOwners(ctx, s.tasks, owners); err != nil {
		s.logger.Error().Err(err).Strs("owners", owners).Msg("failed to save tasks")
		return tberrors.Wrap(err, "changes kept in memory but not saved")
	}
	return nil
}

// distinctOwners returns the owners of tasks in first-seen order.
func distinctOwners(tasks []*domain.Task) []string {
	seen := make(map[string]bool)
	var owners []string
	for _, t := range tasks {
		if !seen[t.Owner] {
			seen[t.Owner] = true
			owners = append(owners, t.Owner)
		}
	}
	return owners
}
