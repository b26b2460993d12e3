package tasklist

import (
	"context"
	"strings"

	tberrors "github.com/mrz1836/taskbook/internal/errors"
)

// Accounts is the credential store the admin session manages users through.
type Accounts interface {
	ListUsers(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, identity string) error
}

// ListUsers returns every registered identity except the admin.
func (s *Session) ListUsers(ctx context.Context, accounts Accounts) ([]string, error) {
	if !s.admin {
		return nil, tberrors.ErrAdminOnly
	}
	return accounts.ListUsers(ctx)
}

// RemoveUser deletes identity's credentials and task file, and forgets its
// tasks in this session. The admin's own identity cannot be removed.
func (s *Session) RemoveUser(ctx context.Context, accounts Accounts, identity string) error {
	if !s.admin {
		return tberrors.ErrAdminOnly
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return tberrors.ErrEmptyValue
	}
	if identity == s.user {
		return tberrors.ErrProtectedUser
	}

	if err := accounts.Remove(ctx, identity); err != nil {
		return tberrors.Wrapf(err, "failed to remove %q", identity)
	}

	removed, err := s.store.RemoveUser(ctx, identity)
	if err != nil {
		return tberrors.Wrapf(err, "credentials removed but task file for %q remains", identity)
	}
	dropped := s.DropOwner(identity)

	s.logger.Info().
		Str("removed_user", identity).
		Bool("file_removed", removed).
		Int("tasks_dropped", dropped).
		Msg("user removed")
	return nil
}
