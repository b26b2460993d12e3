// Package constants provides centralized constant values used throughout taskbook.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

// Task file naming. A user's backing file is TaskFilePrefix + identity + TaskFileSuffix,
// with spaces in the identity replaced by underscores.
const (
	// TaskFilePrefix is the fixed prefix of every per-user task file.
	TaskFilePrefix = "tasks_"

	// TaskFileSuffix is the fixed suffix of every per-user task file.
	TaskFileSuffix = ".txt"

	// UsersFileName is the credential file shared by all users.
	UsersFileName = "users.txt"
)

// Task field limits and defaults.
const (
	// MinPriority is the most urgent priority.
	MinPriority = 1

	// MaxPriority is the least urgent priority.
	MaxPriority = 5

	// DefaultCategory is applied when a task has no category.
	DefaultCategory = "General"

	// DateLayout is the canonical textual date form.
	DateLayout = "DD-MM-YYYY"

	// UnchangedDate is the reserved due date meaning "keep the current value" on edit.
	UnchangedDate = "01-01-1970"

	// MinYear and MaxYear bound valid due dates.
	MinYear = 1970
	MaxYear = 9999
)

// Account defaults.
const (
	// DefaultAdminUsername is the identity of the built-in admin account.
	DefaultAdminUsername = "admin"

	// DefaultAdminPassword is the built-in admin secret. Override it with
	// TASKBOOK_AUTH_ADMIN_PASSWORD or the auth.admin_password config key.
	DefaultAdminPassword = "admin123" //nolint:gosec // documented default, overridable
)
