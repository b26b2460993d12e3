// Package errors provides centralized error handling for taskbook.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// ErrValidation is the umbrella for every input validation failure.
// The specific validation sentinels below all match it via errors.Is.
var ErrValidation = errors.New("validation failed")

// Validation errors. Each is a validationError so that errors.Is(err, ErrValidation)
// holds for all of them while still allowing a precise match.
var (
	// ErrEmptyName indicates a task was submitted without a name.
	ErrEmptyName error = &validationError{msg: "task name cannot be empty"}

	// ErrInvalidPriority indicates a priority outside the 1-5 range.
	ErrInvalidPriority error = &validationError{msg: "priority must be between 1 and 5"}

	// ErrInvalidDate indicates a due date that is malformed or not a real calendar date.
	ErrInvalidDate error = &validationError{msg: "invalid due date, use DD-MM-YYYY"}

	// ErrInvalidSortCriterion indicates an unknown or disallowed sort criterion.
	ErrInvalidSortCriterion error = &validationError{msg: "invalid sort criterion"}

	// ErrInvalidFilter indicates an unknown show filter.
	ErrInvalidFilter error = &validationError{msg: "invalid filter"}
)

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrTaskNotFound indicates the task id does not exist OR belongs to another user.
	// The two cases are deliberately reported the same way.
	ErrTaskNotFound = errors.New("task not found or you lack permission")

	// ErrAlreadyInState indicates a mark/unmark request for a task already in the target state.
	ErrAlreadyInState = errors.New("task already in requested state")

	// ErrStorageIO indicates a task file could not be opened, read or written.
	ErrStorageIO = errors.New("task storage I/O failed")

	// ErrMalformedRecord indicates a stored task record was skipped during load.
	ErrMalformedRecord = errors.New("malformed task record")

	// ErrNotConfirmed indicates a destructive operation was attempted without confirmation.
	ErrNotConfirmed = errors.New("operation not confirmed")

	// ErrAdminOnly indicates an operation reserved for the admin session.
	ErrAdminOnly = errors.New("operation requires admin")

	// ErrAdminReadOnly indicates the admin session attempted to create or modify tasks.
	ErrAdminReadOnly = errors.New("admin session cannot modify tasks")

	// ErrUserExists indicates a registration for an identity that is already taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound indicates the identity is not present in the credential file.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProtectedUser indicates an attempt to register or remove the admin identity.
	ErrProtectedUser = errors.New("admin account is protected")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrInvalidIdentity indicates a user identity containing characters the task file
	// format cannot store.
	ErrInvalidIdentity = errors.New("invalid user identity")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidStorage indicates an invalid storage configuration value.
	ErrConfigInvalidStorage = errors.New("invalid storage configuration")

	// ErrConfigInvalidAuth indicates an invalid auth configuration value.
	ErrConfigInvalidAuth = errors.New("invalid auth configuration")

	// ErrConfigInvalidTasks indicates an invalid tasks configuration value.
	ErrConfigInvalidTasks = errors.New("invalid tasks configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInteractiveRequired indicates that interactive prompts are required but not available.
	ErrInteractiveRequired = errors.New("interactive prompt required")

	// ErrMenuCanceled indicates that the user canceled a menu operation.
	ErrMenuCanceled = errors.New("menu canceled by user")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// Commands should silence cobra's error printing when this is returned.
	ErrJSONErrorOutput = errors.New("error output as JSON")
)

// validationError is a sentinel that also matches ErrValidation.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

// Is reports ErrValidation membership.
func (e *validationError) Is(target error) bool {
	return target == ErrValidation
}

// IsValidation reports whether err belongs to the validation family.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
