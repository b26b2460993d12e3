package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Order matters: specific sentinels must come before umbrella ones
// (ErrEmptyName before ErrValidation) because lookup walks errors.Is.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Validation
	// ===================
	{
		err: ErrEmptyName,
		info: ErrorInfo{
			Message: "Task name cannot be empty.",
			Action:  "Provide a name for the task.",
		},
	},
	{
		err: ErrInvalidPriority,
		info: ErrorInfo{
			Message: "Priority must be between 1 and 5.",
			Action:  "Use 1 for the most urgent tasks and 5 for the least.",
		},
	},
	{
		err: ErrInvalidDate,
		info: ErrorInfo{
			Message: "Invalid due date format. Use DD-MM-YYYY.",
			Action:  "Enter a real calendar date between 1970 and 9999, e.g. 31-12-2099.",
		},
	},
	{
		err: ErrInvalidSortCriterion,
		info: ErrorInfo{
			Message: "Invalid sort criterion.",
			Action:  "Use 'priority', 'date' or 'name' ('owner' is available to admin).",
		},
	},
	{
		err: ErrInvalidFilter,
		info: ErrorInfo{
			Message: "Invalid filter.",
			Action:  "Use 'all', 'completed' or 'incomplete'.",
		},
	},
	{
		err: ErrValidation,
		info: ErrorInfo{
			Message: "The request contains invalid values.",
		},
	},

	// ===================
	// Tasks
	// ===================
	{
		err: ErrTaskNotFound,
		info: ErrorInfo{
			Message: "Task not found or you lack permission.",
			Action:  "Run 'taskbook list' to see the ids of your tasks.",
		},
	},
	{
		err: ErrAlreadyInState,
		info: ErrorInfo{
			Message: "The task is already in that state.",
		},
	},
	{
		err: ErrStorageIO,
		info: ErrorInfo{
			Message: "Could not read or write the task file.",
			Action:  "Check that the data directory exists and is writable.",
		},
	},
	{
		err: ErrMalformedRecord,
		info: ErrorInfo{
			Message: "A stored task record was malformed and skipped.",
		},
	},
	{
		err: ErrNotConfirmed,
		info: ErrorInfo{
			Message: "Operation canceled.",
			Action:  "Pass --yes to confirm without a prompt.",
		},
	},
	{
		err: ErrAdminOnly,
		info: ErrorInfo{
			Message: "This operation is only available to the admin.",
		},
	},
	{
		err: ErrAdminReadOnly,
		info: ErrorInfo{
			Message: "The admin account can view tasks but not create or change them.",
			Action:  "Log in as the task owner to make changes.",
		},
	},

	// ===================
	// Accounts
	// ===================
	{
		err: ErrUserExists,
		info: ErrorInfo{
			Message: "Username already exists.",
			Action:  "Choose a different username.",
		},
	},
	{
		err: ErrUserNotFound,
		info: ErrorInfo{
			Message: "User not found.",
			Action:  "Run 'taskbook users' to see registered users.",
		},
	},
	{
		err: ErrInvalidCredentials,
		info: ErrorInfo{
			Message: "User login failed.",
			Action:  "Check the username and password, or register first.",
		},
	},
	{
		err: ErrProtectedUser,
		info: ErrorInfo{
			Message: "The admin account cannot be registered or removed.",
		},
	},
	{
		err: ErrInvalidIdentity,
		info: ErrorInfo{
			Message: "Username contains characters that cannot be stored.",
			Action:  "Avoid quotes, braces, commas and path separators in usernames.",
		},
	},
	{
		err: ErrEmptyValue,
		info: ErrorInfo{
			Message: "A required value was empty.",
		},
	},

	// ===================
	// Configuration & CLI
	// ===================
	{
		err: ErrConfigInvalidStorage,
		info: ErrorInfo{
			Message: "Storage configuration is invalid.",
			Action:  "Check the storage section of your taskbook config.",
		},
	},
	{
		err: ErrConfigInvalidAuth,
		info: ErrorInfo{
			Message: "Auth configuration is invalid.",
			Action:  "Check the auth section of your taskbook config.",
		},
	},
	{
		err: ErrConfigInvalidTasks,
		info: ErrorInfo{
			Message: "Tasks configuration is invalid.",
			Action:  "Check the tasks section of your taskbook config.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An invalid argument was provided.",
			Action:  "Check the command help for valid arguments.",
		},
	},
	{
		err: ErrInteractiveRequired,
		info: ErrorInfo{
			Message: "This command needs an interactive terminal.",
			Action:  "Run it from a terminal, or use the non-interactive subcommands.",
		},
	},
	{
		err: ErrMenuCanceled,
		info: ErrorInfo{
			Message: "Canceled.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take. The action is empty when there is nothing to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
