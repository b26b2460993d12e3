package constants

// Directory names used by taskbook for organizing data.
const (
	// TaskbookHome is the hidden directory name where taskbook stores its config and logs.
	// This directory is created in the user's home directory.
	TaskbookHome = ".taskbook"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Log file names and rotation settings.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.taskbook/logs/taskbook.log
	CLILogFileName = "taskbook.log"

	// LogMaxSizeMB is the size at which the CLI log is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is the number of days rotated log files are kept.
	LogMaxAgeDays = 28

	// LogCompress controls gzip compression of rotated logs.
	LogCompress = true
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global configuration file inside TaskbookHome.
	GlobalConfigName = "config.yaml"

	// ProjectConfigName is the name of the project-level configuration file.
	ProjectConfigName = ".taskbook.yaml"
)
