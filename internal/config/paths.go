package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/taskbook/internal/constants"
	"github.com/mrz1836/taskbook/internal/errors"
)

// HomeEnvVar overrides the taskbook home directory.
const HomeEnvVar = "TASKBOOK_HOME"

// HomeDir returns the taskbook home directory: $TASKBOOK_HOME when set,
// otherwise ~/.taskbook.
//
// Returns an error if the home directory cannot be determined.
func HomeDir() (string, error) {
	if dir := os.Getenv(HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.TaskbookHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
func ProjectConfigPath() string {
	return constants.ProjectConfigName
}

// LogDir returns the directory that holds the CLI log file.
func LogDir() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir), nil
}
