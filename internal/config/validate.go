package config

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrz1836/taskbook/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - storage.data_dir, storage.file_prefix and storage.file_suffix must not be empty
//   - storage.file_prefix must not contain path separators
//   - auth.users_file and auth.admin_username must not be empty
//   - auth.bcrypt_cost must be within bcrypt's supported range
//   - tasks.default_category must not be empty
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateStorageConfig(&cfg.Storage); err != nil {
		return err
	}

	if err := validateAuthConfig(&cfg.Auth); err != nil {
		return err
	}

	return validateTasksConfig(&cfg.Tasks)
}

func validateStorageConfig(cfg *StorageConfig) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.Wrap(errors.ErrConfigInvalidStorage, "storage.data_dir must not be empty")
	}
	if cfg.FilePrefix == "" || cfg.FileSuffix == "" {
		return errors.Wrap(errors.ErrConfigInvalidStorage, "storage.file_prefix and storage.file_suffix must not be empty")
	}
	if strings.ContainsAny(cfg.FilePrefix+cfg.FileSuffix, `/\`) {
		return errors.Wrapf(errors.ErrConfigInvalidStorage,
			"task file naming must not contain path separators, got %q and %q", cfg.FilePrefix, cfg.FileSuffix)
	}
	return nil
}

func validateAuthConfig(cfg *AuthConfig) error {
	if strings.TrimSpace(cfg.UsersFile) == "" {
		return errors.Wrap(errors.ErrConfigInvalidAuth, "auth.users_file must not be empty")
	}
	if strings.TrimSpace(cfg.AdminUsername) == "" {
		return errors.Wrap(errors.ErrConfigInvalidAuth, "auth.admin_username must not be empty")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return errors.Wrapf(errors.ErrConfigInvalidAuth,
			"auth.bcrypt_cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost)
	}
	return nil
}

func validateTasksConfig(cfg *TasksConfig) error {
	if strings.TrimSpace(cfg.DefaultCategory) == "" {
		return errors.Wrap(errors.ErrConfigInvalidTasks, "tasks.default_category must not be empty")
	}
	return nil
}
