package config

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/mrz1836/taskbook/internal/constants"
)

// DefaultConfig returns a new Config with default values. These match the
// defaults registered with viper in setDefaults.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir:    ".",
			FilePrefix: constants.TaskFilePrefix,
			FileSuffix: constants.TaskFileSuffix,
		},
		Auth: AuthConfig{
			UsersFile:     constants.UsersFileName,
			AdminUsername: constants.DefaultAdminUsername,
			AdminPassword: constants.DefaultAdminPassword,
			BcryptCost:    bcrypt.DefaultCost,
		},
		Tasks: TasksConfig{
			DefaultCategory: constants.DefaultCategory,
			Categories:      defaultCategories(),
		},
	}
}

func defaultCategories() []string {
	return []string{"Work", "Personal", constants.DefaultCategory}
}
