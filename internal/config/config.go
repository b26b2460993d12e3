// Package config provides layered configuration for taskbook.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (applied by the cli package)
//  2. Environment variables (TASKBOOK_* prefix)
//  3. Project config (./.taskbook.yaml)
//  4. Global config (~/.taskbook/config.yaml)
//  5. Built-in defaults
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "path/filepath"

// Config is the root configuration structure for taskbook.
type Config struct {
	// Storage controls where task files live and how they are named.
	Storage StorageConfig `yaml:"storage" json:"storage" mapstructure:"storage"`

	// Auth controls the credential file and the admin account.
	Auth AuthConfig `yaml:"auth" json:"auth" mapstructure:"auth"`

	// Tasks holds defaults applied when creating tasks.
	Tasks TasksConfig `yaml:"tasks" json:"tasks" mapstructure:"tasks"`
}

// StorageConfig contains settings for the per-user task files.
type StorageConfig struct {
	// DataDir is the directory holding task files and, by default, users.txt.
	// Default: "." (the working directory)
	DataDir string `yaml:"data_dir" json:"data_dir" mapstructure:"data_dir"`

	// FilePrefix is prepended to the identity to name a task file.
	// Default: "tasks_"
	FilePrefix string `yaml:"file_prefix" json:"file_prefix" mapstructure:"file_prefix"`

	// FileSuffix is appended to the identity to name a task file.
	// Default: ".txt"
	FileSuffix string `yaml:"file_suffix" json:"file_suffix" mapstructure:"file_suffix"`
}

// AuthConfig contains settings for accounts.
type AuthConfig struct {
	// UsersFile is the credential file. A relative path is resolved
	// against Storage.DataDir.
	// Default: "users.txt"
	UsersFile string `yaml:"users_file" json:"users_file" mapstructure:"users_file"`

	// AdminUsername is the reserved admin identity.
	// Default: "admin"
	AdminUsername string `yaml:"admin_username" json:"admin_username" mapstructure:"admin_username"`

	// AdminPassword is the admin password. Prefer TASKBOOK_AUTH_ADMIN_PASSWORD
	// over writing it to a config file.
	AdminPassword string `yaml:"admin_password" json:"admin_password" mapstructure:"admin_password"`

	// BcryptCost is the work factor for new password hashes.
	// Default: 10
	BcryptCost int `yaml:"bcrypt_cost" json:"bcrypt_cost" mapstructure:"bcrypt_cost"`
}

// TasksConfig contains task defaults.
type TasksConfig struct {
	// DefaultCategory is used when a task is added without a category.
	// Default: "General"
	DefaultCategory string `yaml:"default_category" json:"default_category" mapstructure:"default_category"`

	// Categories are offered as suggestions by interactive prompts.
	Categories []string `yaml:"categories" json:"categories" mapstructure:"categories"`
}

// UsersPath returns the credential file path with a relative UsersFile
// resolved against the data directory.
func (c *Config) UsersPath() string {
	if filepath.IsAbs(c.Auth.UsersFile) {
		return c.Auth.UsersFile
	}
	return filepath.Join(c.Storage.DataDir, c.Auth.UsersFile)
}

// Redacted returns a copy of the config with secrets masked, for display.
func (c *Config) Redacted() *Config {
	out := *c
	out.Tasks.Categories = append([]string(nil), c.Tasks.Categories...)
	if out.Auth.AdminPassword != "" {
		out.Auth.AdminPassword = "[REDACTED]"
	}
	return &out
}
