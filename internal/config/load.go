package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/taskbook/internal/errors"
)

// newViperInstance creates a Viper instance with the TASKBOOK_ env prefix,
// key replacer and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("TASKBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short aliases for the two settings most often set from the shell.
	_ = v.BindEnv("storage.data_dir", "TASKBOOK_STORAGE_DATA_DIR", "TASKBOOK_DATA_DIR")
	_ = v.BindEnv("auth.admin_password", "TASKBOOK_AUTH_ADMIN_PASSWORD", "TASKBOOK_ADMIN_PASSWORD")
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(ctx context.Context, v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("storage.data_dir", cfg.Storage.DataDir).
		Str("auth.users_file", cfg.Auth.UsersFile).
		Str("tasks.default_category", cfg.Tasks.DefaultCategory).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence:
// environment, project config, global config, then defaults. Missing config
// files are not an error.
func Load(ctx context.Context) (*Config, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		// No resolvable home directory: run without a global config.
		globalPath = ""
	}
	return LoadFromPaths(ctx, ProjectConfigPath(), globalPath)
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero values in overrides are applied.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}
	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths.
// projectConfigPath has higher priority than globalConfigPath. Either path
// can be empty, or name a file that does not exist, to skip that level.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" && fileExists(globalConfigPath) {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" && fileExists(projectConfigPath) {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(ctx, v)
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// setDefaults configures all default values on the Viper instance.
// IMPORTANT: Keys must match the mapstructure tag names exactly.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("storage.file_prefix", d.Storage.FilePrefix)
	v.SetDefault("storage.file_suffix", d.Storage.FileSuffix)

	v.SetDefault("auth.users_file", d.Auth.UsersFile)
	v.SetDefault("auth.admin_username", d.Auth.AdminUsername)
	v.SetDefault("auth.admin_password", d.Auth.AdminPassword)
	v.SetDefault("auth.bcrypt_cost", d.Auth.BcryptCost)

	v.SetDefault("tasks.default_category", d.Tasks.DefaultCategory)
	v.SetDefault("tasks.categories", d.Tasks.Categories)
}

// applyOverrides merges non-zero override values into the config.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Storage.DataDir != "" {
		cfg.Storage.DataDir = overrides.Storage.DataDir
	}
	if overrides.Auth.UsersFile != "" {
		cfg.Auth.UsersFile = overrides.Auth.UsersFile
	}
	if overrides.Tasks.DefaultCategory != "" {
		cfg.Tasks.DefaultCategory = overrides.Tasks.DefaultCategory
	}
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// Comma-separated strings, as env vars provide them, decode into slices.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}
