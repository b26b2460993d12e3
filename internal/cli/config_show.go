package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/taskbook/internal/config"
	"github.com/mrz1836/taskbook/internal/tui"
)

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect taskbook configuration",
	}
	cmd.AddCommand(newConfigShowCmd(flags))
	cmd.AddCommand(newConfigPathCmd(flags))
	root.AddCommand(cmd)
}

func newConfigShowCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective configuration after merging defaults, the global
config (~/.taskbook/config.yaml), the project config (./.taskbook.yaml),
TASKBOOK_* environment variables and flags.

The admin password is masked in the output.

Examples:
  taskbook config show
  taskbook config show -o json`,
		Args: cobra.NoArgs,
		RunE: withEnv(flags, func(ctx context.Context, e *env, _ []string) error {
			return runConfigShow(ctx, e.stdout, e.cfg, flags.Output)
		}),
	}
}

// runConfigShow writes the redacted config as YAML, or JSON when requested.
func runConfigShow(ctx context.Context, w io.Writer, cfg *config.Config, format string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	redacted := cfg.Redacted()
	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(redacted)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(redacted); err != nil {
		return fmt.Errorf("failed to encode config as YAML: %w", err)
	}
	return enc.Close()
}

// configPaths is the JSON body of config path.
type configPaths struct {
	Global  string `json:"global"`
	Project string `json:"project"`
	LogFile string `json:"log_file"`
	Users   string `json:"users"`
	DataDir string `json:"data_dir"`
}

func newConfigPathCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where taskbook reads and writes files",
		Args:  cobra.NoArgs,
		RunE: withEnv(flags, func(_ context.Context, e *env, _ []string) error {
			paths := configPaths{
				Project: config.ProjectConfigPath(),
				Users:   e.accounts.Path(),
				DataDir: e.tasks.Dir(),
			}
			if global, err := config.GlobalConfigPath(); err == nil {
				paths.Global = global
			}
			if logFile, err := LogFilePath(); err == nil {
				paths.LogFile = logFile
			}

			if e.jsonMode() {
				return e.out.JSON(paths)
			}
			e.out.Info("global config:  " + paths.Global)
			e.out.Info("project config: " + paths.Project)
			e.out.Info("data dir:       " + paths.DataDir)
			e.out.Info("users file:     " + paths.Users)
			e.out.Info("log file:       " + paths.LogFile)
			return nil
		}),
	}
}
