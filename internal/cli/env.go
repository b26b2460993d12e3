package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/taskbook/internal/auth"
	"github.com/mrz1836/taskbook/internal/config"
	tberrors "github.com/mrz1836/taskbook/internal/errors"
	"github.com/mrz1836/taskbook/internal/storage"
	"github.com/mrz1836/taskbook/internal/tasklist"
	"github.com/mrz1836/taskbook/internal/tui"
)

// env carries the collaborators a command needs: effective configuration,
// task file gateway, credential store and output.
type env struct {
	flags    *GlobalFlags
	cfg      *config.Config
	tasks    *storage.Gateway
	accounts *auth.Store
	logger   zerolog.Logger
	out      tui.Output
	stdout   io.Writer
}

// newEnv loads configuration (with --data-dir applied) and builds the
// gateway and credential store from it.
func newEnv(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags) (*env, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	overrides := &config.Config{}
	overrides.Storage.DataDir = flags.DataDir
	cfg, err := config.LoadWithOverrides(ctx, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	gateway, err := storage.NewGateway(cfg.Storage.DataDir,
		storage.WithLogger(logger),
		storage.WithNaming(cfg.Storage.FilePrefix, cfg.Storage.FileSuffix),
	)
	if err != nil {
		return nil, err
	}

	accounts := auth.NewStore(cfg.UsersPath(),
		auth.WithAdmin(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword),
		auth.WithCost(cfg.Auth.BcryptCost),
		auth.WithLogger(logger),
	)

	return &env{
		flags:    flags,
		cfg:      cfg,
		tasks:    gateway,
		accounts: accounts,
		logger:   logger,
		out:      newCommandOutput(cmd, flags.Output),
		stdout:   cmd.OutOrStdout(),
	}, nil
}

// newCommandOutput returns the output for the selected format on the
// command's stdout.
func newCommandOutput(cmd *cobra.Command, format string) tui.Output {
	if format == OutputJSON {
		return tui.NewJSONOutput(cmd.OutOrStdout())
	}
	return tui.NewTTYOutput(cmd.OutOrStdout())
}

func (e *env) jsonMode() bool {
	return e.flags.Output == OutputJSON
}

// credentials returns the identity and password from flags or environment,
// prompting when either is missing and a terminal is attached.
func (e *env) credentials(title string) (string, string, error) {
	user, pass := strings.TrimSpace(e.flags.User), e.flags.Password
	if user != "" && pass != "" {
		return user, pass, nil
	}
	if !tui.IsInteractive() {
		return "", "", fmt.Errorf("%w: --user and --password (or TASKBOOK_USER and TASKBOOK_PASSWORD) are required",
			tberrors.ErrInvalidArgument)
	}
	return tui.Credentials(title)
}

// login authenticates and opens a task session for the identity.
func (e *env) login(ctx context.Context) (*tasklist.Session, error) {
	user, pass, err := e.credentials("Log in to taskbook")
	if err != nil {
		return nil, err
	}
	return e.open(ctx, user, pass)
}

func (e *env) open(ctx context.Context, user, pass string) (*tasklist.Session, error) {
	admin, err := e.accounts.Login(ctx, user, pass)
	if err != nil {
		return nil, err
	}

	session, err := tasklist.Open(ctx, e.tasks, user, admin,
		tasklist.WithLogger(e.logger),
		tasklist.WithDefaultCategory(e.cfg.Tasks.DefaultCategory),
	)
	if err != nil {
		return nil, err
	}
	if n := session.Skipped(); n > 0 {
		e.out.Warning(fmt.Sprintf("%d malformed task record(s) were skipped", n))
	}
	return session, nil
}

// emit prints v as JSON in json mode and msg as a success line otherwise.
func (e *env) emit(v any, msg string) error {
	if e.jsonMode() {
		return e.out.JSON(v)
	}
	e.out.Success(msg)
	return nil
}

// sessionRunner is the body of a command that needs a logged-in session.
type sessionRunner func(ctx context.Context, e *env, s *tasklist.Session, args []string) error

// withSession builds a RunE that sets up the env, logs in and runs fn. Errors
// are reported through the command output.
func withSession(flags *GlobalFlags, fn sessionRunner) func(*cobra.Command, []string) error {
	return withEnv(flags, func(ctx context.Context, e *env, args []string) error {
		session, err := e.login(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, e, session, args)
	})
}

// envRunner is the body of a command that needs configuration but no session.
type envRunner func(ctx context.Context, e *env, args []string) error

func withEnv(flags *GlobalFlags, fn envRunner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd, flags)
		if err != nil {
			return reportError(cmd, flags, err)
		}
		return reportError(cmd, flags, fn(ctx, e, args))
	}
}

// reportError prints err with its user-facing message and silences cobra's
// own printing. The error is returned unchanged so the exit code reflects it.
func reportError(cmd *cobra.Command, flags *GlobalFlags, err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, tberrors.ErrJSONErrorOutput) {
		cmd.SilenceErrors = true
		return err
	}

	logger := GetLogger()
	logger.Debug().Err(err).Str("command", cmd.Name()).Msg("command failed")
	if flags.Output == OutputJSON {
		tui.NewJSONOutput(cmd.OutOrStdout()).Error(err)
	} else {
		tui.NewTTYOutput(cmd.ErrOrStderr()).Error(err)
	}
	cmd.SilenceErrors = true
	return err
}
