package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	tberrors "github.com/mrz1836/taskbook/internal/errors"
	"github.com/mrz1836/taskbook/internal/tasklist"
	"github.com/mrz1836/taskbook/internal/tui"
)

// AddAccountCommands adds register, users and remove-user to the root command.
func AddAccountCommands(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newRegisterCmd(flags))
	root.AddCommand(newUsersCmd(flags))
	root.AddCommand(newRemoveUserCmd(flags))
}

func newRegisterCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a new user account",
		Long: `Create a new user account from --user and --password, the
TASKBOOK_USER and TASKBOOK_PASSWORD environment variables, or a prompt.

The admin username is reserved and cannot be registered.`,
		Args: cobra.NoArgs,
		RunE: withEnv(flags, func(ctx context.Context, e *env, _ []string) error {
			user, pass, err := e.credentials("Register a new account")
			if err != nil {
				return err
			}
			if err := e.accounts.Register(ctx, user, pass); err != nil {
				return err
			}
			return e.emit(map[string]string{"user": user}, fmt.Sprintf("User %q registered", user))
		}),
	}
}

// usersResponse is the JSON body of the users command.
type usersResponse struct {
	Users []string `json:"users"`
}

func newUsersCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users (admin)",
		Args:  cobra.NoArgs,
		RunE: withSession(flags, func(ctx context.Context, e *env, s *tasklist.Session, _ []string) error {
			users, err := s.ListUsers(ctx, e.accounts)
			if err != nil {
				return err
			}
			if e.jsonMode() {
				return e.out.JSON(usersResponse{Users: users})
			}
			if len(users) == 0 {
				e.out.Info("No registered users.")
				return nil
			}
			for _, u := range users {
				e.out.Info(u)
			}
			return nil
		}),
	}
}

func newRemoveUserCmd(flags *GlobalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove-user NAME",
		Short: "Remove a user account and its tasks (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(flags, func(ctx context.Context, e *env, s *tasklist.Session, args []string) error {
			ok, err := confirm(yes, fmt.Sprintf("Remove user %q and all of their tasks?", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				return tberrors.ErrNotConfirmed
			}
			if err := s.RemoveUser(ctx, e.accounts, args[0]); err != nil {
				return err
			}
			return e.emit(map[string]string{"removed": args[0]}, fmt.Sprintf("User %q removed", args[0]))
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirm returns true when yes is set, asks when a terminal is attached,
// and returns false otherwise.
func confirm(yes bool, question string) (bool, error) {
	if yes {
		return true, nil
	}
	if !tui.IsInteractive() {
		return false, nil
	}
	return tui.Confirm(question, false)
}
