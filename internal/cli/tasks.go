package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/taskbook/internal/domain"
	tberrors "github.com/mrz1836/taskbook/internal/errors"
	"github.com/mrz1836/taskbook/internal/tasklist"
)

// AddTaskCommands adds the task mutation commands to the root command.
func AddTaskCommands(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newAddCmd(flags))
	root.AddCommand(newEditCmd(flags))
	root.AddCommand(newStatusCmd(flags, "done", "Mark a task as completed", (*tasklist.Session).MarkDone))
	root.AddCommand(newStatusCmd(flags, "undone", "Mark a completed task as not done", (*tasklist.Session).Unmark))
	root.AddCommand(newDeleteCmd(flags))
	root.AddCommand(newClearCmd(flags))
}

// parseID parses a positive task id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: task id %q must be a positive number", tberrors.ErrInvalidArgument, arg)
	}
	return id, nil
}

func newAddCmd(flags *GlobalFlags) *cobra.Command {
	var in tasklist.NewTask

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a task",
		Long: `Add a task to your list.

Priority runs from 1 (most urgent) to 5. The due date is DD-MM-YYYY.
Without --category the configured default category is used.

Examples:
  taskbook add "Buy milk" --priority 2 --due 31-12-2099
  taskbook add "File taxes" -p 1 -d 30-04-2027 -c Personal`,
		Args: cobra.ExactArgs(1),
		RunE: withSession(flags, func(ctx context.Context, e *env, s *tasklist.Session, args []string) error {
			in.Name = args[0]
			t, err := s.AddTask(ctx, in)
			if err != nil {
				return err
			}
			return e.emit(t, fmt.Sprintf("Task %d added", t.ID))
		}),
	}

	cmd.Flags().IntVarP(&in.Priority, "priority", "p", 0, "priority from 1 (most urgent) to 5")
	cmd.Flags().StringVarP(&in.DueDate, "due", "d", "", "due date as DD-MM-YYYY")
	cmd.Flags().StringVarP(&in.Category, "category", "c", "", "category (default from config)")
	_ = cmd.MarkFlagRequired("priority")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newEditCmd(flags *GlobalFlags) *cobra.Command {
	var in tasklist.Update

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit one of your tasks",
		Long: `Edit one of your tasks. Only the flags you pass are changed.

A due date of 01-01-1970 also keeps the current date.`,
		Args: cobra.ExactArgs(1),
		RunE: withSession(flags, func(ctx context.Context, e *env, s *tasklist.Session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := s.EditTask(ctx, id, in)
			if err != nil {
				return err
			}
			return e.emit(t, fmt.Sprintf("Task %d updated", t.ID))
		}),
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "new name")
	cmd.Flags().IntVarP(&in.Priority, "priority", "p", 0, "new priority from 1 to 5")
	cmd.Flags().StringVarP(&in.DueDate, "due", "d", "", "new due date as DD-MM-YYYY")
	cmd.Flags().StringVarP(&in.Category, "category", "c", "", "new category")

	return cmd
}

// statusChange is MarkDone or Unmark.
type statusChange func(*tasklist.Session, context.Context, int) (*domain.Task, error)

func newStatusCmd(flags *GlobalFlags, use, short string, change statusChange) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withSession(flags, func(ctx context.Context, e *env, s *tasklist.Session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := change(s, ctx, id)
			if err != nil {
				return err
			}
			return e.emit(t, fmt.Sprintf("Task %d is now %s", t.ID, t.Status(s.Today())))
		}),
	}
}

func newDeleteCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete one of your tasks",
		Args:    cobra.ExactArgs(1),
		RunE: withSession(flags, func(ctx context.Context, e *env, s *tasklist.Session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := s.DeleteTask(ctx, id); err != nil {
				return err
			}
			return e.emit(map[string]int{"deleted": id}, fmt.Sprintf("Task %d deleted", id))
		}),
	}
}

func newClearCmd(flags *GlobalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task in your list",
		Long: `Delete every task in your list and restart task ids at 1.
The admin account is read-only and cannot clear tasks.

Asks for confirmation unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: withSession(flags, func(ctx context.Context, e *env, s *tasklist.Session, _ []string) error {
			ok, err := confirm(yes, "Delete all tasks? This cannot be undone.")
			if err != nil {
				return err
			}
			n, err := s.ClearAll(ctx, ok)
			if err != nil {
				return err
			}
			return e.emit(map[string]int{"cleared": n}, fmt.Sprintf("Cleared %d task(s)", n))
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
