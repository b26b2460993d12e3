package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/taskbook/internal/domain"
	"github.com/mrz1836/taskbook/internal/tasklist"
	"github.com/mrz1836/taskbook/internal/tui"
)

// AddQueryCommands adds list, search, sort and overdue to the root command.
func AddQueryCommands(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newListCmd(flags))
	root.AddCommand(newSearchCmd(flags))
	root.AddCommand(newSortCmd(flags))
	root.AddCommand(newOverdueCmd(flags))
}

func newListCmd(flags *GlobalFlags) *cobra.Command {
	var (
		filter string
		q      tasklist.Query
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "show"},
		Short:   "Show tasks with progress",
		Long: `Show your tasks, or every user's tasks for the admin, with a
completion summary.

Examples:
  taskbook list
  taskbook list --filter incomplete --category Work
  taskbook list --owner alice -o json`,
		Args: cobra.NoArgs,
		RunE: withSession(flags, func(_ context.Context, e *env, s *tasklist.Session, _ []string) error {
			q.Filter = domain.Filter(strings.ToLower(filter))
			view, err := s.Show(q)
			if err != nil {
				return err
			}
			if e.jsonMode() {
				return e.out.JSON(view)
			}
			printTasks(e, s, view.Tasks, "No tasks found.")
			e.out.Info(tui.FormatProgress(view.Stats.Completed, view.Stats.Total, view.Stats.Percent))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", string(domain.FilterAll), "all, completed or incomplete")
	cmd.Flags().StringVarP(&q.Category, "category", "c", "", "only tasks in this category")
	cmd.Flags().StringVar(&q.Owner, "owner", "", "only tasks owned by this user")

	return cmd
}

func newSearchCmd(flags *GlobalFlags) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find tasks by name or category",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(flags, func(_ context.Context, e *env, s *tasklist.Session, args []string) error {
			tasks := s.Search(args[0], owner)
			if e.jsonMode() {
				return e.out.JSON(tasks)
			}
			printTasks(e, s, tasks, fmt.Sprintf("No tasks match %q.", args[0]))
			return nil
		}),
	}

	cmd.Flags().StringVar(&owner, "owner", "", "only tasks owned by this user")
	return cmd
}

func newSortCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "sort CRITERION",
		Short:     "Reorder stored tasks by priority, date, name or owner",
		Long:      `Reorder stored tasks. The owner criterion is only available to the admin.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"priority", "date", "name", "owner"},
		RunE: withSession(flags, func(ctx context.Context, e *env, s *tasklist.Session, args []string) error {
			criterion := domain.SortCriterion(strings.ToLower(args[0]))
			if err := s.Sort(ctx, criterion); err != nil {
				return err
			}
			if e.jsonMode() {
				return e.out.JSON(s.Tasks())
			}
			e.out.Success("Tasks sorted by " + string(criterion))
			return nil
		}),
	}
}

func newOverdueCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "Show incomplete tasks past their due date",
		Args:  cobra.NoArgs,
		RunE: withSession(flags, func(_ context.Context, e *env, s *tasklist.Session, _ []string) error {
			tasks := s.Overdue()
			if e.jsonMode() {
				return e.out.JSON(tasks)
			}
			printTasks(e, s, tasks, "No overdue tasks.")
			return nil
		}),
	}
}

// printTasks renders tasks as a table, or the empty message when there are none.
func printTasks(e *env, s *tasklist.Session, tasks []*domain.Task, empty string) {
	if len(tasks) == 0 {
		e.out.Info(empty)
		return
	}
	tui.RenderTasks(e.stdout, tasks, s.Today(), s.IsAdmin())
}
