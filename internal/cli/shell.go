package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/taskbook/internal/constants"
	"github.com/mrz1836/taskbook/internal/date"
	"github.com/mrz1836/taskbook/internal/domain"
	tberrors "github.com/mrz1836/taskbook/internal/errors"
	"github.com/mrz1836/taskbook/internal/tasklist"
	"github.com/mrz1836/taskbook/internal/tui"
)

// Menu values for the shell.
const (
	actionLogin      = "login"
	actionRegister   = "register"
	actionQuit       = "quit"
	actionAdd        = "add"
	actionEdit       = "edit"
	actionDone       = "done"
	actionUndone     = "undone"
	actionDelete     = "delete"
	actionShow       = "show"
	actionSearch     = "search"
	actionSort       = "sort"
	actionClear      = "clear"
	actionOverdue    = "overdue"
	actionUsers      = "users"
	actionRemoveUser = "remove-user"
	actionLogout     = "logout"
	otherCategory    = "__other__"
)

// AddShellCommand adds the interactive shell to the root command.
func AddShellCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(&cobra.Command{
		Use:   "shell",
		Short: "Interactive menu for logging in and managing tasks",
		Long: `Start an interactive session. Log in or register, then pick operations
from a menu until you log out. Overdue tasks are shown right after login.`,
		Args: cobra.NoArgs,
		RunE: withEnv(flags, func(ctx context.Context, e *env, _ []string) error {
			if !tui.IsInteractive() {
				return tberrors.ErrInteractiveRequired
			}
			return runShell(ctx, e)
		}),
	})
}

// runShell loops on the login menu until the user quits or cancels.
func runShell(ctx context.Context, e *env) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		action, err := tui.Select("Taskbook", []tui.Option{
			{Label: "Log in", Value: actionLogin},
			{Label: "Register", Value: actionRegister},
			{Label: "Quit", Value: actionQuit},
		})
		if stderrors.Is(err, tberrors.ErrMenuCanceled) || action == actionQuit {
			return nil
		}
		if err != nil {
			return err
		}

		switch action {
		case actionRegister:
			user, pass, err := tui.Credentials("Register a new account")
			if err == nil {
				err = e.accounts.Register(ctx, user, pass)
			}
			if shellFailed(e, err) {
				continue
			}
			e.out.Success(fmt.Sprintf("User %q registered. You can log in now.", user))

		case actionLogin:
			user, pass, err := tui.Credentials("Log in to taskbook")
			if shellFailed(e, err) {
				continue
			}
			session, err := e.open(ctx, user, pass)
			if shellFailed(e, err) {
				continue
			}
			if err := runSessionMenu(ctx, e, session); err != nil {
				return err
			}
		}
	}
}

// shellFailed prints err unless it is a cancellation and reports whether
// there was an error.
func shellFailed(e *env, err error) bool {
	if err == nil {
		return false
	}
	if !stderrors.Is(err, tberrors.ErrMenuCanceled) {
		e.out.Error(err)
	}
	return true
}

// runSessionMenu runs operations for a logged-in session until logout.
func runSessionMenu(ctx context.Context, e *env, s *tasklist.Session) error {
	e.out.Success("Welcome, " + s.User())
	if overdue := s.Overdue(); len(overdue) > 0 {
		e.out.Warning(fmt.Sprintf("You have %d overdue task(s):", len(overdue)))
		tui.RenderTasks(e.stdout, overdue, s.Today(), s.IsAdmin())
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		action, err := tui.Select("What would you like to do?", sessionMenu(s.IsAdmin()))
		if stderrors.Is(err, tberrors.ErrMenuCanceled) || action == actionLogout {
			e.out.Info("Logged out.")
			return nil
		}
		if err != nil {
			return err
		}

		shellFailed(e, runAction(ctx, e, s, action))
	}
}

// sessionMenu returns the operations offered to the session. The admin
// views and manages users but does not create or change tasks.
func sessionMenu(admin bool) []tui.Option {
	if admin {
		return []tui.Option{
			{Label: "Show tasks", Value: actionShow},
			{Label: "Search tasks", Value: actionSearch},
			{Label: "Overdue tasks", Value: actionOverdue},
			{Label: "Sort tasks", Value: actionSort},
			{Label: "List users", Value: actionUsers},
			{Label: "Remove user", Value: actionRemoveUser},
			{Label: "Log out", Value: actionLogout},
		}
	}
	return []tui.Option{
		{Label: "Add task", Value: actionAdd},
		{Label: "Edit task", Value: actionEdit},
		{Label: "Mark task done", Value: actionDone},
		{Label: "Mark task not done", Value: actionUndone},
		{Label: "Delete task", Value: actionDelete},
		{Label: "Show tasks", Value: actionShow},
		{Label: "Search tasks", Value: actionSearch},
		{Label: "Overdue tasks", Value: actionOverdue},
		{Label: "Sort tasks", Value: actionSort},
		{Label: "Clear all tasks", Value: actionClear},
		{Label: "Log out", Value: actionLogout},
	}
}

//nolint:gocyclo // flat dispatch over menu actions
func runAction(ctx context.Context, e *env, s *tasklist.Session, action string) error {
	switch action {
	case actionAdd:
		return shellAdd(ctx, e, s)
	case actionEdit:
		return shellEdit(ctx, e, s)
	case actionDone:
		return shellStatus(ctx, e, s, true)
	case actionUndone:
		return shellStatus(ctx, e, s, false)
	case actionDelete:
		return shellDelete(ctx, e, s)
	case actionShow:
		return shellShow(e, s)
	case actionSearch:
		query, err := tui.Input("Search for", "", nil)
		if err != nil {
			return err
		}
		printTasks(e, s, s.Search(query, ""), fmt.Sprintf("No tasks match %q.", query))
		return nil
	case actionOverdue:
		printTasks(e, s, s.Overdue(), "No overdue tasks.")
		return nil
	case actionSort:
		return shellSort(ctx, e, s)
	case actionClear:
		ok, err := tui.Confirm("Delete all tasks? This cannot be undone.", false)
		if err != nil {
			return err
		}
		n, err := s.ClearAll(ctx, ok)
		if err != nil {
			return err
		}
		e.out.Success(fmt.Sprintf("Cleared %d task(s)", n))
		return nil
	case actionUsers:
		users, err := s.ListUsers(ctx, e.accounts)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			e.out.Info("No registered users.")
		}
		for _, u := range users {
			e.out.Info(u)
		}
		return nil
	case actionRemoveUser:
		return shellRemoveUser(ctx, e, s)
	default:
		return fmt.Errorf("%w: unknown action %q", tberrors.ErrInvalidArgument, action)
	}
}

func validateName(v string) error {
	if strings.TrimSpace(v) == "" {
		return tberrors.ErrEmptyName
	}
	return nil
}

func validateDate(v string) error {
	if _, ok := date.Normalize(v); !ok {
		return tberrors.ErrInvalidDate
	}
	return nil
}

// priorityOptions lists 1-5, optionally preceded by a keep entry.
func priorityOptions(keep bool) []tui.Option {
	var opts []tui.Option
	if keep {
		opts = append(opts, tui.Option{Label: "Keep current", Value: "0"})
	}
	for p := constants.MinPriority; p <= constants.MaxPriority; p++ {
		opts = append(opts, tui.Option{Label: strconv.Itoa(p), Value: strconv.Itoa(p)})
	}
	return opts
}

func selectPriority(title string, keep bool) (int, error) {
	v, err := tui.Select(title, priorityOptions(keep))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

// selectCategory offers the configured categories plus free text.
func selectCategory(e *env, current string) (string, error) {
	opts := make([]tui.Option, 0, len(e.cfg.Tasks.Categories)+1)
	for _, c := range e.cfg.Tasks.Categories {
		opts = append(opts, tui.Option{Label: c, Value: c})
	}
	opts = append(opts, tui.Option{Label: "Other...", Value: otherCategory})

	v, err := tui.Select("Category", opts)
	if err != nil {
		return "", err
	}
	if v != otherCategory {
		return v, nil
	}
	return tui.Input("Category", current, nil)
}

func shellAdd(ctx context.Context, e *env, s *tasklist.Session) error {
	var in tasklist.NewTask
	var err error

	if in.Name, err = tui.Input("Task name", "", validateName); err != nil {
		return err
	}
	if in.Priority, err = selectPriority("Priority (1 = most urgent)", false); err != nil {
		return err
	}
	if in.DueDate, err = tui.Input("Due date (DD-MM-YYYY)", "", validateDate); err != nil {
		return err
	}
	if in.Category, err = selectCategory(e, e.cfg.Tasks.DefaultCategory); err != nil {
		return err
	}

	t, err := s.AddTask(ctx, in)
	if err != nil {
		return err
	}
	e.out.Success(fmt.Sprintf("Task %d added", t.ID))
	return nil
}

// pickTask asks the user to choose one of tasks and returns its id.
func pickTask(title string, tasks []*domain.Task) (int, error) {
	if len(tasks) == 0 {
		return 0, tberrors.ErrTaskNotFound
	}
	opts := make([]tui.Option, 0, len(tasks))
	for _, t := range tasks {
		opts = append(opts, tui.Option{
			Label: fmt.Sprintf("%d: %s (due %s)", t.ID, t.Name, t.DueDate),
			Value: strconv.Itoa(t.ID),
		})
	}
	v, err := tui.Select(title, opts)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

func shellEdit(ctx context.Context, e *env, s *tasklist.Session) error {
	tasks := s.Tasks()
	id, err := pickTask("Edit which task?", tasks)
	if err != nil {
		return err
	}
	var current *domain.Task
	for _, t := range tasks {
		if t.ID == id {
			current = t
		}
	}

	in := tasklist.Update{}
	if in.Name, err = tui.Input("Task name", current.Name, nil); err != nil {
		return err
	}
	if in.Priority, err = selectPriority(fmt.Sprintf("Priority (now %d)", current.Priority), true); err != nil {
		return err
	}
	if in.DueDate, err = tui.Input("Due date (DD-MM-YYYY, 01-01-1970 keeps it)", current.DueDate, nil); err != nil {
		return err
	}
	if in.Category, err = selectCategory(e, current.Category); err != nil {
		return err
	}

	t, err := s.EditTask(ctx, id, in)
	if err != nil {
		return err
	}
	e.out.Success(fmt.Sprintf("Task %d updated", t.ID))
	return nil
}

func shellStatus(ctx context.Context, e *env, s *tasklist.Session, done bool) error {
	var candidates []*domain.Task
	for _, t := range s.Tasks() {
		if t.Done != done {
			candidates = append(candidates, t)
		}
	}

	title := "Mark which task as done?"
	change := s.MarkDone
	if !done {
		title = "Mark which task as not done?"
		change = s.Unmark
	}

	id, err := pickTask(title, candidates)
	if err != nil {
		return err
	}
	t, err := change(ctx, id)
	if err != nil {
		return err
	}
	e.out.Success(fmt.Sprintf("Task %d is now %s", t.ID, t.Status(s.Today())))
	return nil
}

func shellDelete(ctx context.Context, e *env, s *tasklist.Session) error {
	id, err := pickTask("Delete which task?", s.Tasks())
	if err != nil {
		return err
	}
	if err := s.DeleteTask(ctx, id); err != nil {
		return err
	}
	e.out.Success(fmt.Sprintf("Task %d deleted", id))
	return nil
}

func shellShow(e *env, s *tasklist.Session) error {
	opts := make([]tui.Option, 0, len(domain.ValidFilters()))
	for _, f := range domain.ValidFilters() {
		opts = append(opts, tui.Option{Label: string(f), Value: string(f)})
	}
	filter, err := tui.Select("Which tasks?", opts)
	if err != nil {
		return err
	}

	view, err := s.Show(tasklist.Query{Filter: domain.Filter(filter)})
	if err != nil {
		return err
	}
	printTasks(e, s, view.Tasks, "No tasks found.")
	e.out.Info(tui.FormatProgress(view.Stats.Completed, view.Stats.Total, view.Stats.Percent))
	return nil
}

func shellSort(ctx context.Context, e *env, s *tasklist.Session) error {
	criteria := domain.SortCriteria(s.IsAdmin())
	opts := make([]tui.Option, 0, len(criteria))
	for _, c := range criteria {
		opts = append(opts, tui.Option{Label: string(c), Value: string(c)})
	}
	v, err := tui.Select("Sort by", opts)
	if err != nil {
		return err
	}
	if err := s.Sort(ctx, domain.SortCriterion(v)); err != nil {
		return err
	}
	e.out.Success("Tasks sorted by " + v)
	return nil
}

func shellRemoveUser(ctx context.Context, e *env, s *tasklist.Session) error {
	users, err := s.ListUsers(ctx, e.accounts)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return tberrors.ErrUserNotFound
	}
	opts := make([]tui.Option, 0, len(users))
	for _, u := range users {
		opts = append(opts, tui.Option{Label: u, Value: u})
	}
	user, err := tui.Select("Remove which user?", opts)
	if err != nil {
		return err
	}
	ok, err := tui.Confirm(fmt.Sprintf("Remove %q and all of their tasks?", user), false)
	if err != nil {
		return err
	}
	if !ok {
		return tberrors.ErrNotConfirmed
	}
	if err := s.RemoveUser(ctx, e.accounts, user); err != nil {
		return err
	}
	e.out.Success(fmt.Sprintf("User %q removed", user))
	return nil
}
