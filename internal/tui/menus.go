package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	tberrors "github.com/mrz1836/taskbook/internal/errors"
)

// Menu layout constants.
const (
	// DefaultMenuWidth is the widest a menu is drawn.
	DefaultMenuWidth = 60

	// TerminalEdgeMargin is kept free between menu content and the terminal edge.
	TerminalEdgeMargin = 4

	// MinMenuWidth is the narrowest usable menu.
	MinMenuWidth = 40
)

// ErrMenuCanceled is returned when the user cancels a prompt with Esc or Ctrl+C.
var ErrMenuCanceled = tberrors.ErrMenuCanceled

// Option represents a selectable menu option.
type Option struct {
	// Label is the display text shown to the user.
	Label string
	// Value is the value returned when this option is selected.
	Value string
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // Fd fits in int
}

// menuWidth adapts DefaultMenuWidth to the terminal size.
func menuWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint:gosec // Fd fits in int
	if err != nil || width <= 0 {
		return DefaultMenuWidth
	}
	return max(min(DefaultMenuWidth, width-TerminalEdgeMargin), MinMenuWidth)
}

// runForm runs one or more fields as a single form.
func runForm(errorContext string, fields ...huh.Field) error {
	if !IsInteractive() {
		return tberrors.ErrInteractiveRequired
	}

	_, accessible := os.LookupEnv("ACCESSIBLE")
	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(Theme()).
		WithWidth(menuWidth()).
		WithAccessible(accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrMenuCanceled
		}
		return fmt.Errorf("%s: %w", errorContext, err)
	}
	return nil
}

// Theme returns the huh theme using the taskbook colors.
func Theme() *huh.Theme {
	CheckNoColor()

	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorPrimary)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(ColorSuccess)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Blurred.Base = t.Blurred.Base.BorderForeground(ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	return t
}

// Select presents a single-selection menu and returns the selected value.
func Select(title string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%w: no menu options", tberrors.ErrInvalidArgument)
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Value)
	}

	var selected string
	field := huh.NewSelect[string]().
		Title(title).
		Options(huhOptions...).
		Value(&selected)

	if err := runForm("select menu failed", field); err != nil {
		return "", err
	}
	return selected, nil
}

// Confirm presents a yes/no prompt.
func Confirm(message string, defaultYes bool) (bool, error) {
	confirmed := defaultYes
	field := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := runForm("confirm prompt failed", field); err != nil {
		return false, err
	}
	return confirmed, nil
}

// Input presents a single-line text prompt. validate may be nil.
func Input(prompt, defaultValue string, validate func(string) error) (string, error) {
	value := defaultValue
	field := huh.NewInput().
		Title(prompt).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}

	if err := runForm("input prompt failed", field); err != nil {
		return "", err
	}
	return value, nil
}

// Credentials prompts for a username and a hidden password in one form.
func Credentials(title string) (username, password string, err error) {
	user := huh.NewInput().
		Title(title).
		Description("Username").
		Value(&username)
	pass := huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password)

	if err := runForm("credentials prompt failed", user, pass); err != nil {
		return "", "", err
	}
	return username, password, nil
}
