package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tberrors "github.com/mrz1836/taskbook/internal/errors"
)

func TestSelect_NoOptions(t *testing.T) {
	_, err := Select("Pick", nil)
	require.ErrorIs(t, err, tberrors.ErrInvalidArgument)
}

// Tests never run with a terminal on stdin, so every prompt refuses to start.
func TestPrompts_RequireTerminal(t *testing.T) {
	if IsInteractive() {
		t.Skip("stdin is a terminal")
	}

	_, err := Select("Pick", []Option{{Label: "A", Value: "a"}})
	require.ErrorIs(t, err, tberrors.ErrInteractiveRequired)

	_, err = Confirm("Sure?", false)
	require.ErrorIs(t, err, tberrors.ErrInteractiveRequired)

	_, err = Input("Name", "", nil)
	require.ErrorIs(t, err, tberrors.ErrInteractiveRequired)

	_, _, err = Credentials("Login")
	require.ErrorIs(t, err, tberrors.ErrInteractiveRequired)
}

func TestTheme(t *testing.T) {
	assert.NotNil(t, Theme())
}

func TestMenuWidth(t *testing.T) {
	w := menuWidth()
	assert.GreaterOrEqual(t, w, MinMenuWidth)
	assert.LessOrEqual(t, w, DefaultMenuWidth)
}
