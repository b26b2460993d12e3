package testutil

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteAndReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "tasks_alice.txt")
	WriteFile(t, path, "[]")

	assert.Equal(t, "[]", ReadFile(t, path))
}

func TestMockErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	assert.False(t, errors.Is(ErrMockDiskFull, ErrMockAccountsUnavailable))
	assert.Equal(t, "disk full", ErrMockDiskFull.Error())
}
