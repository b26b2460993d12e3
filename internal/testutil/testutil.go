// Package testutil provides helpers shared by taskbook tests.
//
// It should only be imported by test files (*_test.go).
package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mock errors for simulating failures in fakes.
var (
	// ErrMockDiskFull simulates a failed write.
	ErrMockDiskFull = errors.New("disk full")

	// ErrMockAccountsUnavailable simulates a credential store that cannot be read.
	ErrMockAccountsUnavailable = errors.New("accounts unavailable")
)

// WriteFile writes content to path with owner-only permissions, creating
// parent directories as needed.
func WriteFile(tb testing.TB, path, content string) {
	tb.Helper()
	require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o600))
}

// ReadFile returns the content of path.
func ReadFile(tb testing.TB, path string) string {
	tb.Helper()
	data, err := os.ReadFile(path) //#nosec G304 -- test fixture path
	require.NoError(tb, err)
	return string(data)
}
