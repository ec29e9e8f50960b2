package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/bibsort/pkg/filesystem"
	"github.com/arthur-debert/bibsort/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a scratch directory and the filesystem backing it
type TestEnvironment struct {
	Root string
	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. Isolated environments
// also point XDG_CONFIG_HOME and XDG_STATE_HOME inside the temp directory
// and set NO_COLOR, so user configuration and terminal styling never leak
// into a test.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvIsolated:
		env.Root = t.TempDir()
		env.FS = filesystem.NewOS()
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.Root, ".config"))
		t.Setenv("XDG_STATE_HOME", filepath.Join(env.Root, ".state"))
		t.Setenv("NO_COLOR", "1")
	default:
		env.Root = "/work"
		env.FS = filesystem.NewMemory()
	}
	return env
}

// Path returns name joined to the environment root.
func (e *TestEnvironment) Path(name string) string {
	return filepath.Join(e.Root, name)
}

// WriteFile creates name under the root, with parents, and returns its path.
func (e *TestEnvironment) WriteFile(name, content string) string {
	e.t.Helper()
	path := e.Path(name)
	require.NoError(e.t, filesystem.WriteFile(e.FS, path, []byte(content)))
	return path
}

// ReadFile returns the content of name under the root.
func (e *TestEnvironment) ReadFile(name string) string {
	e.t.Helper()
	data, err := filesystem.ReadFile(e.FS, e.Path(name))
	require.NoError(e.t, err)
	return string(data)
}

// UserConfigPath is where config.Load looks for the user file in an
// isolated environment.
func (e *TestEnvironment) UserConfigPath() string {
	return filepath.Join(e.Root, ".config", "bibsort", "config.toml")
}
