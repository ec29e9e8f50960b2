package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryEnvironment(t *testing.T) {
	env := NewTestEnvironment(t, EnvMemoryOnly)

	path := env.WriteFile("nested/refs.bib", SampleBib)

	assert.Equal(t, "/work/nested/refs.bib", path)
	assert.Equal(t, SampleBib, env.ReadFile("nested/refs.bib"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestIsolatedEnvironment(t *testing.T) {
	env := NewTestEnvironment(t, EnvIsolated)

	path := env.WriteFile("refs.bib", SampleBib)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, SampleBib, string(data))
	assert.Equal(t, env.Path(".config"), os.Getenv("XDG_CONFIG_HOME"))
	assert.Equal(t, "1", os.Getenv("NO_COLOR"))
}
