package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileMemory(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.WriteFile("/refs/main.bib", []byte("@misc{a,}"), 0644))

	data, err := ReadFile(fsys, "/refs/main.bib")
	require.NoError(t, err)
	assert.Equal(t, "@misc{a,}", string(data))
}

func TestReadFileErrors(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/refs", 0755))

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(fsys, "/refs/missing.bib")
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound), "got %v", err)
		assert.Equal(t, "/refs/missing.bib", errors.GetErrorDetails(err)["path"])
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ReadFile(fsys, "/refs")
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess), "got %v", err)
	})
}

func TestWriteFileCreatesParents(t *testing.T) {
	fsys := NewMemory()

	require.NoError(t, WriteFile(fsys, "/out/sorted/main.bib", []byte("}\n")))

	data, err := fsys.ReadFile("/out/sorted/main.bib")
	require.NoError(t, err)
	assert.Equal(t, "}\n", string(data))
}

func TestOSOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	require.NoError(t, os.WriteFile(path, []byte("@book{b,}"), 0644))

	f, err := Open(NewOS(), path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "@book{b,}", string(data))

	_, err = Open(NewOS(), filepath.Join(dir, "nope.bib"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}
