package filesystem

import (
	stderrors "errors"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/logging"
	"github.com/arthur-debert/bibsort/pkg/types"
)

// Open opens an input file, mapping failures to FILE_NOT_FOUND or
// FILE_ACCESS. The caller closes the returned reader.
func Open(fsys types.FS, path string) (io.ReadCloser, error) {
	logger := logging.GetLogger("filesystem")

	info, err := fsys.Stat(path)
	if err != nil {
		return nil, inputError(err, path)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrFileAccess, "%s is a directory", path).
			WithDetail("path", path)
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, inputError(err, path)
	}
	logger.Debug().Str("path", path).Int64("size", info.Size()).Msg("Opened input")
	return f, nil
}

// ReadFile reads a whole input file with the same error mapping as Open.
func ReadFile(fsys types.FS, path string) ([]byte, error) {
	f, err := Open(fsys, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}
	return data, nil
}

// WriteFile writes an output file, creating parent directories.
func WriteFile(fsys types.FS, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", dir).
				WithDetail("path", path)
		}
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}
	logger := logging.GetLogger("filesystem")
	logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Wrote output")
	return nil
}

func inputError(err error, path string) error {
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrFileNotFound, "input file %s not found", path).
			WithDetail("path", path)
	}
	return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", path).
		WithDetail("path", path)
}
