// Package selection combines and filters databases: merging several
// bibliography files into one and keeping only the entries named in a key
// list.
package selection

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/filesystem"
	"github.com/arthur-debert/bibsort/pkg/logging"
	"github.com/arthur-debert/bibsort/pkg/types"
)

// Merge concatenates databases in argument order. Macro definitions from
// later databases replace earlier ones.
func Merge(dbs ...*types.Database) *types.Database {
	merged := types.NewDatabase()
	for _, db := range dbs {
		if db == nil {
			continue
		}
		for _, e := range db.Entries {
			merged.Add(e)
		}
		for name, value := range db.Strings {
			merged.Strings[name] = value
		}
	}
	return merged
}

// Filter keeps the entries whose identifier is in keys, in database
// order. Keys with no matching entry are ignored.
func Filter(db *types.Database, keys []string) *types.Database {
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}

	filtered := types.NewDatabase()
	for name, value := range db.Strings {
		filtered.Strings[name] = value
	}
	for _, e := range db.Entries {
		if wanted[e.Key] {
			filtered.Add(e)
		}
	}

	logger := logging.GetLogger("selection")
	logger.Debug().
		Int("requested", len(keys)).
		Int("kept", filtered.Len()).
		Int("total", db.Len()).
		Msg("Filtered entries")
	return filtered
}

// ReadKeys reads a key list: one identifier per line, blank lines and
// lines starting with '#' ignored. Only the first whitespace-separated
// word of a line counts, so "key url" lists can be reused as-is.
func ReadKeys(fsys types.FS, path string) ([]string, error) {
	data, err := filesystem.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}

	var keys []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keys = append(keys, strings.Fields(line)[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read key list %s", path).
			WithDetail("path", path)
	}
	return keys, nil
}
