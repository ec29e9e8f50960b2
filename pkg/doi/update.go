package doi

import (
	"context"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/logging"
	"github.com/arthur-debert/bibsort/pkg/types"
)

// Source looks up the abstract of a DOI. *Client implements it.
type Source interface {
	Abstract(ctx context.Context, doi string) (string, error)
}

// Failure is an entry whose abstract could not be fetched.
type Failure struct {
	Key string
	DOI string
	Err error
}

// Summary is the outcome of UpdateAbstracts.
type Summary struct {
	// Updated lists the keys that received an abstract, in file order.
	Updated []string
	// Candidates is the number of entries with a DOI and no abstract.
	Candidates int
	Failed     []Failure
}

// ProgressFunc is called after each abstract is stored. n counts from 1.
type ProgressFunc func(n int, key, abstract string)

// UpdateAbstracts sets the abstract field of every entry that has a doi
// field and no abstract. Lookup failures are collected in the summary and
// do not stop the run; a cancelled context does.
func UpdateAbstracts(ctx context.Context, db *types.Database, src Source, progress ProgressFunc) (Summary, error) {
	logger := logging.GetLogger("doi")
	done := logging.LogOperationStart(logger, "update abstracts")
	defer done()

	var summary Summary
	for _, e := range db.Entries {
		doi, ok := e.Get("doi")
		if !ok || e.Has("abstract") || Normalize(doi) == "" {
			continue
		}
		summary.Candidates++

		if err := ctx.Err(); err != nil {
			return summary, errors.Wrap(err, errors.ErrNetwork, "abstract lookup cancelled")
		}

		abstract, err := src.Abstract(ctx, doi)
		if err != nil {
			if ctx.Err() != nil {
				return summary, errors.Wrap(err, errors.ErrNetwork, "abstract lookup cancelled")
			}
			logger.Warn().Err(err).Str("key", e.Key).Str("doi", doi).Msg("Abstract not found")
			summary.Failed = append(summary.Failed, Failure{Key: e.Key, DOI: doi, Err: err})
			continue
		}

		e.Set("abstract", abstract)
		summary.Updated = append(summary.Updated, e.Key)
		logger.Debug().Str("key", e.Key).Str("doi", doi).Msg("Stored abstract")
		if progress != nil {
			progress(len(summary.Updated), e.Key, abstract)
		}
	}

	logger.Info().
		Int("updated", len(summary.Updated)).
		Int("failed", len(summary.Failed)).
		Int("entries", db.Len()).
		Msg("Updated abstracts")
	return summary, nil
}
