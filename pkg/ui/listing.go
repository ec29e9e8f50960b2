package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/style"
	"github.com/arthur-debert/bibsort/pkg/types"
)

// ListField prints the value of one field for every entry that has it,
// numbered from 1, as "N. value (key)". Entries without the field are
// skipped and do not consume a number. It returns how many lines were
// printed.
func ListField(w io.Writer, db *types.Database, field string, styled bool) (int, error) {
	var st *style.Listing
	if styled {
		st = style.NewListing(w)
	}

	count := 0
	for _, e := range db.Entries {
		v, ok := e.Get(field)
		if !ok {
			continue
		}
		count++
		number, key := fmt.Sprintf("%d.", count), e.Key
		if st != nil {
			number, v, key = st.Number.Render(number), st.Value.Render(v), st.Key.Render(key)
		}
		if _, err := fmt.Fprintf(w, "%s %s (%s)\n", number, v, key); err != nil {
			return count, errors.Wrap(err, errors.ErrRender, "failed to write listing")
		}
	}
	return count, nil
}
