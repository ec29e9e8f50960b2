package types

import (
	"testing"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntryRequiresTypeAndKey(t *testing.T) {
	tests := []struct {
		name      string
		entryType string
		key       string
		wantErr   bool
	}{
		{"valid", "article", "key1", false},
		{"missing type", "", "key1", true},
		{"missing key", "article", "", true},
		{"whitespace key", "article", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEntry(tt.entryType, tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.entryType, e.Type)
			assert.Equal(t, tt.key, e.Key)
			assert.Zero(t, e.Len())
		})
	}
}

func TestEntrySetKeepsFirstPosition(t *testing.T) {
	e, err := NewEntry("book", "knuth84")
	require.NoError(t, err)

	e.Set("Title", "The TeXbook")
	e.Set("year", "1984")
	e.Set("title", "The TeXbook, revised")

	assert.Equal(t, []string{"title", "year"}, e.Names())
	v, ok := e.Get("TITLE")
	assert.True(t, ok)
	assert.Equal(t, "The TeXbook, revised", v)
	assert.True(t, e.Has("year"))
	assert.False(t, e.Has("author"))
}

func TestOrderedFields(t *testing.T) {
	e, err := NewEntry("article", "key1")
	require.NoError(t, err)
	e.Set("zeta", "z")
	e.Set("year", "2020")
	e.Set("alpha", "a")
	e.Set("author", "Smith, J.")

	order := DefaultFieldOrder()

	assert.Equal(t, []string{"zeta", "alpha"}, e.ExtraFields(order))
	assert.Equal(t, []Field{
		{Name: "author", Value: "Smith, J."},
		{Name: "year", Value: "2020"},
		{Name: "zeta", Value: "z"},
		{Name: "alpha", Value: "a"},
	}, e.OrderedFields(order))
}

func TestDatabaseLookup(t *testing.T) {
	db := NewDatabase()
	a, _ := NewEntry("article", "a")
	b, _ := NewEntry("book", "b")
	db.Add(a)
	db.Add(b)

	assert.Equal(t, 2, db.Len())
	got, ok := db.Lookup("b")
	assert.True(t, ok)
	assert.Same(t, b, got)
	_, ok = db.Lookup("c")
	assert.False(t, ok)
}
