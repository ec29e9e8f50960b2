package types

import (
	"testing"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestDefaultFieldOrder(t *testing.T) {
	order := DefaultFieldOrder()

	assert.Equal(t, []string{
		"author", "title", "type", "journal", "booktitle", "series", "volume",
		"edition", "number", "pages", "numpages", "year", "doi", "isbn", "issn",
		"publisher", "editor", "institution", "url", "urldate", "link", "eprint",
		"keywords", "note", "abstract", "file",
	}, order.Names())
	for _, spec := range order {
		assert.False(t, spec.Wrap, "%s should not wrap", spec.Name)
	}
	assert.NoError(t, order.Validate())
}

func TestDefaultFieldOrderIsACopy(t *testing.T) {
	order := DefaultFieldOrder()
	order[0].Name = "changed"

	assert.Equal(t, "author", DefaultFieldOrder()[0].Name)
}

func TestFieldOrderValidate(t *testing.T) {
	tests := []struct {
		name    string
		order   FieldOrder
		wantErr bool
	}{
		{"empty table", FieldOrder{}, false},
		{"unique names", FieldOrder{{Name: "author"}, {Name: "title", Wrap: true}}, false},
		{"duplicate", FieldOrder{{Name: "author"}, {Name: "year"}, {Name: "author"}}, true},
		{"blank name", FieldOrder{{Name: " "}}, true},
		{"upper case", FieldOrder{{Name: "Author"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
