package types

import (
	"strings"

	"github.com/arthur-debert/bibsort/pkg/errors"
)

// FieldSpec is one row of the field order table.
type FieldSpec struct {
	Name string `koanf:"name" toml:"name" json:"name" yaml:"name"`
	Wrap bool   `koanf:"wrap" toml:"wrap" json:"wrap" yaml:"wrap"`
}

// FieldOrder is the priority list controlling the render order of known
// fields. Names are unique.
type FieldOrder []FieldSpec

var defaultFieldOrder = FieldOrder{
	{Name: "author"},
	{Name: "title"},
	{Name: "type"},
	{Name: "journal"},
	{Name: "booktitle"},
	{Name: "series"},
	{Name: "volume"},
	{Name: "edition"},
	{Name: "number"},
	{Name: "pages"},
	{Name: "numpages"},
	{Name: "year"},
	{Name: "doi"},
	{Name: "isbn"},
	{Name: "issn"},
	{Name: "publisher"},
	{Name: "editor"},
	{Name: "institution"},
	{Name: "url"},
	{Name: "urldate"},
	{Name: "link"},
	{Name: "eprint"},
	{Name: "keywords"},
	{Name: "note"},
	{Name: "abstract"},
	{Name: "file"},
}

// DefaultFieldOrder returns a copy of the built-in table.
func DefaultFieldOrder() FieldOrder {
	order := make(FieldOrder, len(defaultFieldOrder))
	copy(order, defaultFieldOrder)
	return order
}

// Contains reports whether the table lists the named field.
func (o FieldOrder) Contains(name string) bool {
	for _, spec := range o {
		if spec.Name == name {
			return true
		}
	}
	return false
}

// Names returns the field names in table order.
func (o FieldOrder) Names() []string {
	names := make([]string, len(o))
	for i, spec := range o {
		names[i] = spec.Name
	}
	return names
}

// Validate checks that every name is non-empty, lower-case and unique.
func (o FieldOrder) Validate() error {
	seen := make(map[string]int, len(o))
	for i, spec := range o {
		if strings.TrimSpace(spec.Name) == "" {
			return errors.Newf(errors.ErrConfigValid, "field order entry %d has no name", i)
		}
		if spec.Name != strings.ToLower(spec.Name) {
			return errors.Newf(errors.ErrConfigValid, "field name %q must be lower case", spec.Name)
		}
		if prev, dup := seen[spec.Name]; dup {
			return errors.Newf(errors.ErrConfigValid, "field %q listed twice", spec.Name).
				WithDetail("first", prev).
				WithDetail("second", i)
		}
		seen[spec.Name] = i
	}
	return nil
}
