package types

import (
	"strings"

	"github.com/arthur-debert/bibsort/pkg/errors"
)

// Field is a single name/value pair of an entry.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Entry is one bibliographic record. The type tag and identifier are
// struct fields; they never appear among the named fields.
//
// Fields are kept in a map for lookup plus a slice recording the order in
// which they were first set, so extra fields render in source order.
type Entry struct {
	Type string
	Key  string

	fields map[string]string
	order  []string
}

// NewEntry creates an entry with the given type tag and identifier.
// Both are required; an entry without either cannot be rendered.
func NewEntry(entryType, key string) (*Entry, error) {
	entryType = strings.TrimSpace(entryType)
	key = strings.TrimSpace(key)
	if entryType == "" {
		return nil, errors.New(errors.ErrInvalidInput, "entry has no type tag").
			WithDetail("key", key)
	}
	if key == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "@%s entry has no identifier", entryType).
			WithDetail("type", entryType)
	}
	return &Entry{
		Type:   entryType,
		Key:    key,
		fields: make(map[string]string),
	}, nil
}

// Set stores a field value under its lower-cased name. Setting a field
// twice replaces the value but keeps its original position.
func (e *Entry) Set(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, exists := e.fields[name]; !exists {
		e.order = append(e.order, name)
	}
	e.fields[name] = value
}

// Get returns the value of a field and whether it is present.
func (e *Entry) Get(name string) (string, bool) {
	v, ok := e.fields[strings.ToLower(name)]
	return v, ok
}

// Has reports whether the entry carries the named field.
func (e *Entry) Has(name string) bool {
	_, ok := e.fields[strings.ToLower(name)]
	return ok
}

// Len returns the number of named fields.
func (e *Entry) Len() int {
	return len(e.order)
}

// Names returns field names in insertion order.
func (e *Entry) Names() []string {
	names := make([]string, len(e.order))
	copy(names, e.order)
	return names
}

// ExtraFields returns the names of fields not listed in the order table,
// in insertion order.
func (e *Entry) ExtraFields(order FieldOrder) []string {
	var extra []string
	for _, name := range e.order {
		if !order.Contains(name) {
			extra = append(extra, name)
		}
	}
	return extra
}

// OrderedFields returns the entry's fields in render order: table fields in
// table order, then extra fields in insertion order.
func (e *Entry) OrderedFields(order FieldOrder) []Field {
	fields := make([]Field, 0, len(e.order))
	for _, spec := range order {
		if value, ok := e.fields[spec.Name]; ok {
			fields = append(fields, Field{Name: spec.Name, Value: value})
		}
	}
	for _, name := range e.ExtraFields(order) {
		fields = append(fields, Field{Name: name, Value: e.fields[name]})
	}
	return fields
}

// Database is an ordered collection of entries as read from one or more
// bibliography files.
type Database struct {
	Entries []*Entry
	// Strings holds @string macro definitions, keyed by lower-cased name.
	Strings map[string]string
}

// NewDatabase creates an empty database.
func NewDatabase() *Database {
	return &Database{Strings: make(map[string]string)}
}

// Add appends an entry, preserving file order.
func (d *Database) Add(e *Entry) {
	d.Entries = append(d.Entries, e)
}

// Len returns the number of entries.
func (d *Database) Len() int {
	return len(d.Entries)
}

// Lookup finds the first entry with the given identifier.
func (d *Database) Lookup(key string) (*Entry, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return nil, false
}
