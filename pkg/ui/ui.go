// Package ui provides a unified interface for writing a bibliography in
// different output formats.
// It supports the canonical BibTeX layout plus JSON, YAML and XML exports,
// and the numbered field listing printed by the fields command.
package ui

import (
	"io"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/format"
	"github.com/arthur-debert/bibsort/pkg/types"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// Render writes the whole database.
	Render(db *types.Database) error
}

// NewRenderer creates a renderer for the given format. Every format uses
// the field order of fr, so structured exports list fields exactly as the
// BibTeX layout would.
func NewRenderer(f Format, w io.Writer, fr *format.Renderer) (Renderer, error) {
	switch f {
	case FormatBib:
		return &bibRenderer{output: w, renderer: fr}, nil
	case FormatJSON:
		return newJSONRenderer(w, fr.Order()), nil
	case FormatYAML:
		return &yamlRenderer{output: w, order: fr.Order()}, nil
	case FormatXML:
		return &xmlRenderer{output: w, order: fr.Order()}, nil
	default:
		return nil, errors.Newf(errors.ErrUnknownFormat, "unknown format: %v", f)
	}
}

type bibRenderer struct {
	output   io.Writer
	renderer *format.Renderer
}

func (r *bibRenderer) Render(db *types.Database) error {
	return r.renderer.Render(r.output, db)
}
