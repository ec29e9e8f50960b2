package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/bibsort/pkg/errors"
)

// Format represents the output format type
type Format int

const (
	// FormatBib renders the canonical BibTeX layout
	FormatBib Format = iota
	// FormatJSON renders machine-readable JSON output
	FormatJSON
	// FormatYAML renders YAML with fields in render order
	FormatYAML
	// FormatXML renders a BibTeXML-style document
	FormatXML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatBib:
		return "bib"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "bib", "bibtex", "":
		return FormatBib, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xml", "bibtexml":
		return FormatXML, nil
	default:
		return FormatBib, errors.Newf(errors.ErrUnknownFormat, "unknown format: %s", s).
			WithDetail("format", s)
	}
}

// Formats lists the accepted --format values.
func Formats() []string {
	return []string{FormatBib.String(), FormatJSON.String(), FormatYAML.String(), FormatXML.String()}
}

// IsStyled reports whether output to the file should carry colour: it must
// be a terminal with colour support and NO_COLOR must be unset.
func IsStyled(output *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return false
	}

	return termenv.ColorProfile() != termenv.Ascii
}
