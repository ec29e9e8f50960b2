// Package style holds the lipgloss styles used for terminal output.
package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Listing styles the parts of a field listing line.
type Listing struct {
	Number lipgloss.Style
	Value  lipgloss.Style
	Key    lipgloss.Style
}

// NewListing builds listing styles bound to w, so colour detection follows
// the actual output rather than the process stdout.
func NewListing(w io.Writer) *Listing {
	r := lipgloss.NewRenderer(w)
	return &Listing{
		Number: r.NewStyle().Bold(true).Foreground(PrimaryColor),
		Value:  r.NewStyle().Foreground(TextColor),
		Key:    r.NewStyle().Foreground(MutedColor).Italic(true),
	}
}
