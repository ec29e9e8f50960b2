// Package format renders bibliography entries in the canonical bibsort
// layout: a title-cased header, fields in field-order-table order followed
// by any extra fields, aligned '=' signs and a closing brace.
package format

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/logging"
	"github.com/arthur-debert/bibsort/pkg/types"
)

// Layout defaults.
const (
	DefaultKeyWidth   = 11
	DefaultWrapWidth  = 70
	DefaultWrapIndent = 18
)

// Options controls the layout of rendered entries.
type Options struct {
	// Order is the field order table. Nil means types.DefaultFieldOrder.
	Order types.FieldOrder
	// KeyWidth is the column width field names are padded to.
	KeyWidth int
	// WrapWidth is the maximum line width for fields with the wrap flag.
	WrapWidth int
	// WrapIndent is the indentation of continuation lines.
	WrapIndent int
}

// DefaultOptions returns the standard layout.
func DefaultOptions() Options {
	return Options{
		Order:      types.DefaultFieldOrder(),
		KeyWidth:   DefaultKeyWidth,
		WrapWidth:  DefaultWrapWidth,
		WrapIndent: DefaultWrapIndent,
	}
}

// Renderer turns entries into text blocks. It is not safe for concurrent use.
type Renderer struct {
	opts  Options
	title cases.Caser
}

// NewRenderer creates a renderer. Zero-valued options fall back to the
// defaults.
func NewRenderer(opts Options) *Renderer {
	if opts.Order == nil {
		opts.Order = types.DefaultFieldOrder()
	}
	if opts.KeyWidth <= 0 {
		opts.KeyWidth = DefaultKeyWidth
	}
	if opts.WrapWidth <= 0 {
		opts.WrapWidth = DefaultWrapWidth
	}
	if opts.WrapIndent <= 0 || opts.WrapIndent >= opts.WrapWidth {
		opts.WrapIndent = DefaultWrapIndent
	}
	return &Renderer{
		opts:  opts,
		title: cases.Title(language.Und),
	}
}

// Order returns the field order table in use.
func (r *Renderer) Order() types.FieldOrder {
	return r.opts.Order
}

// RenderEntry formats a single entry. The block ends with the closing
// brace and a newline.
func (r *Renderer) RenderEntry(e *types.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "@%s{%s,\n", r.TitleCase(e.Type), e.Key)

	for _, spec := range r.opts.Order {
		value, ok := e.Get(spec.Name)
		if !ok {
			continue
		}
		if spec.Wrap {
			b.WriteString(r.wrap(r.fieldHead(spec.Name), "{"+value+"},"))
		} else {
			b.WriteString(r.fieldLine(spec.Name, value))
		}
		b.WriteByte('\n')
	}

	for _, name := range e.ExtraFields(r.opts.Order) {
		value, _ := e.Get(name)
		b.WriteString(r.fieldLine(name, value))
		b.WriteByte('\n')
	}

	b.WriteString("}\n")
	return b.String()
}

// Render writes every entry of the database in order, each block followed
// by a blank line.
func (r *Renderer) Render(w io.Writer, db *types.Database) error {
	logger := logging.GetLogger("format")
	done := logging.LogOperationStart(logger, "render")
	defer done()

	for _, e := range db.Entries {
		if _, err := io.WriteString(w, r.RenderEntry(e)+"\n"); err != nil {
			return errors.Wrapf(err, errors.ErrRender, "failed to write entry %s", e.Key).
				WithDetail("key", e.Key)
		}
		logger.Trace().Str("key", e.Key).Int("fields", e.Len()).Msg("Rendered entry")
	}

	logger.Debug().Int("entries", db.Len()).Msg("Rendered bibliography")
	return nil
}

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "inproceedings" becomes "Inproceedings" and
// "phd-thesis" becomes "Phd-Thesis".
func (r *Renderer) TitleCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if !unicode.IsLetter(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && unicode.IsLetter(runes[j]) {
			j++
		}
		b.WriteString(r.title.String(string(runes[i:j])))
		i = j
	}
	return b.String()
}

func (r *Renderer) fieldHead(name string) string {
	return "  " + runewidth.FillRight(name, r.opts.KeyWidth) + " = "
}

func (r *Renderer) fieldLine(name, value string) string {
	return r.fieldHead(name) + "{" + value + "},"
}

// wrap fills lines of at most WrapWidth columns with the words of body,
// starting after head. Continuation lines are indented by WrapIndent
// spaces. A word longer than a continuation line is split so it fills the
// room left on the current line.
func (r *Renderer) wrap(head, body string) string {
	width, pad := r.opts.WrapWidth, strings.Repeat(" ", r.opts.WrapIndent)
	if runewidth.StringWidth(head+body) <= width {
		return head + body
	}

	var lines []string
	cur, empty := head, true
	for _, word := range strings.Split(body, " ") {
		for word != "" {
			room := width - runewidth.StringWidth(cur)
			if !empty {
				room--
			}
			ww := runewidth.StringWidth(word)
			if ww <= room {
				if !empty {
					cur += " "
				}
				cur, word, empty = cur+word, "", false
				continue
			}

			if ww > width-r.opts.WrapIndent && room > 0 {
				part, _, _ := strings.Cut(wrap.String(word, room), "\n")
				if part == "" && cur == pad {
					_, size := utf8.DecodeRuneInString(word)
					part = word[:size]
				}
				if part != "" {
					if !empty {
						cur += " "
					}
					cur, word, empty = cur+part, word[len(part):], false
				}
			}
			lines = append(lines, cur)
			cur, empty = pad, true
		}
	}
	lines = append(lines, cur)
	return strings.Join(lines, "\n")
}
