package bibtex

import (
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/logging"
	"github.com/arthur-debert/bibsort/pkg/types"
)

// Parse reads a whole BibTeX document.
func Parse(r io.Reader) (*types.Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read bibliography")
	}
	return ParseString(string(data))
}

// ParseString parses a BibTeX document held in memory.
func ParseString(src string) (*types.Database, error) {
	logger := logging.GetLogger("bibtex")
	done := logging.LogOperationStart(logger, "parse")
	defer done()

	p := &parser{src: src, line: 1, db: types.NewDatabase(), macros: make(map[string]string)}
	if err := p.parse(); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("entries", p.db.Len()).
		Int("strings", len(p.db.Strings)).
		Msg("Parsed bibliography")
	return p.db, nil
}

type parser struct {
	src  string
	pos  int
	line int
	db   *types.Database

	// macros keeps @string values unnormalised so concatenation
	// preserves their surrounding spaces.
	macros map[string]string
}

func (p *parser) parse() error {
	for {
		if !p.skipTo('@') {
			return nil
		}
		p.advance() // '@'
		p.skipSpace()

		startLine := p.line
		kind := strings.ToLower(p.readIdent())
		p.skipSpace()

		// An '@' not followed by a type and an opening delimiter is plain
		// text between entries, such as an e-mail address.
		closer, ok := p.openDelim()
		if kind == "" || !ok {
			logger := logging.GetLogger("bibtex")
			logger.Trace().
				Int("line", startLine).
				Str("type", kind).
				Msg("Skipped text after '@'")
			continue
		}

		switch kind {
		case "comment", "preamble":
			if err := p.skipBlock(closer); err != nil {
				return err
			}
		case "string":
			if err := p.parseString(closer); err != nil {
				return err
			}
		default:
			if err := p.parseEntry(kind, closer, startLine); err != nil {
				return err
			}
		}
	}
}

func (p *parser) parseString(closer byte) error {
	p.skipSpace()
	name := strings.ToLower(p.readIdent())
	if name == "" {
		return p.errorf("expected macro name in @string")
	}
	p.skipSpace()
	if !p.consume('=') {
		return p.errorf("expected '=' after macro %q", name)
	}
	value, err := p.parseValue(closer)
	if err != nil {
		return err
	}
	p.skipSpace()
	if !p.consume(closer) {
		return p.errorf("expected %q to close @string", closer)
	}
	p.macros[name] = value
	p.db.Strings[name] = clean(value)
	return nil
}

func (p *parser) parseEntry(kind string, closer byte, startLine int) error {
	p.skipSpace()
	key := p.readUntil(func(c byte) bool {
		return c == ',' || c == closer || isSpace(c)
	})

	entry, err := types.NewEntry(kind, key)
	if err != nil {
		return errors.Wrap(err, errors.ErrParse, "invalid entry").
			WithDetail("line", startLine)
	}

	for {
		p.skipSpace()
		if p.consume(closer) {
			break
		}
		if !p.consume(',') {
			return p.errorf("expected ',' or %q in entry %q", closer, key)
		}
		p.skipSpace()
		if p.consume(closer) {
			break
		}

		name := p.readIdent()
		if name == "" {
			return p.errorf("expected field name in entry %q", key)
		}
		p.skipSpace()
		if !p.consume('=') {
			return p.errorf("expected '=' after field %q in entry %q", name, key)
		}
		value, err := p.parseValue(closer)
		if err != nil {
			return err
		}
		entry.Set(name, clean(value))
	}

	p.db.Add(entry)
	return nil
}

// parseValue reads one or more parts joined by '#' and returns their raw
// concatenation.
func (p *parser) parseValue(closer byte) (string, error) {
	var b strings.Builder
	for {
		p.skipSpace()
		part, err := p.parsePart(closer)
		if err != nil {
			return "", err
		}
		b.WriteString(part)
		p.skipSpace()
		if !p.consume('#') {
			break
		}
	}
	return b.String(), nil
}

func (p *parser) parsePart(closer byte) (string, error) {
	if p.eof() {
		return "", p.errorf("unexpected end of input in value")
	}
	switch c := p.peek(); {
	case c == '{':
		p.advance()
		return p.readBraced()
	case c == '"':
		p.advance()
		return p.readQuoted()
	default:
		token := p.readUntil(func(c byte) bool {
			return c == ',' || c == '#' || c == closer || c == '{' || c == '"' || isSpace(c)
		})
		if token == "" {
			return "", p.errorf("unexpected %q in value", c)
		}
		if value, ok := p.macros[strings.ToLower(token)]; ok {
			return value, nil
		}
		return token, nil
	}
}

// readBraced returns the text up to the brace matching an already
// consumed '{'. Nested braces are kept.
func (p *parser) readBraced() (string, error) {
	start, depth := p.pos, 1
	for !p.eof() {
		switch p.advance() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return p.src[start : p.pos-1], nil
			}
		}
	}
	return "", p.errorf("unterminated '{' in value")
}

// readQuoted returns the text up to the closing '"' at brace depth zero.
func (p *parser) readQuoted() (string, error) {
	start, depth := p.pos, 0
	for !p.eof() {
		switch p.advance() {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				return p.src[start : p.pos-1], nil
			}
		}
	}
	return "", p.errorf("unterminated '\"' in value")
}

func (p *parser) skipBlock(closer byte) error {
	opener := byte('{')
	if closer == ')' {
		opener = '('
	}
	depth := 1
	for !p.eof() {
		switch p.advance() {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
	return p.errorf("unterminated block")
}

func (p *parser) openDelim() (byte, bool) {
	switch {
	case p.consume('{'):
		return '}', true
	case p.consume('('):
		return ')', true
	default:
		return 0, false
	}
}

func (p *parser) readIdent() string {
	return p.readUntil(func(c byte) bool { return !isIdent(c) })
}

func (p *parser) readUntil(stop func(byte) bool) string {
	start := p.pos
	for !p.eof() && !stop(p.peek()) {
		p.advance()
	}
	return p.src[start:p.pos]
}

func (p *parser) skipTo(c byte) bool {
	for !p.eof() {
		if p.peek() == c {
			return true
		}
		p.advance()
	}
	return false
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.advance()
	}
}

func (p *parser) consume(c byte) bool {
	if !p.eof() && p.peek() == c {
		p.advance()
		return true
	}
	return false
}

func (p *parser) advance() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
	}
	return c
}

func (p *parser) peek() byte { return p.src[p.pos] }
func (p *parser) eof() bool  { return p.pos >= len(p.src) }

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Newf(errors.ErrParse, format, args...).
		WithDetail("line", p.line)
}

// clean collapses whitespace runs to a single space, trims the ends and
// applies NFC normalisation.
func clean(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

func isSpace(c byte) bool {
	return c < 0x80 && unicode.IsSpace(rune(c))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isIdent accepts the characters BibTeX allows in entry types, field names
// and macro names. Bytes of multi-byte runes are accepted as-is.
func isIdent(c byte) bool {
	if c >= 0x80 {
		return true
	}
	if unicode.IsLetter(rune(c)) || isDigit(c) {
		return true
	}
	return strings.IndexByte("_-:.+/'", c) >= 0
}
