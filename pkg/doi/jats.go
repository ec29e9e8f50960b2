package doi

import (
	"encoding/xml"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/unicode/norm"

	"github.com/arthur-debert/bibsort/pkg/errors"
)

// JATSNamespace is the namespace Crossref abstracts are published in.
const JATSNamespace = "http://www.ncbi.nlm.nih.gov/JATS1"

// blocks are separated by a space when flattened.
var blocks = map[string]bool{"p": true, "sec": true, "list-item": true, "break": true}

// AbstractText flattens a JATS abstract to a single line of text. Section
// titles ("Abstract", "Background") are dropped. Markup-free input is
// returned with its whitespace collapsed.
func AbstractText(markup string) (string, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Entity = xml.HTMLEntity

	wrapped := `<abstract xmlns:jats="` + JATSNamespace + `">` + markup + `</abstract>`
	if err := doc.ReadFromString(wrapped); err != nil {
		return "", errors.Wrap(err, errors.ErrParse, "malformed abstract markup")
	}

	var b strings.Builder
	flatten(&b, doc.Root())
	return norm.NFC.String(strings.Join(strings.Fields(b.String()), " ")), nil
}

func flatten(b *strings.Builder, el *etree.Element) {
	if el.Tag == "title" {
		return
	}
	if blocks[el.Tag] {
		b.WriteString(" ")
	}
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			flatten(b, t)
		}
	}
	if blocks[el.Tag] {
		b.WriteString(" ")
	}
}
