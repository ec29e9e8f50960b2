package ui

import (
	"encoding/json"
	"io"
	"unicode"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/types"
)

// Record is the exported shape of one entry.
type Record struct {
	Type   string        `json:"type"`
	Key    string        `json:"key"`
	Fields []types.Field `json:"fields"`
}

// Records converts a database into exported records with fields in
// render order.
func Records(db *types.Database, order types.FieldOrder) []Record {
	records := make([]Record, 0, db.Len())
	for _, e := range db.Entries {
		records = append(records, Record{
			Type:   e.Type,
			Key:    e.Key,
			Fields: e.OrderedFields(order),
		})
	}
	return records
}

type jsonRenderer struct {
	encoder *json.Encoder
	order   types.FieldOrder
}

func newJSONRenderer(output io.Writer, order types.FieldOrder) *jsonRenderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder, order: order}
}

func (r *jsonRenderer) Render(db *types.Database) error {
	if err := r.encoder.Encode(Records(db, r.order)); err != nil {
		return errors.Wrap(err, errors.ErrRender, "failed to encode JSON")
	}
	return nil
}

// yamlRenderer emits a sequence of mappings. Nodes are built by hand so
// the fields keep render order instead of yaml's sorted map keys.
type yamlRenderer struct {
	output io.Writer
	order  types.FieldOrder
}

func (r *yamlRenderer) Render(db *types.Database) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rec := range Records(db, r.order) {
		fields := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range rec.Fields {
			fields.Content = append(fields.Content, scalar(f.Name), scalar(f.Value))
		}
		entry := &yaml.Node{Kind: yaml.MappingNode}
		entry.Content = append(entry.Content,
			scalar("type"), scalar(rec.Type),
			scalar("key"), scalar(rec.Key),
			scalar("fields"), fields,
		)
		seq.Content = append(seq.Content, entry)
	}

	enc := yaml.NewEncoder(r.output)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return errors.Wrap(err, errors.ErrRender, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrRender, "failed to flush YAML")
	}
	return nil
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// BibTeXMLNamespace is the namespace of the XML export.
const BibTeXMLNamespace = "http://bibtexml.sf.net/"

type xmlRenderer struct {
	output io.Writer
	order  types.FieldOrder
}

func (r *xmlRenderer) Render(db *types.Database) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("bibtex:file")
	root.CreateAttr("xmlns:bibtex", BibTeXMLNamespace)

	for _, rec := range Records(db, r.order) {
		entry := root.CreateElement("bibtex:entry")
		entry.CreateAttr("id", rec.Key)
		body := namedElement(entry, rec.Type, "other", "type")
		for _, f := range rec.Fields {
			namedElement(body, f.Name, "field", "name").SetText(f.Value)
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(r.output); err != nil {
		return errors.Wrap(err, errors.ErrRender, "failed to write XML")
	}
	return nil
}

// namedElement adds <bibtex:name/> to parent. BibTeX allows type and field
// names that are not XML names ("2nd", "x+y"); those become
// <bibtex:fallback attr="name"/> instead.
func namedElement(parent *etree.Element, name, fallback, attr string) *etree.Element {
	if isXMLName(name) {
		return parent.CreateElement("bibtex:" + name)
	}
	el := parent.CreateElement("bibtex:" + fallback)
	el.CreateAttr(attr, name)
	return el
}

// isXMLName reports whether s can be used as the local part of a
// qualified name.
func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}
