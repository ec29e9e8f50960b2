package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/bibsort/pkg/bibtex"
	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/format"
	"github.com/arthur-debert/bibsort/pkg/types"
)

const sample = `
@article{key1, year={2020}, extra={x}, author={Smith, J.}, title={A Study}}
@book{knuth84, title={The TeXbook}}
`

func sampleDB(t *testing.T) *types.Database {
	t.Helper()
	db, err := bibtex.ParseString(sample)
	require.NoError(t, err)
	return db
}

func render(t *testing.T, f Format) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := NewRenderer(f, &buf, format.NewRenderer(format.DefaultOptions()))
	require.NoError(t, err)
	require.NoError(t, r.Render(sampleDB(t)))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatBib},
		{"bib", FormatBib},
		{"BibTeX", FormatBib},
		{"json", FormatJSON},
		{"yml", FormatYAML},
		{"xml", FormatXML},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("csv")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownFormat))
	assert.Equal(t, []string{"bib", "json", "yaml", "xml"}, Formats())
}

func TestNewRendererUnknownFormat(t *testing.T) {
	_, err := NewRenderer(Format(42), &bytes.Buffer{}, format.NewRenderer(format.Options{}))
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownFormat))
}

func TestBibFormat(t *testing.T) {
	out := render(t, FormatBib)

	assert.True(t, strings.HasPrefix(out, "@Article{key1,\n  author      = {Smith, J.},\n"))
	assert.Contains(t, out, "}\n\n@Book{knuth84,\n")
}

func TestJSONFormat(t *testing.T) {
	var records []Record
	require.NoError(t, json.Unmarshal([]byte(render(t, FormatJSON)), &records))

	require.Len(t, records, 2)
	assert.Equal(t, "article", records[0].Type)
	assert.Equal(t, "key1", records[0].Key)
	assert.Equal(t, []types.Field{
		{Name: "author", Value: "Smith, J."},
		{Name: "title", Value: "A Study"},
		{Name: "year", Value: "2020"},
		{Name: "extra", Value: "x"},
	}, records[0].Fields)
}

func TestYAMLFormatKeepsFieldOrder(t *testing.T) {
	out := render(t, FormatYAML)

	var decoded []struct {
		Type   string            `yaml:"type"`
		Key    string            `yaml:"key"`
		Fields map[string]string `yaml:"fields"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "2020", decoded[0].Fields["year"])
	assert.Equal(t, "knuth84", decoded[1].Key)

	author := strings.Index(out, "author:")
	title := strings.Index(out, "title:")
	year := strings.Index(out, "year:")
	extra := strings.Index(out, "extra:")
	assert.True(t, author < title && title < year && year < extra, "fields out of order:\n%s", out)
}

func TestXMLFormat(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(render(t, FormatXML)))

	entries := doc.FindElements("//bibtex:entry")
	require.Len(t, entries, 2)
	assert.Equal(t, "key1", entries[0].SelectAttrValue("id", ""))

	article := entries[0].SelectElement("bibtex:article")
	require.NotNil(t, article)
	var names []string
	for _, child := range article.ChildElements() {
		names = append(names, child.Tag)
	}
	assert.Equal(t, []string{"author", "title", "year", "extra"}, names)
	assert.Equal(t, "Smith, J.", article.SelectElement("bibtex:author").Text())
}

func TestXMLFormatEscapesInvalidNames(t *testing.T) {
	db, err := bibtex.ParseString("@my+type{k, x+y={1}, 2nd={2}, ns:tag={3}, ok-name={4}}")
	require.NoError(t, err)

	var buf bytes.Buffer
	r, err := NewRenderer(FormatXML, &buf, format.NewRenderer(format.DefaultOptions()))
	require.NoError(t, err)
	require.NoError(t, r.Render(db))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(buf.String()), buf.String())

	body := doc.FindElement("//bibtex:entry/bibtex:other")
	require.NotNil(t, body, buf.String())
	assert.Equal(t, "my+type", body.SelectAttrValue("type", ""))

	var got []string
	for _, child := range body.ChildElements() {
		name := child.Tag
		if name == "field" {
			name = "field[" + child.SelectAttrValue("name", "") + "]"
		}
		got = append(got, name+"="+child.Text())
	}
	assert.Equal(t, []string{"field[x+y]=1", "field[2nd]=2", "field[ns:tag]=3", "ok-name=4"}, got)
}

func TestIsXMLName(t *testing.T) {
	for _, name := range []string{"author", "_x", "ok-name", "v1.2", "édition"} {
		assert.True(t, isXMLName(name), name)
	}
	for _, name := range []string{"", "2nd", "x+y", "ns:tag", "-a", "it's"} {
		assert.False(t, isXMLName(name), name)
	}
}

func TestListField(t *testing.T) {
	db, err := bibtex.ParseString(`
@misc{a, title={First}}
@misc{b, note={no title}}
@misc{c, title={Third}}
`)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := ListField(&buf, db, "title", false)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, "1. First (a)\n2. Third (c)\n", buf.String())
}

func TestListFieldStyled(t *testing.T) {
	var buf bytes.Buffer
	n, err := ListField(&buf, sampleDB(t), "title", true)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Contains(t, buf.String(), "A Study")
	assert.Contains(t, buf.String(), "knuth84")
}
