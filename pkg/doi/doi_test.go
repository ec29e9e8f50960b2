package doi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/bibsort/pkg/errors"
)

// crossref serves /works/{doi} documents from a map of DOI to abstract
// markup. A DOI mapped to "" has no abstract.
func crossref(t *testing.T, abstracts map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Contains(t, r.Header.Get("User-Agent"), "bibsort")

		doi := r.URL.Path[len("/works/"):]
		abstract, ok := abstracts[doi]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"status":"ok","message":{"DOI":%q,"abstract":%q}}`, doi, abstract)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.1000/xyz123", "10.1000/xyz123"},
		{"  10.1000/xyz123 ", "10.1000/xyz123"},
		{"https://doi.org/10.1000/XYZ", "10.1000/XYZ"},
		{"http://dx.doi.org/10.1000/xyz", "10.1000/xyz"},
		{"DOI:10.1000/xyz", "10.1000/xyz"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestAbstractText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			"jats paragraphs",
			"<jats:title>Abstract</jats:title>\n<jats:p>First   part.</jats:p><jats:p>Second part.</jats:p>",
			"First part. Second part.",
		},
		{
			"inline markup keeps words whole",
			"<jats:p>CO<jats:sub>2</jats:sub> and <jats:italic>in vivo</jats:italic> results</jats:p>",
			"CO2 and in vivo results",
		},
		{"plain text", "Plain\n text", "Plain text"},
		{"html entity", "<jats:p>a&nbsp;b &amp; c</jats:p>", "a b & c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AbstractText(tt.markup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := AbstractText("<jats:p>unclosed")
	assert.True(t, errors.IsErrorCode(err, errors.ErrParse), "got %v", err)
}

func TestClientAbstract(t *testing.T) {
	srv := crossref(t, map[string]string{
		"10.1000/abc":  "<jats:p>An abstract.</jats:p>",
		"10.1000/bare": "",
	})
	c := NewClient(WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))

	got, err := c.Abstract(context.Background(), "https://doi.org/10.1000/abc")
	require.NoError(t, err)
	assert.Equal(t, "An abstract.", got)

	_, err = c.Abstract(context.Background(), "10.1000/missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrDOINotFound), "got %v", err)
	assert.Equal(t, "10.1000/missing", errors.GetErrorDetails(err)["doi"])

	_, err = c.Abstract(context.Background(), "10.1000/bare")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoAbstract), "got %v", err)

	_, err = c.Abstract(context.Background(), " ")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(WithBaseURL(srv.URL)).Abstract(context.Background(), "10.1000/abc")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNetwork), "got %v", err)
	assert.Equal(t, http.StatusServiceUnavailable, errors.GetErrorDetails(err)["status"])
}
