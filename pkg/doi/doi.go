// Package doi looks up entry metadata by DOI. The Crossref REST API is the
// default source; anything that serves the same /works/{doi} document can
// stand in for it.
package doi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/logging"
)

// DefaultBaseURL is the Crossref REST API.
const DefaultBaseURL = "https://api.crossref.org"

// DefaultTimeout bounds a single lookup.
const DefaultTimeout = 30 * time.Second

const userAgent = "bibsort (https://github.com/arthur-debert/bibsort)"

// Client fetches abstracts from a Crossref compatible API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// ClientOption is a functional option for configuring a Client
type ClientOption func(*Client)

// NewClient creates a client for DefaultBaseURL.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  userAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithBaseURL points the client at another server.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithUserAgent replaces the User-Agent header. Crossref asks for a
// contact address in it.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

type worksResponse struct {
	Status  string `json:"status"`
	Message struct {
		DOI      string `json:"DOI"`
		Abstract string `json:"abstract"`
	} `json:"message"`
}

// Abstract returns the plain text abstract registered for doi.
func (c *Client) Abstract(ctx context.Context, doi string) (string, error) {
	logger := logging.GetLogger("doi")
	doi = Normalize(doi)
	if doi == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty DOI")
	}

	endpoint, err := url.JoinPath(c.baseURL, "works", doi)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid lookup URL for %s", doi).
			WithDetail("doi", doi)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to create request").
			WithDetail("doi", doi)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrNetwork, "lookup of %s failed", doi).
			WithDetail("doi", doi)
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Trace().Str("doi", doi).Int("status", resp.StatusCode).Msg("Lookup response")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", errors.Newf(errors.ErrDOINotFound, "DOI %s not found", doi).
			WithDetail("doi", doi)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", errors.Newf(errors.ErrNetwork, "lookup of %s failed with status: %s", doi, resp.Status).
			WithDetail("doi", doi).
			WithDetail("status", resp.StatusCode)
	}

	var works worksResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&works); err != nil {
		return "", errors.Wrapf(err, errors.ErrNetwork, "malformed response for %s", doi).
			WithDetail("doi", doi)
	}
	if works.Message.Abstract == "" {
		return "", errors.Newf(errors.ErrNoAbstract, "no abstract registered for %s", doi).
			WithDetail("doi", doi)
	}

	text, err := AbstractText(works.Message.Abstract)
	if err != nil {
		return "", errors.Wrapf(err, errors.GetErrorCode(err), "abstract of %s", doi).
			WithDetail("doi", doi)
	}
	if text == "" {
		return "", errors.Newf(errors.ErrNoAbstract, "empty abstract registered for %s", doi).
			WithDetail("doi", doi)
	}
	return text, nil
}

var resolverPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi:",
}

// Normalize strips resolver URLs and the "doi:" prefix, so every form of
// the same DOI is looked up the same way.
func Normalize(doi string) string {
	doi = strings.TrimSpace(doi)
	lower := strings.ToLower(doi)
	for _, prefix := range resolverPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(doi[len(prefix):])
		}
	}
	return doi
}
