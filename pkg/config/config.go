package config

import (
	"net/url"
	"time"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/format"
	"github.com/arthur-debert/bibsort/pkg/types"
)

// Config is the effective bibsort configuration.
type Config struct {
	Layout Layout            `koanf:"layout" toml:"layout"`
	Online Online            `koanf:"online" toml:"online"`
	Fields []types.FieldSpec `koanf:"fields" toml:"fields"`
}

// Online configures DOI lookups.
type Online struct {
	CrossrefURL    string `koanf:"crossref_url" toml:"crossref_url"`
	TimeoutSeconds int    `koanf:"timeout_seconds" toml:"timeout_seconds"`
	// UserAgent is sent with every lookup. Crossref routes requests that
	// carry a mailto: address to its polite pool.
	UserAgent string `koanf:"user_agent" toml:"user_agent"`
}

// Timeout returns the per-lookup timeout.
func (o Online) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// Layout holds the column settings of the renderer.
type Layout struct {
	KeyWidth   int `koanf:"key_width" toml:"key_width"`
	WrapWidth  int `koanf:"wrap_width" toml:"wrap_width"`
	WrapIndent int `koanf:"wrap_indent" toml:"wrap_indent"`
}

// FieldOrder returns the configured field order table.
func (c *Config) FieldOrder() types.FieldOrder {
	order := make(types.FieldOrder, len(c.Fields))
	copy(order, c.Fields)
	return order
}

// FormatOptions converts the configuration into renderer options.
func (c *Config) FormatOptions() format.Options {
	return format.Options{
		Order:      c.FieldOrder(),
		KeyWidth:   c.Layout.KeyWidth,
		WrapWidth:  c.Layout.WrapWidth,
		WrapIndent: c.Layout.WrapIndent,
	}
}

// Validate checks layout bounds, the lookup settings and the field order
// table.
func (c *Config) Validate() error {
	if c.Layout.KeyWidth <= 0 {
		return errors.Newf(errors.ErrConfigValid, "layout.key_width must be positive, got %d", c.Layout.KeyWidth)
	}
	if c.Layout.WrapWidth <= 0 {
		return errors.Newf(errors.ErrConfigValid, "layout.wrap_width must be positive, got %d", c.Layout.WrapWidth)
	}
	if c.Layout.WrapIndent <= 0 || c.Layout.WrapIndent >= c.Layout.WrapWidth {
		return errors.Newf(errors.ErrConfigValid, "layout.wrap_indent must be between 1 and %d, got %d",
			c.Layout.WrapWidth-1, c.Layout.WrapIndent)
	}
	if u, err := url.Parse(c.Online.CrossrefURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Newf(errors.ErrConfigValid, "online.crossref_url must be an http(s) URL, got %q", c.Online.CrossrefURL)
	}
	if c.Online.TimeoutSeconds <= 0 {
		return errors.Newf(errors.ErrConfigValid, "online.timeout_seconds must be positive, got %d", c.Online.TimeoutSeconds)
	}
	return c.FieldOrder().Validate()
}
