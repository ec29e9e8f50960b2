// Package config handles configuration management for bibsort.
// It supports loading configuration from multiple sources including
// the embedded defaults, TOML files, environment variables, and
// command-line flags, merged in that order.
package config
