package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/bibsort/pkg/errors"
)

// GenerateTOML serialises a configuration in the same shape as the
// embedded defaults, so the output can be saved as .bibsort.toml.
func GenerateTOML(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return string(data), nil
}
