package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/logging"
)

const (
	// ProjectConfigName is looked up in the working directory.
	ProjectConfigName = ".bibsort.toml"
	// EnvPrefix marks environment overrides, e.g. BIBSORT_LAYOUT_WRAP_WIDTH.
	EnvPrefix = "BIBSORT_"
)

// LoadOptions selects the configuration sources.
type LoadOptions struct {
	// Path is an explicit config file. It must exist when set and replaces
	// the project file lookup.
	Path string
	// Dir is where the project file is looked up. Defaults to ".".
	Dir string
	// Overrides are applied last, keyed by dotted path ("layout.wrap_width").
	Overrides map[string]interface{}
}

// Load builds the effective configuration:
//  1. embedded defaults
//  2. user config ($XDG_CONFIG_HOME/bibsort/config.toml) if present
//  3. --config file, or .bibsort.toml in Dir if present
//  4. BIBSORT_* environment variables
//  5. explicit overrides (command-line flags)
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	userPath := userConfigPath()
	if err := loadIfExists(k, userPath); err != nil {
		return nil, err
	}

	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", opts.Path).
				WithDetail("path", opts.Path)
		}
		if err := loadFile(k, opts.Path); err != nil {
			return nil, err
		}
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		if err := loadIfExists(k, filepath.Join(dir, ProjectConfigName)); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("fields", len(cfg.Fields)).
		Int("keyWidth", cfg.Layout.KeyWidth).
		Int("wrapWidth", cfg.Layout.WrapWidth).
		Msg("Configuration loaded")
	return &cfg, nil
}

// Default returns the embedded configuration without any overrides.
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal defaults")
	}
	return &cfg, nil
}

// envKey maps BIBSORT_LAYOUT_WRAP_WIDTH to layout.wrap_width: the first
// underscore separates the section from the key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func userConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, "bibsort", "config.toml")
}

func loadIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return loadFile(k, path)
}

func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Loaded config file")
	return nil
}
