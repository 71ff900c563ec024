package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/logging"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// LoadOptions selects the layers merged into the host configuration.
type LoadOptions struct {
	// Manifest is the config table of the project manifest
	Manifest types.Metadata

	// File is an optional standalone TOML or YAML configuration file
	File string

	// Overrides are applied last, typically from command-line flags
	Overrides map[string]interface{}

	// SkipEnv disables the COMPINST_* environment layer
	SkipEnv bool
}

// Load builds the layered host configuration. Later layers win:
// defaults, manifest, file, environment, overrides.
func Load(opts LoadOptions) (*koanf.Koanf, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Project manifest
	if len(opts.Manifest) > 0 {
		if err := k.Load(confmap.Provider(map[string]interface{}(opts.Manifest), "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load manifest config")
		}
	}

	// 3. Standalone file
	if opts.File != "" {
		parser, err := parserFor(opts.File)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(opts.File), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", opts.File)
		}
		logger.Debug().Str("file", opts.File).Msg("Loaded config file")
	}

	// 4. Environment
	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", EnvKey), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	logger.Debug().Strs("keys", k.Keys()).Msg("Host configuration loaded")
	return k, nil
}

// EnvKey maps a COMPINST_ variable onto its host key. Variables that name
// no host key map to "" and are skipped, so COMPINST_HOME and friends stay
// out of the host configuration.
func EnvKey(name string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "_", "-")
	for _, known := range HostKeys {
		if key == known {
			return key
		}
	}
	return ""
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, errors.Newf(errors.ErrConfigParse, "unsupported config file format: %s", path).
		WithDetail("path", path)
}

// Dump renders the host configuration as TOML.
func Dump(k *koanf.Koanf) ([]byte, error) {
	out, err := gotoml.Marshal(k.Raw())
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return out, nil
}
