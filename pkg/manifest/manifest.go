// Package manifest loads the project manifest: the root package's identity,
// its host configuration, its extra metadata and the packages the host has
// fetched for it.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/logging"
	"github.com/arthur-debert/compinst/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultPackageType is assumed for packages that declare no type
const DefaultPackageType = "library"

// Manifest is the decoded project manifest
type Manifest struct {
	Name     string                 `toml:"name" yaml:"name" json:"name"`
	Config   map[string]interface{} `toml:"config" yaml:"config" json:"config"`
	Extra    map[string]interface{} `toml:"extra" yaml:"extra" json:"extra"`
	Packages []PackageEntry         `toml:"packages" yaml:"packages" json:"packages"`

	// dir is the directory holding the manifest
	dir string
}

// PackageEntry describes one fetched package
type PackageEntry struct {
	Name    string                 `toml:"name" yaml:"name" json:"name"`
	Type    string                 `toml:"type" yaml:"type" json:"type"`
	Version string                 `toml:"version" yaml:"version" json:"version"`
	Source  string                 `toml:"source" yaml:"source" json:"source"`
	Extra   map[string]interface{} `toml:"extra" yaml:"extra" json:"extra"`
}

// Load reads and validates the manifest at path. The format is chosen by
// file extension.
func Load(path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest").With().Str("path", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrManifestNotFound, "manifest not found")
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read manifest")
	}

	m, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve manifest directory")
	}
	m.dir = abs

	logger.Debug().
		Str("name", m.Name).
		Int("packages", len(m.Packages)).
		Msg("Manifest loaded")
	return m, nil
}

// Parse decodes manifest content. ext selects the decoder: ".toml", ".yaml",
// ".yml", or ".json" and ".jsonc", which accept comments and trailing commas.
func Parse(data []byte, ext string) (*Manifest, error) {
	var m Manifest
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to parse TOML manifest")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to parse YAML manifest")
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to parse JSON manifest")
		}
	default:
		return nil, errors.Newf(errors.ErrManifestParse, "unsupported manifest format %q", ext)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	seen := make(map[string]bool, len(m.Packages))
	for i, entry := range m.Packages {
		if entry.Name == "" {
			return errors.Newf(errors.ErrManifestParse, "package #%d has no name", i+1)
		}
		if seen[entry.Name] {
			return errors.Newf(errors.ErrManifestParse, "package %s is declared twice", entry.Name)
		}
		seen[entry.Name] = true
	}
	return nil
}

// Dir returns the directory the manifest was loaded from, or "" when it was
// parsed from memory.
func (m *Manifest) Dir() string {
	return m.dir
}

// Root returns the root package. dir is the project root.
func (m *Manifest) Root(dir string) *types.RootPackage {
	return &types.RootPackage{
		Package: types.Package{
			PrettyName: m.Name,
			Type:       "project",
			Source:     dir,
			Extra:      types.Metadata(m.Extra),
		},
		Dir:    dir,
		Config: types.Metadata(m.Config),
	}
}

// PackageList returns the fetched packages in manifest order. Relative
// sources are resolved against dir.
func (m *Manifest) PackageList(dir string) []*types.Package {
	packages := make([]*types.Package, 0, len(m.Packages))
	for _, entry := range m.Packages {
		pkgType := entry.Type
		if pkgType == "" {
			pkgType = DefaultPackageType
		}
		source := entry.Source
		if source != "" && !filepath.IsAbs(source) {
			source = filepath.Join(dir, source)
		}
		packages = append(packages, &types.Package{
			PrettyName: entry.Name,
			Type:       pkgType,
			Version:    entry.Version,
			Source:     source,
			Extra:      types.Metadata(entry.Extra),
		})
	}
	return packages
}
