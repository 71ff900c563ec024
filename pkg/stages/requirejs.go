package stages

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/filesystem"
	"github.com/arthur-debert/compinst/pkg/pipeline"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/dlclark/regexp2"
)

// Files written to the component directory
const (
	RequireConfigFile = "require.config.js"
	RequireJSFile     = "require.js"

	// requireLibrary is where a component named "require" puts its library
	requireLibrary = "require/require.js"

	defaultBaseURL = "components"
)

// RequireJSOptions are the require-js stage options
type RequireJSOptions struct {
	BaseURL string `mapstructure:"baseUrl"`
}

// RequireJSStage writes the require.js configuration for all components
type RequireJSStage struct {
	base
	opts   RequireJSOptions
	filter *regexp2.Regexp
}

// NewRequireJSStage is the require-js stage factory
func NewRequireJSStage(ctx *pipeline.Context, io types.IO, options types.Metadata) types.Stage {
	return &RequireJSStage{base: newBase(pipeline.StageRequireJS, ctx, io, options)}
}

// Init decodes the options and compiles the file filter
func (s *RequireJSStage) Init() error {
	s.opts = RequireJSOptions{BaseURL: defaultBaseURL}
	if err := s.decodeOptions(&s.opts); err != nil {
		return err
	}
	filter, err := s.ctx.Config.FileFilter()
	if err != nil {
		return err
	}
	s.filter = filter
	return filesystem.EnsureDir(s.fs, componentRoot(s.ctx))
}

// requirePackage is one entry of the "packages" list
type requirePackage struct {
	Name string `json:"name"`
	Main string `json:"main,omitempty"`
}

// requireConfig is the generated configuration. Component config bags are
// merged into it at the top level.
type requireConfig struct {
	BaseURL  string
	Packages []requirePackage
	Shim     map[string]interface{}
	Extra    map[string]interface{}
}

func (c *requireConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.Extra)+3)
	for k, v := range c.Extra {
		out[k] = v
	}
	if len(c.Packages) > 0 {
		out["packages"] = c.Packages
	}
	if len(c.Shim) > 0 {
		out["shim"] = c.Shim
	}
	out["baseUrl"] = c.BaseURL
	return json.Marshal(out)
}

// Process builds the configuration and writes require.config.js and
// require.js
func (s *RequireJSStage) Process() error {
	cfg, err := s.buildConfig(Discover(s.ctx, s.io))
	if err != nil {
		s.io.Warning(fmt.Sprintf("Failed to build the require.js configuration: %v", err))
		return err
	}

	script, err := requireConfigScript(cfg)
	if err != nil {
		return err
	}

	root := componentRoot(s.ctx)
	if err := s.write(filepath.Join(root, RequireConfigFile), script); err != nil {
		return err
	}

	library := ""
	if data, err := s.fs.ReadFile(filepath.Join(root, requireLibrary)); err == nil {
		library = string(data) + "\n"
	}
	if err := s.write(filepath.Join(root, RequireJSFile), library+script); err != nil {
		return err
	}

	s.logger.Info().Int("packages", len(cfg.Packages)).Msg("Wrote require.js configuration")
	return nil
}

func (s *RequireJSStage) buildConfig(components []*Component) (*requireConfig, error) {
	cfg := &requireConfig{
		BaseURL: s.opts.BaseURL,
		Shim:    map[string]interface{}{},
		Extra:   map[string]interface{}{},
	}

	for _, c := range components {
		scripts, err := assetFiles(s.fs, c, c.Meta.Scripts, ".js", s.filter)
		if err != nil {
			return nil, err
		}
		scripts = without(scripts, builtName(c))

		pkg := requirePackage{Name: c.Name}
		switch len(scripts) {
		case 0:
		case 1:
			pkg.Main = filepath.ToSlash(scripts[0])
		default:
			built, err := s.concatenate(c, scripts)
			if err != nil {
				return nil, err
			}
			pkg.Main = built
		}
		if pkg.Main != "" || len(c.Meta.Shim) > 0 {
			cfg.Packages = append(cfg.Packages, pkg)
		}

		if len(c.Meta.Shim) > 0 {
			cfg.Shim[c.Name] = c.Meta.Shim
		}
		mergeConfig(cfg.Extra, c.Meta.Config)
	}
	return cfg, nil
}

// concatenate joins scripts into <name>-built.js inside the component's
// directory and returns its name
func (s *RequireJSStage) concatenate(c *Component, scripts []string) (string, error) {
	var b strings.Builder
	for _, rel := range scripts {
		data, err := s.fs.ReadFile(filepath.Join(c.TargetDir, rel))
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", rel)
		}
		b.Write(data)
		b.WriteString("\n")
	}

	built := builtName(c)
	if err := s.write(filepath.Join(c.TargetDir, built), b.String()); err != nil {
		return "", err
	}
	return built, nil
}

func (s *RequireJSStage) write(path, content string) error {
	if err := s.fs.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}

// mergeConfig deep-merges src into dst. Nested bags merge key by key;
// anything else from src replaces the value in dst.
func mergeConfig(dst, src map[string]interface{}) {
	for k, v := range src {
		srcBag, srcIsBag := types.AsMetadata(v)
		dstBag, dstIsBag := types.AsMetadata(dst[k])
		if srcIsBag && dstIsBag {
			mergeConfig(dstBag, srcBag)
			dst[k] = map[string]interface{}(dstBag)
			continue
		}
		if srcIsBag {
			copied := map[string]interface{}{}
			mergeConfig(copied, srcBag)
			dst[k] = copied
			continue
		}
		dst[k] = v
	}
}

// requireConfigScript renders the configuration as a script usable both in
// the browser and from node
func requireConfigScript(cfg *requireConfig) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode require.js configuration")
	}

	var b strings.Builder
	b.WriteString("var components = ")
	b.Write(data)
	b.WriteString(";\n")
	b.WriteString("if (typeof require !== \"undefined\" && require.config) {\n")
	b.WriteString("    require.config(components);\n")
	b.WriteString("} else {\n")
	b.WriteString("    var require = components;\n")
	b.WriteString("}\n")
	b.WriteString("if (typeof exports !== \"undefined\" && typeof module !== \"undefined\") {\n")
	b.WriteString("    module.exports = components;\n")
	b.WriteString("}\n")
	return b.String(), nil
}

func builtName(c *Component) string {
	return c.Name + "-built.js"
}

func without(list []string, drop string) []string {
	out := list[:0]
	for _, item := range list {
		if item != drop {
			out = append(out, item)
		}
	}
	return out
}
