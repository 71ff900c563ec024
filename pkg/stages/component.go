package stages

import (
	"path/filepath"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/pipeline"
	"github.com/arthur-debert/compinst/pkg/resolver"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/go-viper/mapstructure/v2"
)

// ComponentMeta is the decoded component bag of a package
type ComponentMeta struct {
	Name      string                 `mapstructure:"name"`
	Scripts   []string               `mapstructure:"scripts"`
	Styles    []string               `mapstructure:"styles"`
	Files     []string               `mapstructure:"files"`
	Templates []string               `mapstructure:"templates"`
	Shim      map[string]interface{} `mapstructure:"shim"`
	Config    map[string]interface{} `mapstructure:"config"`
}

// Assets returns every declared asset pattern
func (m ComponentMeta) Assets() []string {
	var all []string
	for _, list := range [][]string{m.Scripts, m.Styles, m.Files, m.Templates} {
		all = append(all, list...)
	}
	return all
}

// DecodeMeta decodes a component bag. A single string where a list is
// expected is accepted as a one element list.
func DecodeMeta(bag types.Metadata) (ComponentMeta, error) {
	var meta ComponentMeta
	if len(bag) == 0 {
		return meta, nil
	}
	if err := decode(bag, &meta); err != nil {
		return meta, errors.Wrap(err, errors.ErrInvalidInput, "invalid component metadata")
	}
	return meta, nil
}

func decode(input interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// Component is one package whose assets the stages handle
type Component struct {
	Package *types.Package

	// Name is the resolved asset name
	Name string

	// SourceDir is where the package's files were extracted
	SourceDir string

	// TargetDir is <componentDir>/<Name> resolved against the project root
	TargetDir string

	Meta ComponentMeta
}

// Discover returns the components of a run in package order, with the root
// project last. Packages whose metadata cannot be decoded are reported to io
// and left out.
func Discover(ctx *pipeline.Context, io types.IO) []*Component {
	h := ctx.Host
	var components []*Component

	for _, pkg := range h.Packages {
		bag, declared := ctx.Resolver.ComponentMeta(pkg)
		if pkg.Type != types.ComponentType && !declared {
			continue
		}
		meta, err := DecodeMeta(bag)
		if err != nil {
			io.Warning("Skipping " + pkg.PrettyName + ": " + err.Error())
			continue
		}
		components = append(components, &Component{
			Package:   pkg,
			Name:      ctx.Resolver.ComponentName(pkg),
			SourceDir: h.Installation.InstallPath(pkg),
			TargetDir: h.ProjectPath(ctx.Resolver.ComponentPath(pkg)),
			Meta:      meta,
		})
	}

	if root := rootComponent(ctx); root != nil {
		components = append(components, root)
	}
	return components
}

// rootComponent returns the root project as a component when its component
// bag lists assets. The same bag doubles as the override table, so a bag
// holding only per-package overrides does not make the root a component.
func rootComponent(ctx *pipeline.Context) *Component {
	root := ctx.Host.Root
	if root == nil {
		return nil
	}
	meta, err := DecodeMeta(root.Overrides())
	if err != nil || len(meta.Assets()) == 0 {
		return nil
	}

	name := root.Name()
	if resolver.ValidName(meta.Name) {
		name = meta.Name
	}
	return &Component{
		Package:   &root.Package,
		Name:      name,
		SourceDir: root.Dir,
		TargetDir: ctx.Host.ProjectPath(filepath.Join(ctx.Config.ComponentDir(), name)),
		Meta:      meta,
	}
}

// componentRoot returns the component directory resolved against the
// project root
func componentRoot(ctx *pipeline.Context) string {
	return ctx.Host.ProjectPath(ctx.Config.ComponentDir())
}
