// Package resolver computes where a package's component assets live.
//
// Precedence, highest first:
//  1. a structured entry for the package's pretty name in the root
//     project's component override table
//  2. the package's own extra.component bag
//
// Within the chosen bag an explicit "name" replaces the name derived from
// the pretty name. The final path is the component directory joined with
// that name.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/compinst/pkg/config"
	"github.com/arthur-debert/compinst/pkg/types"
)

// NameKey is the component bag field overriding the asset name
const NameKey = "name"

// Resolver resolves component names and paths
type Resolver struct {
	root   *types.RootPackage
	config *config.Resolved
}

// New creates a resolver reading overrides from root and the component
// directory from cfg
func New(root *types.RootPackage, cfg *config.Resolved) *Resolver {
	return &Resolver{root: root, config: cfg}
}

// ComponentMeta returns the effective component bag for pkg. The boolean is
// false when neither tier declares one.
func (r *Resolver) ComponentMeta(pkg *types.Package) (types.Metadata, bool) {
	if bag, ok := r.root.Override(pkg.PrettyName); ok {
		return bag, true
	}
	return pkg.Component()
}

// ValidName reports whether name can be used as a single directory below
// the component directory
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

// ComponentName returns the resolved asset name for pkg. A declared name
// that is not a plain directory name is ignored.
func (r *Resolver) ComponentName(pkg *types.Package) string {
	name := pkg.Name()
	if meta, ok := r.ComponentMeta(pkg); ok {
		if override, ok := meta.String(NameKey); ok && ValidName(override) {
			name = override
		}
	}
	return name
}

// ComponentPath returns the directory pkg's assets are relocated into
func (r *Resolver) ComponentPath(pkg *types.Package) string {
	return filepath.Join(r.config.ComponentDir(), r.ComponentName(pkg))
}

// ComponentDir returns the configured component directory
func (r *Resolver) ComponentDir() string {
	return r.config.ComponentDir()
}
