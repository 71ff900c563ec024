package types

import "strings"

// ComponentType is the package type managed by the component installer.
const ComponentType = "component"

// ComponentKey is the metadata key holding a package's component bag, and the
// root package key holding the per-package override table.
const ComponentKey = "component"

// VendorSeparator splits a pretty name into vendor and package name.
const VendorSeparator = "/"

// Package is a package resolved and fetched by the host.
type Package struct {
	// PrettyName is the "vendor/name" identity as declared by the package
	PrettyName string

	// Type classifies the package; "component" packages are managed directly
	Type string

	// Version is informational only
	Version string

	// Source is the directory the host fetched the package into
	Source string

	// Extra is the package's self-declared metadata
	Extra Metadata
}

// Name returns the part of the pretty name after the last vendor separator,
// or the whole pretty name when there is no separator.
func (p *Package) Name() string {
	if i := strings.LastIndex(p.PrettyName, VendorSeparator); i >= 0 {
		return p.PrettyName[i+len(VendorSeparator):]
	}
	return p.PrettyName
}

// Component returns the package's self-declared component bag.
func (p *Package) Component() (Metadata, bool) {
	return p.Extra.Bag(ComponentKey)
}

// RootPackage is the project being installed. Besides its own metadata it
// carries the host configuration section of the manifest.
type RootPackage struct {
	Package

	// Dir is the project root; root package files are read from here
	Dir string

	// Config is the raw host configuration declared by the project
	Config Metadata
}

// Overrides returns the root project's per-package override table.
func (r *RootPackage) Overrides() Metadata {
	if r == nil {
		return nil
	}
	table, _ := r.Extra.Bag(ComponentKey)
	return table
}

// Override returns the override bag declared for prettyName. It is only
// returned when the entry is a structured bag; any other shape is ignored.
func (r *RootPackage) Override(prettyName string) (Metadata, bool) {
	return r.Overrides().Bag(prettyName)
}
