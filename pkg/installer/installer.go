// Package installer manages component packages on behalf of the host.
//
// The Installer handles the "component" package type: it extracts such
// packages into a temporary vendor directory, keeps their relocated asset
// directory clean across reinstalls and removals, and hooks the host's
// post-autoload-dump event to run the stage pipeline once every package is
// in place. The hook runs for every run regardless of package types, so
// packages of any type that declare component metadata are processed too.
package installer

import (
	"github.com/arthur-debert/compinst/pkg/config"
	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/filesystem"
	"github.com/arthur-debert/compinst/pkg/host"
	"github.com/arthur-debert/compinst/pkg/logging"
	"github.com/arthur-debert/compinst/pkg/pipeline"
	"github.com/arthur-debert/compinst/pkg/resolver"
	"github.com/arthur-debert/compinst/pkg/stages"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/rs/zerolog"
)

// HandlerName identifies the installer's post-autoload-dump handler
const HandlerName = "component-installer"

// Options configures an Installer
type Options struct {
	// TmpDir is the installer's own extraction directory, used unless the
	// host asks for its base vendor directory
	TmpDir string

	// Stages overrides the stage registry; nil means the built-in stages
	Stages *pipeline.Registry
}

// Installer is the component installer
type Installer struct {
	host    *host.Host
	library *host.LibraryInstaller
	config  *config.Resolver
	stages  *pipeline.Registry
	logger  zerolog.Logger

	// LastResult is the result of the most recent pipeline run
	LastResult *pipeline.Result
}

// New creates an Installer, adds it to h's installation manager and
// registers its post-autoload-dump handler.
func New(h *host.Host, opts Options) *Installer {
	var extra types.Metadata
	if h.Root != nil {
		extra = h.Root.Extra
	}
	if opts.Stages == nil {
		opts.Stages = stages.NewRegistry()
	}

	i := &Installer{
		host:    h,
		library: host.NewLibraryInstaller(h),
		config:  config.NewResolver(h.Config, extra, opts.TmpDir),
		stages:  opts.Stages,
		logger:  logging.GetLogger("installer"),
	}
	h.Installation.AddInstaller(i)
	i.registerHandler()
	return i
}

// Config returns the resolved configuration for this run
func (i *Installer) Config() *config.Resolved {
	return i.config.Get()
}

// Resolver returns the path resolver for this run
func (i *Installer) Resolver() *resolver.Resolver {
	return resolver.New(i.host.Root, i.Config())
}

// Stages returns the stage registry
func (i *Installer) Stages() *pipeline.Registry {
	return i.stages
}

// Supports reports whether packageType is the component type. Every call
// also makes sure the post-autoload-dump handler is registered; handlers
// registered by others for that event are kept.
func (i *Installer) Supports(packageType string) bool {
	i.registerHandler()
	return packageType == types.ComponentType
}

func (i *Installer) registerHandler() {
	i.host.Events.RegisterHandler(host.EventPostAutoloadDump, HandlerName, i.postAutoloadDump)
}

// VendorTmpDir returns the directory component packages are extracted into
func (i *Installer) VendorTmpDir() string {
	return i.Config().VendorTmpDir()
}

// InitializeVendorDir creates the component directory and points the
// underlying library installer at the vendor tmp dir.
func (i *Installer) InitializeVendorDir() error {
	if err := filesystem.EnsureDir(i.host.FS, i.host.ProjectPath(i.Config().ComponentDir())); err != nil {
		return err
	}
	i.library.VendorDir = i.VendorTmpDir()
	return i.library.InitializeVendorDir()
}

// InstallPath returns where pkg is extracted
func (i *Installer) InstallPath(pkg *types.Package) string {
	i.library.VendorDir = i.VendorTmpDir()
	return i.library.InstallPath(pkg)
}

// Install extracts pkg into the vendor tmp dir
func (i *Installer) Install(pkg *types.Package) error {
	if err := i.InitializeVendorDir(); err != nil {
		return err
	}
	return i.InstallCode(pkg)
}

// Uninstall removes pkg's extracted files and relocated assets
func (i *Installer) Uninstall(pkg *types.Package) error {
	if err := i.InitializeVendorDir(); err != nil {
		return err
	}
	return i.RemoveCode(pkg)
}

// InstallCode clears pkg's component directory, then extracts it. The
// extraction does not overwrite stale files from an earlier version.
func (i *Installer) InstallCode(pkg *types.Package) error {
	if err := i.RemoveComponent(pkg); err != nil {
		return err
	}
	return i.library.InstallCode(pkg)
}

// RemoveCode clears pkg's component directory and its extracted files
func (i *Installer) RemoveCode(pkg *types.Package) error {
	if err := i.RemoveComponent(pkg); err != nil {
		return err
	}
	return i.library.RemoveCode(pkg)
}

// RemoveComponent deletes pkg's relocated asset directory. A missing
// directory is not an error. A package whose name does not resolve to a
// single directory below the component directory is refused.
func (i *Installer) RemoveComponent(pkg *types.Package) error {
	if name := i.Resolver().ComponentName(pkg); !resolver.ValidName(name) {
		return errors.Newf(errors.ErrInvalidInput, "invalid component name %q for %s", name, pkg.PrettyName).
			WithDetail("package", pkg.PrettyName)
	}
	path := i.host.ProjectPath(i.Resolver().ComponentPath(pkg))
	i.logger.Debug().Str("package", pkg.PrettyName).Str("path", path).Msg("Removing component")
	return filesystem.RemovePath(i.host.FS, path)
}
