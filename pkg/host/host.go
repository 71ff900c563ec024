package host

import (
	"path/filepath"

	"github.com/arthur-debert/compinst/pkg/config"
	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/logging"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/knadh/koanf/v2"
)

// Options configures a Host
type Options struct {
	Root     *types.RootPackage
	Packages []*types.Package
	Config   *koanf.Koanf
	FS       types.FS
	IO       types.IO
}

// Host is the running dependency manager: the project, its packages, its
// configuration and the services installers and handlers use.
type Host struct {
	Root     *types.RootPackage
	Packages []*types.Package
	Config   *koanf.Koanf
	FS       types.FS
	IO       types.IO

	Installation *InstallationManager
	Events       *EventDispatcher
	Library      *LibraryInstaller
}

// New creates a host with a library installer as default installer
func New(opts Options) *Host {
	h := &Host{
		Root:     opts.Root,
		Packages: opts.Packages,
		Config:   opts.Config,
		FS:       opts.FS,
		IO:       opts.IO,
	}
	h.Events = NewEventDispatcher(h)
	h.Library = NewLibraryInstaller(h)
	h.Installation = NewInstallationManager(h.Library)
	return h
}

// VendorDir returns the configured vendor directory
func (h *Host) VendorDir() string {
	return h.Config.String(config.KeyVendorDir)
}

// ProjectPath resolves path against the project root. Absolute paths and
// hosts without a root directory are returned unchanged.
func (h *Host) ProjectPath(path string) string {
	if filepath.IsAbs(path) || h.Root == nil || h.Root.Dir == "" {
		return path
	}
	return filepath.Join(h.Root.Dir, path)
}

// FindPackage looks a package up by pretty name
func (h *Host) FindPackage(prettyName string) (*types.Package, bool) {
	for _, pkg := range h.Packages {
		if pkg.PrettyName == prettyName {
			return pkg, true
		}
	}
	return nil, false
}

// InstallAll installs every package, then fires the post-autoload-dump
// event. The first failure stops the run.
func (h *Host) InstallAll() error {
	logger := logging.GetLogger("host")
	for _, pkg := range h.Packages {
		logger.Info().Str("package", pkg.PrettyName).Str("type", pkg.Type).Msg("Installing package")
		if err := h.Installation.Install(pkg); err != nil {
			return err
		}
	}
	return h.Events.Dispatch(EventPostAutoloadDump)
}

// Remove uninstalls the named packages and fires post-autoload-dump.
func (h *Host) Remove(prettyNames ...string) error {
	logger := logging.GetLogger("host")
	for _, name := range prettyNames {
		pkg, ok := h.FindPackage(name)
		if !ok {
			return errors.Newf(errors.ErrPackageNotFound, "package %s is not installed", name)
		}
		logger.Info().Str("package", name).Msg("Removing package")
		if err := h.Installation.Uninstall(pkg); err != nil {
			return errors.Wrapf(err, errors.ErrPackageRemove, "failed to remove %s", name)
		}
		h.dropPackage(name)
	}
	return h.Events.Dispatch(EventPostAutoloadDump)
}

func (h *Host) dropPackage(prettyName string) {
	kept := h.Packages[:0]
	for _, pkg := range h.Packages {
		if pkg.PrettyName != prettyName {
			kept = append(kept, pkg)
		}
	}
	h.Packages = kept
}
