package host

import (
	"path/filepath"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/filesystem"
	"github.com/arthur-debert/compinst/pkg/logging"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/rs/zerolog"
)

// Installer places a package's files on disk and removes them again
type Installer interface {
	Supports(packageType string) bool
	Install(pkg *types.Package) error
	Uninstall(pkg *types.Package) error
	InstallPath(pkg *types.Package) string
}

// LibraryInstaller is the host's default installer. It extracts a package
// into <VendorDir>/<prettyName>.
type LibraryInstaller struct {
	host   *Host
	logger zerolog.Logger

	// VendorDir is the extraction root
	VendorDir string
}

// NewLibraryInstaller creates a library installer extracting into the
// host's vendor directory.
func NewLibraryInstaller(h *Host) *LibraryInstaller {
	return &LibraryInstaller{
		host:      h,
		logger:    logging.GetLogger("host.installer"),
		VendorDir: h.VendorDir(),
	}
}

// Supports accepts every package type
func (l *LibraryInstaller) Supports(packageType string) bool {
	return true
}

// InitializeVendorDir makes sure the extraction root exists
func (l *LibraryInstaller) InitializeVendorDir() error {
	return filesystem.EnsureDir(l.host.FS, l.host.ProjectPath(l.VendorDir))
}

// InstallPath returns where pkg is extracted
func (l *LibraryInstaller) InstallPath(pkg *types.Package) string {
	return filepath.Join(l.host.ProjectPath(l.VendorDir), pkg.PrettyName)
}

// InstallCode extracts pkg's fetched files into its install path
func (l *LibraryInstaller) InstallCode(pkg *types.Package) error {
	if pkg.Source == "" {
		return errors.Newf(errors.ErrPackageInstall, "package %s has no source", pkg.PrettyName)
	}
	target := l.InstallPath(pkg)
	l.logger.Debug().
		Str("package", pkg.PrettyName).
		Str("source", pkg.Source).
		Str("target", target).
		Msg("Extracting package")
	if err := filesystem.CopyTree(l.host.FS, pkg.Source, target); err != nil {
		return errors.Wrapf(err, errors.ErrPackageInstall, "failed to install %s", pkg.PrettyName)
	}
	return nil
}

// RemoveCode deletes pkg's install path
func (l *LibraryInstaller) RemoveCode(pkg *types.Package) error {
	l.logger.Debug().Str("package", pkg.PrettyName).Msg("Removing package")
	return filesystem.RemovePath(l.host.FS, l.InstallPath(pkg))
}

// Install initializes the vendor directory and extracts pkg
func (l *LibraryInstaller) Install(pkg *types.Package) error {
	if err := l.InitializeVendorDir(); err != nil {
		return err
	}
	return l.InstallCode(pkg)
}

// Uninstall initializes the vendor directory and removes pkg
func (l *LibraryInstaller) Uninstall(pkg *types.Package) error {
	if err := l.InitializeVendorDir(); err != nil {
		return err
	}
	return l.RemoveCode(pkg)
}
