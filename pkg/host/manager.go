package host

import (
	"github.com/arthur-debert/compinst/pkg/types"
)

// InstallationManager routes packages to the first installer supporting
// their type, falling back to the library installer.
type InstallationManager struct {
	installers []Installer
	fallback   Installer
}

// NewInstallationManager creates a manager with fallback as default installer
func NewInstallationManager(fallback Installer) *InstallationManager {
	return &InstallationManager{fallback: fallback}
}

// AddInstaller registers an installer; earlier installers take precedence
func (m *InstallationManager) AddInstaller(installer Installer) {
	m.installers = append(m.installers, installer)
}

// GetInstaller returns the installer responsible for packageType
func (m *InstallationManager) GetInstaller(packageType string) Installer {
	for _, installer := range m.installers {
		if installer.Supports(packageType) {
			return installer
		}
	}
	return m.fallback
}

// Install installs pkg with its installer
func (m *InstallationManager) Install(pkg *types.Package) error {
	return m.GetInstaller(pkg.Type).Install(pkg)
}

// Uninstall removes pkg with its installer
func (m *InstallationManager) Uninstall(pkg *types.Package) error {
	return m.GetInstaller(pkg.Type).Uninstall(pkg)
}

// InstallPath returns where pkg's installer extracts it
func (m *InstallationManager) InstallPath(pkg *types.Package) string {
	return m.GetInstaller(pkg.Type).InstallPath(pkg)
}
