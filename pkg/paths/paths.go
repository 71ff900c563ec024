package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/compinst/pkg/errors"
)

// Environment variable names
const (
	// EnvProjectRoot pins the project root instead of searching for a manifest
	EnvProjectRoot = "COMPINST_PROJECT_ROOT"

	// EnvHome overrides the installer's own data directory
	EnvHome = "COMPINST_HOME"
)

// Fixed names. These are not user-configurable; user-facing locations
// belong in pkg/config.
const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "compinst"

	// TmpDirName is the temporary extraction directory under the install root
	TmpDirName = "tmp"

	// LogFileName is the name of the log file
	LogFileName = "compinst.log"
)

// ManifestNames lists the accepted project manifest file names in lookup order.
var ManifestNames = []string{"compinst.toml", "compinst.yaml", "compinst.yml", "compinst.json", "compinst.jsonc"}

// Paths provides centralized path management for compinst
type Paths interface {
	ProjectRoot() string
	UsedFallback() bool
	InstallRoot() string
	TmpDir() string
	StateDir() string
	LogFilePath() string
	ManifestPath() (string, bool)
}

type paths struct {
	projectRoot  string
	installRoot  string
	stateDir     string
	usedFallback bool
}

// New creates a new Paths instance with the given project root.
// If projectRoot is empty, it is taken from COMPINST_PROJECT_ROOT, then from
// the nearest ancestor of the working directory holding a manifest, then
// from the working directory itself.
func New(projectRoot string) (Paths, error) {
	p := &paths{}

	if projectRoot == "" {
		root, usedFallback, err := findProjectRoot()
		if err != nil {
			return nil, err
		}
		p.projectRoot = root
		p.usedFallback = usedFallback
	} else {
		p.projectRoot = expandHome(projectRoot)
	}

	absRoot, err := filepath.Abs(p.projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for project root")
	}
	p.projectRoot = absRoot

	if home := os.Getenv(EnvHome); home != "" {
		p.installRoot = expandHome(home)
	} else {
		p.installRoot = filepath.Join(xdg.DataHome, AppDirName)
	}

	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		p.stateDir = filepath.Join(stateHome, AppDirName)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p, nil
}

// findProjectRoot resolves the project root. The returned bool reports
// whether the working directory was used as a fallback.
func findProjectRoot() (string, bool, error) {
	if root := os.Getenv(EnvProjectRoot); root != "" {
		return expandHome(root), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	for dir := cwd; ; dir = filepath.Dir(dir) {
		if _, ok := findManifest(dir); ok {
			return dir, false, nil
		}
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}

	return cwd, true, nil
}

func findManifest(dir string) (string, bool) {
	for _, name := range ManifestNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ProjectRoot returns the root directory of the project being installed
func (p *paths) ProjectRoot() string {
	return p.projectRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// InstallRoot returns the installer's own data directory
func (p *paths) InstallRoot() string {
	return p.installRoot
}

// TmpDir returns the default temporary extraction directory, a sibling of
// the installer's own files
func (p *paths) TmpDir() string {
	return filepath.Join(p.installRoot, TmpDirName)
}

// StateDir returns the XDG state directory for compinst
func (p *paths) StateDir() string {
	return p.stateDir
}

// LogFilePath returns the path to the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// ManifestPath returns the project manifest path, if one exists
func (p *paths) ManifestPath() (string, bool) {
	return findManifest(p.projectRoot)
}
