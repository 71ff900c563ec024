package config

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/logging"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/dlclark/regexp2"
	"github.com/knadh/koanf/v2"
)

// Resolved is the merged configuration view for one run. It is built once
// and never re-reads the host configuration afterwards.
type Resolved struct {
	componentDir      string
	vendorTmpDir      string
	useBaseVendorDir  bool
	deleting          bool
	fullyBuilt        bool
	fileFilterPattern string
}

// Resolve merges host configuration, project metadata and defaults.
// installTmpDir is the installer's own tmp directory, used as the
// extraction root unless the host asks for its base vendor directory.
func Resolve(k *koanf.Koanf, extra types.Metadata, installTmpDir string) *Resolved {
	r := &Resolved{
		componentDir:      resolveComponentDir(k, extra),
		useBaseVendorDir:  k.Bool(KeyUseBaseVendorDir),
		deleting:          true,
		fullyBuilt:        false,
		fileFilterPattern: DefaultFileRegex,
	}

	if r.useBaseVendorDir {
		r.vendorTmpDir = strings.TrimRight(k.String(KeyVendorDir), "/")
	} else {
		r.vendorTmpDir = strings.TrimRight(installTmpDir, "/")
	}

	if k.Exists(KeyRemoveTmp) {
		r.deleting = k.Bool(KeyRemoveTmp)
	}
	if k.Exists(KeyFullBuild) {
		r.fullyBuilt = k.Bool(KeyFullBuild)
	}
	if k.Exists(KeyFileRegex) {
		r.fileFilterPattern = k.String(KeyFileRegex)
	}

	logger := logging.GetLogger("config")
	logger.Debug().
		Str("componentDir", r.componentDir).
		Str("vendorTmpDir", r.vendorTmpDir).
		Bool("deleting", r.deleting).
		Bool("fullyBuilt", r.fullyBuilt).
		Msg("Configuration resolved")

	return r
}

// resolveComponentDir applies, in order: the default, the explicit host key,
// and the web directory convention. The convention wins over the key.
func resolveComponentDir(k *koanf.Koanf, extra types.Metadata) string {
	dir := DefaultComponentDir
	if k.Exists(KeyComponentDir) {
		dir = k.String(KeyComponentDir)
	}
	if webDir, ok := extra.String(ExtraSymfonyWebDir); ok {
		dir = filepath.Join(webDir, ComponentsDirName)
	}
	return dir
}

// ComponentDir returns the directory components are relocated into
func (r *Resolved) ComponentDir() string {
	return r.componentDir
}

// VendorTmpDir returns the intermediate extraction root
func (r *Resolved) VendorTmpDir() string {
	return r.vendorTmpDir
}

// UsesBaseVendorDir reports whether the extraction root is the host's own
// vendor directory
func (r *Resolved) UsesBaseVendorDir() bool {
	return r.useBaseVendorDir
}

// IsDeleting reports whether the tmp directory is removed after a build
func (r *Resolved) IsDeleting() bool {
	return r.deleting
}

// IsFullyBuilt reports whether the bundling stages extend the default plan
func (r *Resolved) IsFullyBuilt() bool {
	return r.fullyBuilt
}

// FileFilterPattern returns the raw pattern selecting minified assets
func (r *Resolved) FileFilterPattern() string {
	return r.fileFilterPattern
}

// FileFilter compiles the file filter pattern. The pattern may be given bare
// or wrapped in delimiters with trailing flags, as in "#\.min\.js$#i".
func (r *Resolved) FileFilter() (*regexp2.Regexp, error) {
	return CompileFilter(r.fileFilterPattern)
}

// CompileFilter compiles a file filter pattern. regexp2 is used because the
// default pattern relies on negative lookahead.
func CompileFilter(pattern string) (*regexp2.Regexp, error) {
	body, opts := splitDelimited(pattern)
	re, err := regexp2.Compile(body, opts)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid %s", KeyFileRegex).
			WithDetail("pattern", pattern)
	}
	return re, nil
}

func splitDelimited(pattern string) (string, regexp2.RegexOptions) {
	if len(pattern) < 2 || !strings.ContainsRune("#/~!%@|", rune(pattern[0])) {
		return pattern, regexp2.None
	}
	delim := pattern[0]
	end := strings.LastIndexByte(pattern, delim)
	if end <= 0 {
		return pattern, regexp2.None
	}

	opts := regexp2.None
	for _, flag := range pattern[end+1:] {
		switch flag {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'x':
			opts |= regexp2.IgnorePatternWhitespace
		default:
			// not a flag list, so the leading character was not a delimiter
			return pattern, regexp2.None
		}
	}
	return pattern[1:end], opts
}

// Resolver hands out a single Resolved view, built on first access.
type Resolver struct {
	once     sync.Once
	build    func() *Resolved
	resolved *Resolved
}

// NewResolver returns a Resolver that resolves k and extra lazily. The
// configuration is captured on first Get; later changes to k are not seen.
func NewResolver(k *koanf.Koanf, extra types.Metadata, installTmpDir string) *Resolver {
	return &Resolver{
		build: func() *Resolved {
			return Resolve(k, extra, installTmpDir)
		},
	}
}

// Get returns the resolved configuration, building it on the first call.
func (r *Resolver) Get() *Resolved {
	r.once.Do(func() {
		r.resolved = r.build()
	})
	return r.resolved
}
