package config

// Host configuration keys.
const (
	KeyVendorDir        = "vendor-dir"
	KeyComponentDir     = "component-dir"
	KeyUseBaseVendorDir = "component-use-base-vendor-dir"
	KeyRemoveTmp        = "component-remove-tmp"
	KeyFullBuild        = "component-full-build"
	KeyFileRegex        = "component-file-regex"
	KeyProcesses        = "component-processes"
)

// HostKeys lists every host configuration key compinst reads
var HostKeys = []string{
	KeyVendorDir,
	KeyComponentDir,
	KeyUseBaseVendorDir,
	KeyRemoveTmp,
	KeyFullBuild,
	KeyFileRegex,
	KeyProcesses,
}

// Project metadata keys read from the root package's extra section.
const (
	// ExtraSymfonyWebDir names the public web directory of a Symfony-style
	// project. When set, components always live under it.
	ExtraSymfonyWebDir = "symfony-web-dir"
)

// Defaults applied when a key is absent.
const (
	DefaultComponentDir = "components"
	DefaultFileRegex    = `^((?!(slim|map)).)*\.min\.(js|css)$`

	// ComponentsDirName is appended to the web directory
	ComponentsDirName = "components"

	// EnvPrefix marks environment variables that map onto host keys:
	// COMPINST_COMPONENT_DIR sets component-dir
	EnvPrefix = "COMPINST_"
)
