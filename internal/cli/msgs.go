package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "Install front-end component packages"
	MsgInstallShort = "Install all packages and run the stage pipeline"
	MsgRemoveShort  = "Remove packages and their component directories"
	MsgProcessShort = "Run the stage pipeline on installed packages"
	MsgPlanShort    = "Show the stage plan"
	MsgPathShort    = "Show where packages' components are installed"
	MsgConfigShort  = "Print the effective configuration"
	MsgVersionShort = "Print version information"
	MsgManShort     = "Generate man pages"

	// Status messages
	MsgInstalledFormat   = "Installed %d package(s)"
	MsgRemovedFormat     = "Removed %s"
	MsgPlanSourceDefault = "Default plan"
	MsgPlanSourceConfig  = "Plan from component-processes"
	MsgRunSummaryFormat  = "%d stage(s) processed"
	MsgRunHalted         = "Pipeline halted"
	MsgManWrittenFormat  = "Man pages written to %s"

	// Error messages
	MsgErrInitPaths  = "failed to initialize paths: %w"
	MsgErrNoManifest = "no manifest found in %s (expected one of %s)"
	MsgErrUnknownPkg = "package %s is not in the manifest"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagProject      = "Project root (default: nearest directory with a manifest)"
	MsgFlagConfig       = "Additional TOML or YAML configuration file"
	MsgFlagNoColor      = "Disable colored output"
	MsgFlagFormat       = "Output format: auto, term or text"
	MsgFlagFullBuild    = "Build require.js, require.css and require-built.js"
	MsgFlagComponentDir = "Directory components are installed into"
	MsgFlagSample       = "Print a documented sample configuration instead"

	// Fallback warning when no manifest was found walking up from cwd
	MsgFallbackWarning = "No manifest found, using the current directory: %s\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)
)
