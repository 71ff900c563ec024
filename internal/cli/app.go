package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/compinst/pkg/config"
	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/filesystem"
	"github.com/arthur-debert/compinst/pkg/host"
	"github.com/arthur-debert/compinst/pkg/installer"
	"github.com/arthur-debert/compinst/pkg/manifest"
	"github.com/arthur-debert/compinst/pkg/paths"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/arthur-debert/compinst/pkg/ui"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags of the root command
type globalOptions struct {
	verbosity    int
	project      string
	configFile   string
	noColor      bool
	outputFormat string
	fullBuild    bool
	componentDir string
}

// app is everything a command needs, loaded from the project manifest
type app struct {
	paths     paths.Paths
	config    *koanf.Koanf
	console   *ui.Console
	host      *host.Host
	installer *installer.Installer
}

// overrides turns the flags that were set into host configuration
func (o *globalOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	out := map[string]interface{}{}
	if cmd.Flags().Changed("full-build") {
		out[config.KeyFullBuild] = o.fullBuild
	}
	if o.componentDir != "" {
		out[config.KeyComponentDir] = o.componentDir
	}
	return out
}

// format resolves --format, with --no-color forcing text. An unknown
// format was already rejected by validate.
func (o *globalOptions) format() ui.Format {
	if o.noColor {
		return ui.FormatText
	}
	f, err := ui.ParseFormat(o.outputFormat)
	if err != nil {
		return ui.FormatAuto
	}
	return f
}

func (o *globalOptions) validate() error {
	if _, err := ui.ParseFormat(o.outputFormat); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	return nil
}

// load reads the manifest and configuration and builds the host
func (o *globalOptions) load(cmd *cobra.Command) (*app, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	p, err := paths.New(o.project)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}
	if p.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, p.ProjectRoot())
	}

	manifestPath, ok := p.ManifestPath()
	if !ok {
		return nil, errors.Newf(errors.ErrManifestNotFound, MsgErrNoManifest,
			p.ProjectRoot(), strings.Join(paths.ManifestNames, ", "))
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	k, err := config.Load(config.LoadOptions{
		Manifest:  types.Metadata(m.Config),
		File:      o.configFile,
		Overrides: o.overrides(cmd),
	})
	if err != nil {
		return nil, err
	}

	console := ui.NewConsole(cmd.OutOrStdout(), o.format())
	h := host.New(host.Options{
		Root:     m.Root(p.ProjectRoot()),
		Packages: m.PackageList(p.ProjectRoot()),
		Config:   k,
		FS:       filesystem.NewOS(),
		IO:       console,
	})

	return &app{
		paths:     p,
		config:    k,
		console:   console,
		host:      h,
		installer: installer.New(h, installer.Options{TmpDir: p.TmpDir()}),
	}, nil
}

// packages returns the named manifest packages, or every package when
// names is empty
func (a *app) packages(names []string) ([]*types.Package, error) {
	if len(names) == 0 {
		return a.host.Packages, nil
	}
	out := make([]*types.Package, 0, len(names))
	for _, name := range names {
		pkg, ok := a.host.FindPackage(name)
		if !ok {
			return nil, errors.Newf(errors.ErrPackageNotFound, MsgErrUnknownPkg, name)
		}
		out = append(out, pkg)
	}
	return out, nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}
