package cli

import (
	"fmt"
	"os"

	"github.com/arthur-debert/compinst/internal/version"
	"github.com/arthur-debert/compinst/pkg/config"
	"github.com/arthur-debert/compinst/pkg/logging"
	"github.com/arthur-debert/compinst/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// Execute runs the root command and returns the process exit code
func Execute() int {
	return exitCode(NewRootCmd().Execute())
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "compinst",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.Options{Verbosity: opts.verbosity, NoColor: opts.noColor})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&opts.project, "project", "", MsgFlagProject)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	flags.BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)
	flags.StringVar(&opts.outputFormat, "format", "auto", MsgFlagFormat)
	flags.BoolVar(&opts.fullBuild, "full-build", false, MsgFlagFullBuild)
	flags.StringVar(&opts.componentDir, "component-dir", "", MsgFlagComponentDir)

	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newRemoveCmd(opts))
	rootCmd.AddCommand(newProcessCmd(opts))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newPathCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newManCmd())

	installTopics(rootCmd, opts)

	return rootCmd
}

func newInstallCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			log.Info().Str("project", a.paths.ProjectRoot()).Int("packages", len(a.host.Packages)).Msg("Installing")

			if err := a.host.InstallAll(); err != nil {
				return err
			}
			a.console.Write(fmt.Sprintf(MsgInstalledFormat, len(a.host.Packages)))
			reportRun(a)
			return nil
		},
	}
}

func newRemoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <package>...",
		Short: MsgRemoveShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := a.host.Remove(args...); err != nil {
				return err
			}
			for _, name := range args {
				a.console.Write(fmt.Sprintf(MsgRemovedFormat, name))
			}
			reportRun(a)
			return nil
		},
	}
}

func newProcessCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: MsgProcessShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if _, err := a.installer.Process(a.console); err != nil {
				return err
			}
			reportRun(a)
			return nil
		},
	}
}

// reportRun prints the outcome of the last pipeline run
func reportRun(a *app) {
	result := a.installer.LastResult
	if result == nil {
		return
	}
	if result.Halted {
		a.console.Warning(MsgRunHalted)
		return
	}
	a.console.Muted(fmt.Sprintf(MsgRunSummaryFormat, len(result.Processed())))
}

func newPlanCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: MsgPlanShort,
		Long:  MsgPlanLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}

			plan, explicit := a.installer.Plan()
			source := MsgPlanSourceDefault
			if explicit {
				source = MsgPlanSourceConfig
			}
			a.console.Info(source)

			rows := make([]ui.PlanRow, 0, len(plan))
			for _, spec := range plan {
				status := "registered"
				if _, ok := a.installer.Stages().Lookup(spec.ID); !ok {
					status = "missing"
				}
				rows = append(rows, ui.PlanRow{Spec: spec, Status: status})
			}
			return ui.RenderPlan(cmd.OutOrStdout(), rows, a.console.Format())
		},
	}
}

func newPathCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path [package]...",
		Short: MsgPathShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			pkgs, err := a.packages(args)
			if err != nil {
				return err
			}

			resolver := a.installer.Resolver()
			for _, pkg := range pkgs {
				a.console.Write(fmt.Sprintf("%s\t%s", pkg.PrettyName, resolver.ComponentPath(pkg)))
			}
			return nil
		},
	}
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var sample bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sample {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateSampleContent())
				return err
			}

			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			data, err := config.Dump(a.config)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, MsgFlagSample)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "compinst version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "man [dir]",
		Short: MsgManShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   "COMPINST",
				Section: "1",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWrittenFormat+"\n", dir)
			return nil
		},
	}
}
