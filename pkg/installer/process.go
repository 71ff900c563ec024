package installer

import (
	"github.com/arthur-debert/compinst/pkg/filesystem"
	"github.com/arthur-debert/compinst/pkg/host"
	"github.com/arthur-debert/compinst/pkg/pipeline"
	"github.com/arthur-debert/compinst/pkg/types"
)

func (i *Installer) postAutoloadDump(event *host.Event) error {
	_, err := i.Process(event.IO)
	return err
}

// Plan returns the stage plan for this run and whether the host declared it
func (i *Installer) Plan() ([]types.StageSpec, bool) {
	return pipeline.BuildPlan(i.host.Config, i.Config().IsFullyBuilt())
}

// Process runs the stage plan and then cleans up the vendor tmp dir. The
// pipeline itself never fails; the error reports a failed cleanup.
func (i *Installer) Process(io types.IO) (*pipeline.Result, error) {
	plan, explicit := i.Plan()
	i.logger.Info().Int("stages", len(plan)).Bool("explicit", explicit).Msg("Running stage plan")

	ctx := &pipeline.Context{
		Host:     i.host,
		Config:   i.Config(),
		Resolver: i.Resolver(),
	}
	result := pipeline.New(i.stages, io).Run(ctx, plan)
	i.LastResult = result

	if result.Halted {
		return result, nil
	}
	return result, i.cleanup()
}

// cleanup removes the vendor tmp dir when the host asks for it. The host's
// own vendor directory is never removed.
func (i *Installer) cleanup() error {
	cfg := i.Config()
	if !cfg.IsDeleting() || cfg.UsesBaseVendorDir() || cfg.VendorTmpDir() == "" {
		return nil
	}
	path := i.host.ProjectPath(cfg.VendorTmpDir())
	i.logger.Debug().Str("path", path).Msg("Removing vendor tmp dir")
	return filesystem.RemovePath(i.host.FS, path)
}
