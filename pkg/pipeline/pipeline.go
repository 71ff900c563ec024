package pipeline

import (
	"fmt"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/logging"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/rs/zerolog"
)

// Banner is printed once at the start of every run
const Banner = "Compiling component files"

// Outcome is what happened to one StageSpec
type Outcome string

const (
	// OutcomeSkipped means the identifier was not registered
	OutcomeSkipped Outcome = "skipped"

	// OutcomeInitFailed means Init failed and the run halted there
	OutcomeInitFailed Outcome = "init-failed"

	// OutcomeProcessed means Init succeeded and Process ran
	OutcomeProcessed Outcome = "processed"
)

// StageRun records one StageSpec's execution
type StageRun struct {
	Spec    types.StageSpec
	Outcome Outcome

	// Err is the Init error for init-failed stages and the Process error,
	// if any, for processed stages
	Err error
}

// Result summarizes a pipeline run
type Result struct {
	Runs []StageRun

	// Halted is true when a stage's Init failed
	Halted bool
}

// Processed returns the identifiers of the stages whose Process ran
func (r *Result) Processed() []string {
	var ids []string
	for _, run := range r.Runs {
		if run.Outcome == OutcomeProcessed {
			ids = append(ids, run.Spec.ID)
		}
	}
	return ids
}

// Pipeline executes plans against a stage registry
type Pipeline struct {
	registry *Registry
	io       types.IO
	logger   zerolog.Logger
}

// New creates a pipeline reporting to io
func New(registry *Registry, io types.IO) *Pipeline {
	return &Pipeline{
		registry: registry,
		io:       io,
		logger:   logging.GetLogger("pipeline"),
	}
}

// Run executes plan in order. It never returns an error: a missing stage is
// skipped with a warning and an Init failure halts the run with a warning.
func (p *Pipeline) Run(ctx *Context, plan []types.StageSpec) *Result {
	p.io.Info(Banner)
	result := &Result{Runs: make([]StageRun, 0, len(plan))}

	for _, spec := range plan {
		options := spec.Options
		if options == nil {
			options = types.Metadata{}
		}

		factory, ok := p.registry.Lookup(spec.ID)
		if !ok {
			p.logger.Warn().Str("stage", spec.ID).Msg("Stage not registered")
			p.io.Warning(fmt.Sprintf("Stage '%s' not found, skipping it", spec.ID))
			result.Runs = append(result.Runs, StageRun{
				Spec:    spec,
				Outcome: OutcomeSkipped,
				Err:     errors.Newf(errors.ErrStageNotFound, "stage %q is not registered", spec.ID),
			})
			continue
		}

		stage := factory(ctx, p.io, options)
		if err := stage.Init(); err != nil {
			p.logger.Error().Err(err).Str("stage", spec.ID).Msg("Stage initialization failed")
			p.io.Warning(fmt.Sprintf("An error occurred while initializing the '%s' stage.", spec.ID))
			result.Runs = append(result.Runs, StageRun{
				Spec:    spec,
				Outcome: OutcomeInitFailed,
				Err:     errors.Wrapf(err, errors.ErrStageInit, "stage %q failed to initialize", spec.ID),
			})
			result.Halted = true
			break
		}

		done := logging.LogOperationStart(p.logger, "stage "+spec.ID)
		err := stage.Process()
		done()
		if err != nil {
			p.logger.Debug().Err(err).Str("stage", spec.ID).Msg("Stage reported an error")
		}
		result.Runs = append(result.Runs, StageRun{Spec: spec, Outcome: OutcomeProcessed, Err: err})
	}

	return result
}
