package stages

import (
	"github.com/arthur-debert/compinst/pkg/pipeline"
)

// Builtins maps the built-in stage identifiers to their factories
var Builtins = map[string]pipeline.Factory{
	pipeline.StageCopy:       NewCopyStage,
	pipeline.StageRequireJS:  NewRequireJSStage,
	pipeline.StageRequireCSS: NewRequireCSSStage,
	pipeline.StageBuildJS:    NewBuildJSStage,
	pipeline.StageCompress:   NewCompressStage,
}

// RegisterBuiltins adds the built-in stages to reg
func RegisterBuiltins(reg *pipeline.Registry) {
	for id, factory := range Builtins {
		reg.MustRegister(id, factory)
	}
}

// NewRegistry returns a stage registry holding the built-in stages
func NewRegistry() *pipeline.Registry {
	reg := pipeline.NewRegistry()
	RegisterBuiltins(reg)
	return reg
}
