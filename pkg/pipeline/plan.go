package pipeline

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/compinst/pkg/config"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/knadh/koanf/v2"
)

// Built-in stage identifiers
const (
	StageCopy       = "copy"
	StageRequireJS  = "require-js"
	StageRequireCSS = "require-css"
	StageBuildJS    = "build-js"
	StageCompress   = "compress"
)

// Keys accepted in a structured plan entry
const (
	specKeyStage   = "stage"
	specKeyClass   = "class"
	specKeyOptions = "options"
)

// DefaultPlan returns the plan used when the host declares none: copy, and
// when fullyBuilt the bundling stages after it.
func DefaultPlan(fullyBuilt bool) []types.StageSpec {
	plan := []types.StageSpec{{ID: StageCopy}}
	if fullyBuilt {
		plan = append(plan,
			types.StageSpec{ID: StageRequireJS},
			types.StageSpec{ID: StageRequireCSS},
			types.StageSpec{ID: StageBuildJS},
		)
	}
	return plan
}

// BuildPlan returns the host's explicit plan when component-processes is set,
// and the default plan otherwise. The second value reports whether the plan
// came from the host. An explicit empty list yields an empty plan.
func BuildPlan(k *koanf.Koanf, fullyBuilt bool) ([]types.StageSpec, bool) {
	if k != nil && k.Exists(config.KeyProcesses) {
		return ParseSpecs(k.Get(config.KeyProcesses)), true
	}
	return DefaultPlan(fullyBuilt), false
}

// ParseSpecs converts a raw plan value into StageSpecs. Entries may be a bare
// identifier or a bag with "stage" (or "class") and an optional "options"
// bag. A single string is split on commas, which is how a list arrives from
// the environment. Entries of any other shape keep their printed form as
// identifier so they surface as unknown stages instead of vanishing.
func ParseSpecs(raw interface{}) []types.StageSpec {
	var entries []interface{}
	switch v := raw.(type) {
	case nil:
		return []types.StageSpec{}
	case string:
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				entries = append(entries, part)
			}
		}
	case []string:
		for _, s := range v {
			entries = append(entries, s)
		}
	case []interface{}:
		entries = v
	default:
		entries = []interface{}{v}
	}

	specs := make([]types.StageSpec, 0, len(entries))
	for _, entry := range entries {
		specs = append(specs, parseSpec(entry))
	}
	return specs
}

func parseSpec(entry interface{}) types.StageSpec {
	if id, ok := entry.(string); ok {
		return types.StageSpec{ID: id, Options: types.Metadata{}}
	}

	bag, ok := types.AsMetadata(entry)
	if !ok {
		return types.StageSpec{ID: fmt.Sprint(entry), Options: types.Metadata{}}
	}

	id, ok := bag.String(specKeyStage)
	if !ok {
		id, ok = bag.String(specKeyClass)
	}
	if !ok {
		return types.StageSpec{ID: fmt.Sprint(entry), Options: types.Metadata{}}
	}

	options, ok := bag.Bag(specKeyOptions)
	if !ok {
		options = types.Metadata{}
	}
	return types.StageSpec{ID: id, Options: options}
}
