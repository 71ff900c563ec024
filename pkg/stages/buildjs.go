package stages

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/pipeline"
	"github.com/arthur-debert/compinst/pkg/types"
)

// Files of the build-js stage, relative to the component directory
const (
	BuildProfileFile = "build.js"
	BuiltFile        = "require-built.js"
	defaultRJS       = "require/r.js"
	defaultNode      = "node"
)

// lookPath and runCommand are replaced in tests
var (
	lookPath   = exec.LookPath
	runCommand = func(dir, name string, args ...string) ([]byte, error) {
		cmd := exec.Command(name, args...)
		cmd.Dir = dir
		return cmd.CombinedOutput()
	}
)

// BuildJSOptions are the build-js stage options
type BuildJSOptions struct {
	// Node is the node binary, looked up in PATH when not absolute
	Node string `mapstructure:"node"`

	// RJS is the r.js optimizer, relative to the component directory
	RJS string `mapstructure:"rjs"`
}

// BuildJSStage compiles require-built.js with the r.js optimizer
type BuildJSStage struct {
	base
	opts BuildJSOptions
	node string
	rjs  string
}

// NewBuildJSStage is the build-js stage factory
func NewBuildJSStage(ctx *pipeline.Context, io types.IO, options types.Metadata) types.Stage {
	return &BuildJSStage{base: newBase(pipeline.StageBuildJS, ctx, io, options)}
}

// Init locates node and r.js. Either one missing fails the stage with
// TOOL_MISSING.
func (s *BuildJSStage) Init() error {
	s.opts = BuildJSOptions{Node: defaultNode, RJS: defaultRJS}
	if err := s.decodeOptions(&s.opts); err != nil {
		return err
	}

	node, err := lookPath(s.opts.Node)
	if err != nil {
		return errors.Wrapf(err, errors.ErrToolMissing, "%s is not installed", s.opts.Node).
			WithDetail("tool", s.opts.Node)
	}
	s.node = node

	s.rjs = s.opts.RJS
	if !filepath.IsAbs(s.rjs) {
		s.rjs = filepath.Join(componentRoot(s.ctx), s.rjs)
	}
	if _, err := s.fs.Stat(s.rjs); err != nil {
		return errors.Wrapf(err, errors.ErrToolMissing, "r.js optimizer not found at %s", s.rjs).
			WithDetail("tool", "r.js")
	}
	return nil
}

// buildProfile is the r.js build profile
type buildProfile struct {
	BaseURL        string   `json:"baseUrl"`
	MainConfigFile string   `json:"mainConfigFile"`
	Name           string   `json:"name"`
	Include        []string `json:"include"`
	Out            string   `json:"out"`
}

// Process writes build.js and runs the optimizer from the component
// directory. Optimizer output is shown on failure.
func (s *BuildJSStage) Process() error {
	root := componentRoot(s.ctx)

	profile := buildProfile{
		BaseURL:        ".",
		MainConfigFile: RequireConfigFile,
		Name:           strings.TrimSuffix(RequireConfigFile, ".js"),
		Include:        []string{"require"},
		Out:            BuiltFile,
	}
	for _, c := range Discover(s.ctx, s.io) {
		profile.Include = append(profile.Include, c.Name)
	}

	data, err := json.MarshalIndent(profile, "", "    ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode build profile")
	}
	content := "(" + string(data) + ")\n"
	profilePath := filepath.Join(root, BuildProfileFile)
	if err := s.fs.WriteFile(profilePath, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", profilePath)
	}

	s.logger.Debug().Str("node", s.node).Str("rjs", s.rjs).Msg("Running r.js")
	output, err := runCommand(root, s.node, s.rjs, "-o", BuildProfileFile)
	if err != nil {
		s.io.Warning(fmt.Sprintf("An error occurred while compiling %s: %v", BuiltFile, err))
		if text := strings.TrimSpace(string(output)); text != "" {
			s.io.Write(text)
		}
		return errors.Wrapf(err, errors.ErrStageProcess, "r.js failed")
	}

	s.io.Write("Compiled " + filepath.Join(s.ctx.Config.ComponentDir(), BuiltFile))
	return nil
}
