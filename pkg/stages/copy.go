package stages

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/filesystem"
	"github.com/arthur-debert/compinst/pkg/pipeline"
	"github.com/arthur-debert/compinst/pkg/types"
)

// CopyStage relocates component assets from where each package was
// extracted into <componentDir>/<name>
type CopyStage struct {
	base
}

// NewCopyStage is the copy stage factory
func NewCopyStage(ctx *pipeline.Context, io types.IO, options types.Metadata) types.Stage {
	return &CopyStage{base: newBase(pipeline.StageCopy, ctx, io, options)}
}

// Init makes sure the component directory exists
func (s *CopyStage) Init() error {
	return filesystem.EnsureDir(s.fs, componentRoot(s.ctx))
}

// Process copies every component. A component that declares no asset lists
// has its whole package tree copied.
func (s *CopyStage) Process() error {
	var firstErr error
	for _, c := range Discover(s.ctx, s.io) {
		if err := s.copyComponent(c); err != nil {
			s.io.Warning(fmt.Sprintf("Failed to copy %s: %v", c.Package.PrettyName, err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *CopyStage) copyComponent(c *Component) error {
	exists, err := filesystem.Exists(s.fs, c.SourceDir)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Debug().Str("package", c.Package.PrettyName).Str("path", c.SourceDir).Msg("Nothing extracted, skipping")
		return nil
	}

	patterns := c.Meta.Assets()
	if len(patterns) == 0 {
		s.logger.Debug().Str("package", c.Package.PrettyName).Msg("Copying whole package")
		return filesystem.CopyTree(s.fs, c.SourceDir, c.TargetDir)
	}

	files, err := expandAll(s.fs, c.SourceDir, patterns)
	if err != nil {
		return err
	}
	for _, rel := range files {
		src, dst := filepath.Join(c.SourceDir, rel), filepath.Join(c.TargetDir, rel)
		if !within(c.SourceDir, src) || !within(c.TargetDir, dst) {
			return errors.Newf(errors.ErrInvalidInput, "asset %q points outside the component", rel).
				WithDetail("path", rel)
		}
		if err := filesystem.CopyFile(s.fs, src, dst); err != nil {
			return err
		}
	}
	s.logger.Debug().Str("package", c.Package.PrettyName).Int("files", len(files)).Msg("Copied component")
	return nil
}
