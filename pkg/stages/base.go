package stages

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/filesystem"
	"github.com/arthur-debert/compinst/pkg/logging"
	"github.com/arthur-debert/compinst/pkg/pipeline"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"
)

// base carries what every built-in stage is constructed with
type base struct {
	ctx     *pipeline.Context
	io      types.IO
	options types.Metadata
	fs      types.FS
	logger  zerolog.Logger
}

func newBase(id string, ctx *pipeline.Context, io types.IO, options types.Metadata) base {
	return base{
		ctx:     ctx,
		io:      io,
		options: options,
		fs:      ctx.Host.FS,
		logger:  logging.GetLogger("stages").With().Str("stage", id).Logger(),
	}
}

// decodeOptions decodes the stage's options bag into out
func (b *base) decodeOptions(out interface{}) error {
	if len(b.options) == 0 {
		return nil
	}
	if err := decode(map[string]interface{}(b.options), out); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid stage options")
	}
	return nil
}

// expand returns the files under dir selected by pattern, relative to dir.
// A pattern naming a file selects it, one naming a directory selects every
// file below it, and anything with glob metacharacters is matched against
// each file's relative path.
func expand(fsys types.FS, dir, pattern string) ([]string, error) {
	raw := pattern
	pattern = filepath.Clean(strings.TrimPrefix(pattern, "/"))
	if escapes(pattern) {
		return nil, errors.Newf(errors.ErrInvalidInput, "pattern %q points outside the package", raw).
			WithDetail("pattern", raw)
	}

	if !strings.ContainsAny(pattern, "*?[") {
		info, err := fsys.Stat(filepath.Join(dir, pattern))
		if err != nil {
			return nil, nil
		}
		if !info.IsDir() {
			return []string{pattern}, nil
		}
		files, err := filesystem.ListFiles(fsys, filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		for i, f := range files {
			files[i] = filepath.Join(pattern, f)
		}
		return files, nil
	}

	all, err := filesystem.ListFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, rel := range all {
		ok, err := filepath.Match(pattern, rel)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid pattern %q", pattern)
		}
		if ok {
			matched = append(matched, rel)
		}
	}
	return matched, nil
}

// escapes reports whether a cleaned relative path leaves its base directory
func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel)
}

// within reports whether path is dir or below it
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && !escapes(rel)
}

// expandAll expands every pattern, dropping duplicates and keeping the
// order of first appearance
func expandAll(fsys types.FS, dir string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		files, err := expand(fsys, dir, pattern)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out, nil
}

// filtered returns the files under dir with extension ext whose base name
// matches filter, relative to dir
func filtered(fsys types.FS, dir, ext string, filter *regexp2.Regexp) ([]string, error) {
	all, err := filesystem.ListFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, rel := range all {
		if filepath.Ext(rel) != ext {
			continue
		}
		ok, err := filter.MatchString(filepath.Base(rel))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "file filter failed on %s", rel)
		}
		if ok {
			out = append(out, rel)
		}
	}
	return out, nil
}

// assetFiles returns a component's files for one asset kind: the declared
// patterns when there are any, otherwise the files of that extension
// accepted by the file filter. Paths are relative to the component's
// target directory.
func assetFiles(fsys types.FS, c *Component, declared []string, ext string, filter *regexp2.Regexp) ([]string, error) {
	if len(declared) > 0 {
		return expandAll(fsys, c.TargetDir, declared)
	}
	return filtered(fsys, c.TargetDir, ext, filter)
}
