package stages

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/filesystem"
	"github.com/arthur-debert/compinst/pkg/pipeline"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/dlclark/regexp2"
)

// RequireCSSFile is the concatenated stylesheet in the component directory
const RequireCSSFile = "require.css"

var cssURL = regexp.MustCompile(`url\(\s*(['"]?)([^'")]+)(['"]?)\s*\)`)

// RequireCSSStage concatenates every component's styles
type RequireCSSStage struct {
	base
	filter *regexp2.Regexp
}

// NewRequireCSSStage is the require-css stage factory
func NewRequireCSSStage(ctx *pipeline.Context, io types.IO, options types.Metadata) types.Stage {
	return &RequireCSSStage{base: newBase(pipeline.StageRequireCSS, ctx, io, options)}
}

// Init compiles the file filter
func (s *RequireCSSStage) Init() error {
	filter, err := s.ctx.Config.FileFilter()
	if err != nil {
		return err
	}
	s.filter = filter
	return filesystem.EnsureDir(s.fs, componentRoot(s.ctx))
}

// Process writes require.css. Relative url() references are rewritten to
// resolve from the component directory.
func (s *RequireCSSStage) Process() error {
	var b strings.Builder
	count := 0

	for _, c := range Discover(s.ctx, s.io) {
		styles, err := assetFiles(s.fs, c, c.Meta.Styles, ".css", s.filter)
		if err != nil {
			s.io.Warning(fmt.Sprintf("Failed to collect styles of %s: %v", c.Package.PrettyName, err))
			return err
		}
		for _, rel := range styles {
			data, err := s.fs.ReadFile(filepath.Join(c.TargetDir, rel))
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", rel)
			}
			prefix := path.Join(c.Name, path.Dir(filepath.ToSlash(rel)))
			b.WriteString(RewriteURLs(string(data), prefix))
			b.WriteString("\n")
			count++
		}
	}

	target := filepath.Join(componentRoot(s.ctx), RequireCSSFile)
	if err := s.fs.WriteFile(target, []byte(b.String()), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target)
	}
	s.logger.Info().Int("stylesheets", count).Msg("Wrote require.css")
	return nil
}

// RewriteURLs prefixes every relative url() reference in css with base.
// Absolute paths, protocol URLs, data URIs and fragments are left alone.
func RewriteURLs(css, base string) string {
	return cssURL.ReplaceAllStringFunc(css, func(match string) string {
		parts := cssURL.FindStringSubmatch(match)
		open, ref, closing := parts[1], strings.TrimSpace(parts[2]), parts[3]
		if !isRelativeURL(ref) {
			return match
		}
		return "url(" + open + path.Join(base, ref) + closing + ")"
	})
}

func isRelativeURL(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "#") {
		return false
	}
	if strings.HasPrefix(ref, "data:") {
		return false
	}
	// scheme: "http:", "https:", "//cdn"
	if i := strings.Index(ref, ":"); i > 0 && !strings.ContainsAny(ref[:i], "/.?") {
		return false
	}
	return true
}
