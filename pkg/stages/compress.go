package stages

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/filesystem"
	"github.com/arthur-debert/compinst/pkg/pipeline"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Supported precompression formats
const (
	FormatGzip = "gzip"
	FormatZstd = "zstd"
)

var formatExt = map[string]string{
	FormatGzip: ".gz",
	FormatZstd: ".zst",
}

type compressOptions struct {
	Formats []string `mapstructure:"formats"`
	Files   []string `mapstructure:"files"`
}

// CompressStage writes precompressed copies of the generated bundles next
// to them, for servers that serve .gz and .zst variants directly
type CompressStage struct {
	base
	opts compressOptions
}

// NewCompressStage is the compress stage factory
func NewCompressStage(ctx *pipeline.Context, io types.IO, options types.Metadata) types.Stage {
	return &CompressStage{base: newBase(pipeline.StageCompress, ctx, io, options)}
}

// Init reads the options. Formats default to gzip and files to the bundles
// the require stages produce.
func (s *CompressStage) Init() error {
	var opts compressOptions
	if err := s.decodeOptions(&opts); err != nil {
		return err
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatGzip}
	}
	if len(opts.Files) == 0 {
		opts.Files = []string{RequireJSFile, RequireCSSFile, BuiltFile}
	}
	for _, format := range opts.Formats {
		if _, ok := formatExt[format]; !ok {
			return errors.Newf(errors.ErrInvalidInput, "unknown compression format %q", format).
				WithDetail("format", format)
		}
	}
	s.opts = opts
	return nil
}

// Process compresses each listed file that exists in the component
// directory. Missing files are skipped.
func (s *CompressStage) Process() error {
	root := componentRoot(s.ctx)
	for _, name := range s.opts.Files {
		src := filepath.Join(root, name)
		exists, err := filesystem.Exists(s.fs, src)
		if err != nil {
			return err
		}
		if !exists {
			s.logger.Debug().Str("file", name).Msg("Not generated, skipping")
			continue
		}

		data, err := s.fs.ReadFile(src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
		}
		for _, format := range s.opts.Formats {
			if err := s.write(src, format, data); err != nil {
				s.io.Warning(fmt.Sprintf("Failed to compress %s: %v", name, err))
				return err
			}
		}
	}
	return nil
}

func (s *CompressStage) write(src, format string, data []byte) error {
	compressed, err := compress(format, data)
	if err != nil {
		return err
	}
	target := src + formatExt[format]
	if err := s.fs.WriteFile(target, compressed, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target)
	}
	s.logger.Info().
		Str("file", target).
		Int("size", len(data)).
		Int("compressed", len(compressed)).
		Msg("Compressed")
	return nil
}

func compress(format string, data []byte) ([]byte, error) {
	switch format {
	case FormatGzip:
		var buf bytes.Buffer
		w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown compression format %q", format)
	}
}
