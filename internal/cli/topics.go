package cli

import (
	"embed"
	"io/fs"
	"os"

	"github.com/arthur-debert/compinst/pkg/cobrax/topics"
	"github.com/arthur-debert/compinst/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var helpTopics embed.FS

// topicRenderer picks glamour or plain output once flags are parsed
type topicRenderer struct {
	opts *globalOptions
}

func (r topicRenderer) Render(content string, ext string) string {
	format := r.opts.format()
	if format == ui.FormatAuto {
		format = ui.DetectFormat(os.Stdout)
	}
	if format != ui.FormatTerminal {
		return content
	}
	return topics.NewGlamourRenderer().Render(content, ext)
}

func installTopics(rootCmd *cobra.Command, opts *globalOptions) {
	source, err := fs.Sub(helpTopics, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}

	tm := topics.New(source, topics.Options{Renderer: topicRenderer{opts: opts}})
	if err := tm.Load(); err != nil {
		log.Warn().Err(err).Msg("Failed to load help topics")
		return
	}
	topics.Install(rootCmd, tm)
}
