package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats raw topic content for display. ext is the topic file's
// extension.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render returns content as is
func (PlainRenderer) Render(content string, ext string) string {
	return content
}

// GlamourRenderer renders markdown topics for the terminal
type GlamourRenderer struct {
	// Style is a glamour style name or path; empty or "auto" detects it
	Style string
	// Width wraps output; 0 keeps glamour's default
	Width int
}

// NewGlamourRenderer returns a renderer with automatic style detection
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render renders markdown content. Other formats, and content glamour
// fails on, are returned as is.
func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
