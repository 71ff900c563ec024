package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// WarningPrefix marks warning lines in text output
const WarningPrefix = "warning: "

// Console is the terminal diagnostic sink
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	format  Format
	info    lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
}

// NewConsole creates a console writing to w. FormatAuto inspects w when it
// is a file and falls back to text otherwise.
func NewConsole(w io.Writer, format Format) *Console {
	if format == FormatAuto {
		format = FormatText
		if file, ok := w.(*os.File); ok {
			format = DetectFormat(file)
		}
	}

	renderer := lipgloss.NewRenderer(w)
	if format == FormatText {
		renderer.SetColorProfile(termenv.Ascii)
	} else {
		renderer.SetColorProfile(termenv.ANSI256)
	}

	return &Console{
		out:     w,
		format:  format,
		info:    renderer.NewStyle().Foreground(InfoColor),
		warning: renderer.NewStyle().Foreground(WarningColor).Bold(true),
		muted:   renderer.NewStyle().Foreground(MutedColor),
	}
}

// Format returns the resolved output format
func (c *Console) Format() Format {
	return c.format
}

// Write prints msg as is
func (c *Console) Write(msg string) {
	c.println(msg)
}

// Info prints a progress line
func (c *Console) Info(msg string) {
	c.println(c.info.Render(msg))
}

// Warning prints a warning line
func (c *Console) Warning(msg string) {
	if c.format == FormatText {
		c.println(WarningPrefix + msg)
		return
	}
	c.println(c.warning.Render(msg))
}

// Muted prints a de-emphasized line
func (c *Console) Muted(msg string) {
	c.println(c.muted.Render(msg))
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, s)
}
