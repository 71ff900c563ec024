package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Colors adapt to light and dark backgrounds
var (
	InfoColor = lipgloss.AdaptiveColor{
		Light: "#059669",
		Dark:  "#34D399",
	}
	WarningColor = lipgloss.AdaptiveColor{
		Light: "#D97706",
		Dark:  "#FBBF24",
	}
	MutedColor = lipgloss.AdaptiveColor{
		Light: "#6B7280",
		Dark:  "#9CA3AF",
	}
)

// OutcomeStyle returns the pterm style for a stage outcome column
func OutcomeStyle(outcome string) *pterm.Style {
	switch outcome {
	case "processed", "registered":
		return pterm.NewStyle(pterm.FgGreen)
	case "init-failed", "missing":
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case "skipped":
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}
