// Package ui renders progress, styled console lines and the run summary.
// Every component degrades to plain text when stdin is not a terminal.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors is the palette shared by console output and the wizard.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// Theme holds colors and the no-color switch.
type Theme struct {
	NoColor bool
	Colors  Colors
}

// ThemeConfig configures NewTheme.
type ThemeConfig struct {
	NoColor bool
}

// NewTheme returns the NestJS-red theme.
func NewTheme(cfg ThemeConfig) *Theme {
	return &Theme{
		NoColor: cfg.NoColor,
		Colors: Colors{
			Primary:   "#E0234E",
			Secondary: "#F97316",
			Success:   "#10B981",
			Warning:   "#F59E0B",
			Error:     "#EF4444",
			Muted:     "#9CA3AF",
		},
	}
}

// style returns a foreground style for color, or a plain style without color.
func (t *Theme) style(color string) lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
