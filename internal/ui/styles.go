// Package ui formats terminal output.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette
// - Default: primary text
// - Accent (soft blue): titles, paths, highlights
// - Muted (gray): secondary info, counts, dates

var (
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	Muted  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	Bold   = lipgloss.NewStyle().Bold(true)

	// Published status renders muted-positive, everything else warns.
	StatusOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	StatusOther = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))

	accentColor = "39"
)

// ConfigureTheme applies an optional accent color override from config.
func ConfigureTheme(accent string) {
	if accent == "" {
		return
	}
	accentColor = accent
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
}

// AccentColor returns the configured accent color.
func AccentColor() string {
	return accentColor
}

// ColorEnabled reports whether styled output should be emitted: stdout is
// a terminal and NO_COLOR is unset.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func render(style lipgloss.Style, s string) string {
	if !ColorEnabled() {
		return s
	}
	return style.Render(s)
}
