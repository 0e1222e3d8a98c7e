package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rileyhilliard/ghost/internal/registry"
)

// Dashboard color palette
const (
	ColorBorder = lipgloss.Color("#2A2A4A")

	ColorOnline  = lipgloss.Color("#39FF14") // neon green
	ColorWarning = lipgloss.Color("#FFAA00") // amber
	ColorOffline = lipgloss.Color("#FF0055") // red-pink

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#FF2E97") // neon pink
	ColorCyan   = lipgloss.Color("#00FFFF")
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	RowStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	RowSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Bold(true)

	NameStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	DetailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	NotifyInfoStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorCyan).
			Foreground(ColorTextPrimary).
			Padding(0, 1)

	NotifySuccessStyle = NotifyInfoStyle.
				BorderForeground(ColorOnline)

	NotifyErrorStyle = NotifyInfoStyle.
				BorderForeground(ColorOffline)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)
)

// spinnerFrames animate the Connecting state indicator.
var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

// healthStyle returns the color style for a health state's indicator.
func healthStyle(h registry.HealthState) lipgloss.Style {
	switch h {
	case registry.HealthOnline:
		return lipgloss.NewStyle().Foreground(ColorOnline)
	case registry.HealthOffline:
		return lipgloss.NewStyle().Foreground(ColorOffline)
	case registry.HealthConnecting:
		return lipgloss.NewStyle().Foreground(ColorCyan)
	case registry.HealthWarning:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	default:
		return MutedStyle
	}
}

// securityStyle returns the color style for a security status label.
func securityStyle(s registry.SecurityStatus) lipgloss.Style {
	switch s {
	case registry.SecuritySecure:
		return lipgloss.NewStyle().Foreground(ColorOnline)
	case registry.SecurityVulnerable:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	case registry.SecurityCompromised:
		return lipgloss.NewStyle().Foreground(ColorOffline)
	default:
		return MutedStyle
	}
}

// hasColorSupport reports whether the terminal can render the palette.
// On dumb terminals lipgloss degrades on its own; this only gates the
// couple of places that pick alternate glyphs.
func hasColorSupport() bool {
	return termenv.ColorProfile() != termenv.Ascii
}
