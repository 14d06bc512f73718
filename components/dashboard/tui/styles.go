package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-insights-dashboard/components/dashboard"
)

// palette is derived from the page theme tokens so the terminal follows the
// dark/light toggle.
type palette struct {
	title  lipgloss.Style
	muted  lipgloss.Style
	accent lipgloss.Style
	good   lipgloss.Style
	warn   lipgloss.Style
	bad    lipgloss.Style
	tab    lipgloss.Style
	active lipgloss.Style
	card   lipgloss.Style
	badge  lipgloss.Style
}

func token(theme dashboard.Theme, name, fallback string) lipgloss.Color {
	if v, ok := theme.Tokens[name]; ok && v != "" {
		return lipgloss.Color(v)
	}
	return lipgloss.Color(fallback)
}

func newPalette(theme dashboard.Theme) palette {
	fg := token(theme, "foreground", "#e6e8ee")
	muted := token(theme, "muted", "#8a93a6")
	border := token(theme, "border", "#242a38")
	accent := token(theme, "chart-1", "#6366f1")
	return palette{
		title:  lipgloss.NewStyle().Bold(true).Foreground(fg),
		muted:  lipgloss.NewStyle().Foreground(muted),
		accent: lipgloss.NewStyle().Foreground(accent).Bold(true),
		good:   lipgloss.NewStyle().Foreground(token(theme, "chart-2", "#22c55e")),
		warn:   lipgloss.NewStyle().Foreground(token(theme, "chart-3", "#f59e0b")),
		bad:    lipgloss.NewStyle().Foreground(token(theme, "chart-4", "#ef4444")),
		tab:    lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		active: lipgloss.NewStyle().Foreground(fg).Background(accent).Bold(true).Padding(0, 1),
		badge:  lipgloss.NewStyle().Foreground(fg).Background(token(theme, "chart-4", "#ef4444")).Padding(0, 1),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
	}
}

// tone maps a display tone to a style.
func (p palette) tone(tone string) lipgloss.Style {
	switch tone {
	case "green":
		return p.good
	case "yellow", "orange":
		return p.warn
	case "red":
		return p.bad
	case "blue", "purple":
		return p.accent
	default:
		return p.muted
	}
}
