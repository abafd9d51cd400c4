package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// styles is one colour mode's palette
type styles struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	header      lipgloss.Style
	muted       lipgloss.Style
	today       lipgloss.Style
	danger      lipgloss.Style
	warning     lipgloss.Style
	doc         lipgloss.Style
}

func newStyles(dark bool) styles {
	accent, surface, muted := lipgloss.Color("205"), lipgloss.Color("236"), lipgloss.Color("240")
	if !dark {
		accent, surface, muted = lipgloss.Color("125"), lipgloss.Color("254"), lipgloss.Color("245")
	}

	return styles{
		activeTab: lipgloss.NewStyle().
			Foreground(accent).
			Background(surface).
			Padding(0, 1).
			Bold(true),
		inactiveTab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		muted: lipgloss.NewStyle().Foreground(muted),
		today: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Underline(true),
		danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true),
		doc: lipgloss.NewStyle().Padding(1, 2),
	}
}

func formTheme(dark bool) *huh.Theme {
	if dark {
		return huh.ThemeDracula()
	}
	return huh.ThemeBase()
}
