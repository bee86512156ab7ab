package tui

import "github.com/charmbracelet/lipgloss"

// Styles is the palette for one display mode
type Styles struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Title       lipgloss.Style
	Subtle      lipgloss.Style
	Done        lipgloss.Style
	Cursor      lipgloss.Style
	Danger      lipgloss.Style
	Warning     lipgloss.Style
	Card        lipgloss.Style
	BarFull     lipgloss.Style
	BarEmpty    lipgloss.Style
	Doc         lipgloss.Style
}

func NewStyles(dark bool) Styles {
	accent, muted, fg, tabBg := lipgloss.Color("205"), lipgloss.Color("240"), lipgloss.Color("235"), lipgloss.Color("254")
	if dark {
		accent, muted, fg, tabBg = lipgloss.Color("212"), lipgloss.Color("245"), lipgloss.Color("252"), lipgloss.Color("236")
	}

	return Styles{
		ActiveTab: lipgloss.NewStyle().
			Foreground(accent).
			Background(tabBg).
			Padding(0, 1).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),
		Subtle: lipgloss.NewStyle().
			Foreground(muted),
		Done: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		Cursor: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Foreground(fg).
			Padding(1, 4).
			Width(40).
			Align(lipgloss.Center),
		BarFull: lipgloss.NewStyle().
			Foreground(accent),
		BarEmpty: lipgloss.NewStyle().
			Foreground(muted),
		Doc: lipgloss.NewStyle().Padding(1, 2),
	}
}
