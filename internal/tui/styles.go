package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/ui"
)

type styles struct {
	theme    ui.Theme
	selected lipgloss.Style
	done     lipgloss.Style
	dragging lipgloss.Style
	help     lipgloss.Style
	frame    lipgloss.Style
	input    lipgloss.Style
	remove   lipgloss.Style
}

func newStyles(theme string) styles {
	t := ui.NewTheme(theme, lipgloss.DefaultRenderer())
	return styles{
		theme:    t,
		selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		dragging: t.Accent.Bold(true),
		help:     lipgloss.NewStyle().Faint(true),
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
		input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
		remove: t.Error.Bold(false),
	}
}
