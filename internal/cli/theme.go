package cli

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Warn  lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title: lipgloss.NewStyle().Bold(true),
		Label: lipgloss.NewStyle().Faint(true),
		Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}
