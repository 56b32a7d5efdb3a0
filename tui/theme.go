package tui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	title     lipgloss.Style
	activeTab lipgloss.Style
	tab       lipgloss.Style
	selected  lipgloss.Style
	faint     lipgloss.Style
	message   lipgloss.Style
	errorText lipgloss.Style
	locked    lipgloss.Style
	label     lipgloss.Style
	help      lipgloss.Style
}

func defaultTheme() theme {
	accent := lipgloss.Color("99")
	return theme{
		title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		activeTab: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(accent).Padding(0, 1),
		tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("61")),
		faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		message:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		errorText: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		locked: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3),
		label: lipgloss.NewStyle().Width(20).Foreground(lipgloss.Color("250")),
		help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
