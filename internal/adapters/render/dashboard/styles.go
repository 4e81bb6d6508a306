package dashboard

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	section lipgloss.Style
	heading lipgloss.Style
	item    lipgloss.Style
	trip    lipgloss.Style
	status  lipgloss.Style
	date    lipgloss.Style
	unknown lipgloss.Style
	empty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		section: lipgloss.NewStyle().MarginTop(1),
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		item:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		trip:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		date:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		unknown: lipgloss.NewStyle().Faint(true),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}
