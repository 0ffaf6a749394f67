package tui

import "github.com/charmbracelet/lipgloss"

// Term set colors
var (
	colorDentists = lipgloss.Color("#00BFFF")
	colorNetworks = lipgloss.Color("#FFB86C")
	colorDSOs     = lipgloss.Color("#50FA7B")
	colorMuted    = lipgloss.Color("#888888")
	colorAccent   = lipgloss.Color("#7B68EE")
	colorBorder   = lipgloss.Color("#444444")
)

// Panel styles
var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	styleDetailPanel = lipgloss.NewStyle().
				Padding(0, 1).
				BorderStyle(lipgloss.NormalBorder()).
				BorderTop(true).
				BorderForeground(colorBorder)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	styleSearchPrompt = lipgloss.NewStyle().
				Foreground(colorAccent).Bold(true)
)

// termSetStyle returns the lipgloss style for a term set name.
func termSetStyle(name string) lipgloss.Style {
	switch name {
	case "dentists":
		return lipgloss.NewStyle().Foreground(colorDentists).Bold(true)
	case "networks":
		return lipgloss.NewStyle().Foreground(colorNetworks).Bold(true)
	case "dsos":
		return lipgloss.NewStyle().Foreground(colorDSOs).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colorAccent)
	}
}
