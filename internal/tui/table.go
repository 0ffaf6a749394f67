package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

var tableColumns = []table.Column{
	{Title: "Database", Width: 16},
	{Title: "Table", Width: 26},
	{Title: "Matched", Width: 20},
	{Title: "Set", Width: 10},
	{Title: "File", Width: 34},
}

// buildRows converts matches to table rows.
func buildRows(matches []models.Match) []table.Row {
	rows := make([]table.Row, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, table.Row{
			truncate(m.Database, tableColumns[0].Width),
			truncate(m.Table, tableColumns[1].Width),
			truncate(m.Matched, tableColumns[2].Width),
			m.TermSet,
			truncate(m.File, tableColumns[4].Width),
		})
	}
	return rows
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	const ellipsis = "..."
	if maxLen <= len(ellipsis) {
		return s[:maxLen]
	}
	return s[:maxLen-len(ellipsis)] + ellipsis
}

// newTable creates a bubbles table with standard columns and styling.
func newTable(rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(tableColumns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorAccent).
		Bold(false)
	t.SetStyles(s)

	return t
}
