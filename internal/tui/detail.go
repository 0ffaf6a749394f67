package tui

import (
	"fmt"
	"strings"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

// detailHeight is the fixed number of lines for the detail panel.
const detailHeight = 4

// renderDetail produces the detail view for a selected match.
func renderDetail(match *models.Match, width int) string {
	if match == nil {
		return styleDetailPanel.Width(width).Render("No match selected")
	}

	var b strings.Builder

	setStyled := termSetStyle(match.TermSet).Render(strings.ToUpper(match.TermSet))
	b.WriteString(fmt.Sprintf("%s  %s.%s\n", setStyled, match.Database, match.Table))
	b.WriteString(fmt.Sprintf("Matched: %s\n", match.Matched))
	b.WriteString(fmt.Sprintf("File: %s", match.File))

	return styleDetailPanel.Width(width).Render(b.String())
}
