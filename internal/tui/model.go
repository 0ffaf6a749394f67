package tui

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

// mode represents the current UI interaction mode.
type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilterDatabase
)

const defaultTableHeight = 15

// Model is the top-level Bubble Tea model for the browse TUI.
type Model struct {
	// Data (immutable after init)
	report     *models.ScanReport
	allMatches []models.Match

	// UI state
	table           table.Model
	searchInput     textinput.Model
	filteredMatches []models.Match
	filters         filterState
	sortBy          sortField
	mode            mode
	databaseChoices []string
	databaseCursor  int
	width           int
	height          int
	statusMsg       string
	// clipboard is captured here for testing instead of writing to stdout
	clipboard string
}

// New creates a new TUI model from scan report data.
func New(report *models.ScanReport) Model {
	matches := make([]models.Match, len(report.Matches))
	copy(matches, report.Matches)

	sortMatches(matches, sortByDatabase)
	rows := buildRows(matches)
	t := newTable(rows, defaultTableHeight)

	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = 64

	return Model{
		report:          report,
		allMatches:      matches,
		filteredMatches: matches,
		table:           t,
		searchInput:     ti,
		sortBy:          sortByDatabase,
		mode:            modeNormal,
		databaseChoices: uniqueDatabases(matches),
		width:           80,
		height:          24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		tableH := msg.Height - headerHeight - detailHeight - 3
		if tableH < 3 {
			tableH = 3
		}
		m.table.SetHeight(tableH)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	default:
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeFilterDatabase:
		return m.handleFilterDatabaseKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.FilterDatabase):
		m.mode = modeFilterDatabase
		m.databaseCursor = 0
		return m, nil
	case key.Matches(msg, keys.Sort):
		m.sortBy = (m.sortBy + 1) % sortField(sortFieldCount)
		m.rebuildTable()
		m.statusMsg = fmt.Sprintf("Sort: %s", sortFieldName(m.sortBy))
		return m, nil
	case key.Matches(msg, keys.Copy):
		m.copySelectedMatch()
		return m, nil
	case key.Matches(msg, keys.ClearFilter):
		m.filters = filterState{}
		m.statusMsg = ""
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filters.SearchText = m.searchInput.Value()
		m.mode = modeNormal
		m.searchInput.Blur()
		m.rebuildTable()
		return m, nil
	case "esc":
		m.mode = modeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleFilterDatabaseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.databaseCursor > 0 {
			m.databaseCursor--
		}
	case "down", "j":
		if m.databaseCursor < len(m.databaseChoices) {
			m.databaseCursor++
		}
	case "enter":
		if m.databaseCursor == 0 {
			m.filters.Database = ""
		} else if m.databaseCursor <= len(m.databaseChoices) {
			m.filters.Database = m.databaseChoices[m.databaseCursor-1]
		}
		m.mode = modeNormal
		m.rebuildTable()
		if m.filters.Database != "" {
			m.statusMsg = fmt.Sprintf("Filter: %s", m.filters.Database)
		} else {
			m.statusMsg = ""
		}
	case "esc":
		m.mode = modeNormal
	}
	return m, nil
}

func (m *Model) rebuildTable() {
	filtered := applyFilters(m.allMatches, m.filters)
	sortMatches(filtered, m.sortBy)
	m.filteredMatches = filtered
	m.table.SetRows(buildRows(filtered))
}

func (m *Model) selectedMatch() *models.Match {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.filteredMatches) {
		return nil
	}
	return &m.filteredMatches[cursor]
}

// copySelectedMatch writes the selected match to clipboard via OSC 52.
func (m *Model) copySelectedMatch() {
	match := m.selectedMatch()
	if match == nil {
		m.statusMsg = "Nothing to copy"
		return
	}
	text := fmt.Sprintf("[%s] %s.%s: %s (%s)",
		match.TermSet, match.Database, match.Table, match.Matched, match.File)
	m.clipboard = text
	m.statusMsg = "Copied!"
	// OSC 52 clipboard escape: works in most modern terminals
	fmt.Printf("\033]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(renderHeader(m.report, m.width))
	b.WriteString("\n")

	// Search bar overlay
	if m.mode == modeSearch {
		b.WriteString(styleSearchPrompt.Render("/ "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}

	// Database filter overlay
	if m.mode == modeFilterDatabase {
		b.WriteString(m.renderDatabaseFilter())
		b.WriteString("\n")
	}

	// Table
	b.WriteString(m.table.View())
	b.WriteString("\n")

	// Detail panel
	b.WriteString(renderDetail(m.selectedMatch(), m.width))
	b.WriteString("\n")

	// Footer
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m *Model) renderDatabaseFilter() string {
	var b strings.Builder
	b.WriteString("Filter by database:\n")

	options := append([]string{"All"}, m.databaseChoices...)
	for i, opt := range options {
		cursor := "  "
		if i == m.databaseCursor {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, opt))
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	left := "q:quit  /:search  d:database  s:sort  c:copy  esc:clear"
	right := fmt.Sprintf("%d/%d matches", len(m.filteredMatches), len(m.allMatches))

	if m.statusMsg != "" {
		right = m.statusMsg + "  " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return styleFooter.Render(left + strings.Repeat(" ", gap) + right)
}

// Run starts the Bubble Tea program. Called from the browse command.
func Run(report *models.ScanReport) error {
	m := New(report)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
