package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/halcyon-lab/halcyon-trading/internal/backtest"
)

// Application states.
const (
	StateRanking = iota
	StateDetail
)

// Model is the Bubble Tea model for the results browser.
type Model struct {
	state        int
	file         *backtest.ResultsFile
	rankingTable table.Model
	selected     int
	width        int
	height       int
}

// NewModel creates a model over a loaded results file, ranked best-first.
func NewModel(file *backtest.ResultsFile) Model {
	file.SortByTotalReturn()

	return Model{
		state:        StateRanking,
		file:         file,
		rankingTable: NewRankingTable(file),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.state == StateDetail {
				m.state = StateRanking
			}

			return m, nil
		case "enter":
			if m.state == StateRanking {
				m.selected = m.rankingTable.Cursor()
				m.state = StateDetail
			}

			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rankingTable.SetWidth(msg.Width)
		m.rankingTable.SetHeight(msg.Height - 6)

		return m, nil
	}

	if m.state == StateRanking {
		var cmd tea.Cmd
		m.rankingTable, cmd = m.rankingTable.Update(msg)

		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateRanking:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Strategy Comparison - %s", m.file.DataPath)))
		s.WriteString("\n\n")
		s.WriteString(m.rankingTable.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render(fmt.Sprintf(
			"%d strategies over %d %s bars | Enter: details | q: quit",
			len(m.file.Results), m.file.Bars, m.file.Granularity)))

	case StateDetail:
		result := m.file.Results[m.selected]
		s.WriteString(TitleStyle.Render(result.Strategy))
		s.WriteString("\n\n")
		s.WriteString(RenderDetail(result))
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Esc: back | q: quit"))
	}

	return s.String()
}
