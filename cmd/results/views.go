package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/halcyon-lab/halcyon-trading/internal/backtest"
)

// NewRankingTable creates the ranked strategy table.
func NewRankingTable(file *backtest.ResultsFile) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Strategy", Width: 40},
		{Title: "Return", Width: 12},
		{Title: "Sharpe", Width: 10},
		{Title: "Max DD", Width: 10},
		{Title: "Trades", Width: 8},
		{Title: "Win rate", Width: 10},
	}

	rows := make([]table.Row, 0, len(file.Results))

	for i, result := range file.Results {
		if result.Report == nil {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", i+1),
				result.Strategy,
				"failed",
				"-", "-", "-", "-",
			})

			continue
		}

		report := result.Report
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			result.Strategy,
			FormatReturn(report.TotalReturn),
			fmt.Sprintf("%.2f", report.SharpeRatio),
			FormatPercent(report.MaxDrawdown),
			fmt.Sprintf("%d", report.TotalTrades),
			FormatPercent(report.WinRate),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// RenderDetail renders the full report of one strategy, or its failure.
func RenderDetail(result backtest.StrategyResult) string {
	if result.Report == nil {
		return ErrorStyle.Render(fmt.Sprintf("Run failed: %s", result.Error)) + "\n"
	}

	report := result.Report

	var s strings.Builder

	writeRow := func(label, value string) {
		s.WriteString(fmt.Sprintf("%-20s %s\n", label, value))
	}

	writeRow("Final balance", fmt.Sprintf("%.2f", report.FinalBalance))
	writeRow("Total return", FormatReturn(report.TotalReturn))
	writeRow("Annualized return", FormatReturn(report.AnnualizedReturn))
	writeRow("Total trades", fmt.Sprintf("%d", report.TotalTrades))
	writeRow("Win rate", FormatPercent(report.WinRate))
	writeRow("Profit factor", fmt.Sprintf("%.2f", report.ProfitFactor))
	writeRow("Sharpe ratio", fmt.Sprintf("%.2f", report.SharpeRatio))
	writeRow("Max drawdown", FormatPercent(report.MaxDrawdown))

	return s.String()
}

// FormatPercent formats a fraction as a percentage.
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

// FormatReturn formats a fractional return with a direction indicator.
func FormatReturn(fraction float64) string {
	formatted := FormatPercent(fraction)

	if fraction > 0 {
		return formatted + " ▲"
	} else if fraction < 0 {
		return formatted + " ▼"
	}

	return formatted
}
