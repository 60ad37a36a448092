// Package theme holds the terminal styles used by the CLI reports.
package theme

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// Palette: warm terracotta and jade, echoing the mosaic artwork.
var (
	Primary   = lipgloss.Color("#C2410C") // Terracotta
	Secondary = lipgloss.Color("#0F766E") // Jade
	Accent    = lipgloss.Color("#CA8A04") // Saffron
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Value = lipgloss.NewStyle().
		Foreground(Text)

	Badge = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Bad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

var (
	tableHeader = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	tableCell = lipgloss.NewStyle().
			Foreground(Text).
			Padding(0, 1)

	tableCellAlt = tableCell.
			Foreground(TextDim)
)

// Table returns a rounded-border table with themed header and striped rows.
func Table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Border)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeader
			case row%2 == 1:
				return tableCellAlt
			default:
				return tableCell
			}
		})
}

// ScoreStyle colours a percentage: green from 80, red below 50.
func ScoreStyle(percentage int) lipgloss.Style {
	switch {
	case percentage >= 80:
		return Good
	case percentage < 50:
		return Bad
	default:
		return Value
	}
}
