// Package report renders computed ledger results as text, HTML, CSV, JSON
// and TSV. Nothing here computes; every function formats values produced
// by the ledger and aggregate packages.
package report

import (
	"cloud.google.com/go/civil"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

// Placeholders shown for a payable that has no payment in a month.
const (
	UnpaidPrice = "$0"
	UnpaidDate  = "Not yet"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = cellStyle.Align(lipgloss.Left)
	amountStyle = cellStyle.Align(lipgloss.Right)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			default:
				return amountStyle
			}
		})
}

func amount(d decimal.Decimal) string {
	return d.String()
}

func date(d civil.Date) string {
	return d.String()
}
