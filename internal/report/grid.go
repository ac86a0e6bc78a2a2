package report

import (
	"fmt"
	"io"

	"github.com/cleared-dev/cashbook/internal/aggregate"
)

// Row labels of the grid footer.
const (
	SubtotalLabel = "Subtotal"
	BalanceLabel  = "Balance"
)

// GridText writes g as a table with one column per month and one row per
// label, followed by the subtotal and running balance rows and the total.
func GridText(w io.Writer, g *aggregate.Grid) error {
	headers := append([]string{""}, g.Months...)
	t := newTable(headers...)

	for _, label := range g.Labels {
		row := []string{label}
		for _, m := range g.Months {
			v, ok := g.Cell(label, m)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, amount(v))
		}
		t.Row(row...)
	}

	subtotals := []string{SubtotalLabel}
	balances := []string{BalanceLabel}
	for _, m := range g.Months {
		subtotals = append(subtotals, amount(g.Subtotals[m]))
		balances = append(balances, amount(g.Balance[m]))
	}
	t.Row(subtotals...)
	t.Row(balances...)

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("writing grid: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Total: %s\n", amount(g.Total)); err != nil {
		return fmt.Errorf("writing grid: %w", err)
	}
	return nil
}
