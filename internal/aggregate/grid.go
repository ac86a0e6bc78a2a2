package aggregate

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/ledger"
	"github.com/cleared-dev/cashbook/internal/month"
)

// Grid is a month by label table of sums with per-month subtotals and a
// running balance.
type Grid struct {
	Months    []string // ascending
	Labels    []string // sorted
	Cells     map[string]map[string]decimal.Decimal // label -> month -> sum
	Subtotals map[string]decimal.Decimal            // month -> sum
	Balance   map[string]decimal.Decimal            // month -> running sum
	Total     decimal.Decimal
}

// Accumulate builds the grid of records, labelling each record with label.
func Accumulate(records *ledger.Collection, label ledger.Labeler) (*Grid, error) {
	byMonth, err := records.GroupBy("month")
	if err != nil {
		return nil, err
	}

	g := &Grid{
		Months:    records.Months(),
		Cells:     make(map[string]map[string]decimal.Decimal),
		Subtotals: make(map[string]decimal.Decimal),
		Balance:   make(map[string]decimal.Decimal),
		Total:     records.Value(),
	}

	for _, m := range g.Months {
		slice := byMonth[m]
		g.Subtotals[m] = slice.Value()

		byLabel, err := slice.Partition(label)
		if err != nil {
			return nil, err
		}
		for l, c := range byLabel {
			row, ok := g.Cells[l]
			if !ok {
				row = make(map[string]decimal.Decimal)
				g.Cells[l] = row
				g.Labels = append(g.Labels, l)
			}
			row[m] = c.Value()
		}
	}
	sort.Strings(g.Labels)

	running := decimal.Zero
	for _, m := range g.Months {
		running = running.Add(g.Subtotals[m])
		g.Balance[m] = integral(running)
	}
	return g, nil
}

// Cell returns the sum for label in month m; ok is false for an empty cell.
func (g *Grid) Cell(label, m string) (decimal.Decimal, bool) {
	v, ok := g.Cells[label][m]
	return v, ok
}

// Window keeps the months from "from" onwards for display. Balances and
// the total still cover the whole history.
func (g *Grid) Window(from string) *Grid {
	w := &Grid{
		Cells:     make(map[string]map[string]decimal.Decimal),
		Subtotals: make(map[string]decimal.Decimal),
		Balance:   make(map[string]decimal.Decimal),
		Total:     g.Total,
	}
	for _, m := range g.Months {
		if m < from {
			continue
		}
		w.Months = append(w.Months, m)
		w.Subtotals[m] = g.Subtotals[m]
		w.Balance[m] = g.Balance[m]
	}
	for _, l := range g.Labels {
		for _, m := range w.Months {
			v, ok := g.Cells[l][m]
			if !ok {
				continue
			}
			if w.Cells[l] == nil {
				w.Cells[l] = make(map[string]decimal.Decimal)
				w.Labels = append(w.Labels, l)
			}
			w.Cells[l][m] = v
		}
	}
	return w
}

// WindowStart returns the first month within days of today.
func WindowStart(today civil.Date, days int) string {
	return month.Of(today.AddDays(-days))
}

func integral(d decimal.Decimal) decimal.Decimal {
	if whole := d.Truncate(0); d.Equal(whole) {
		return whole
	}
	return d
}
