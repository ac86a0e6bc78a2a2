package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/cashbook/internal/ledger"
)

// CSV columns.
const (
	colValue = iota
	colDate
	colComment
	numCols
)

var csvHeader = []string{"Value", "Date", "Comment"}

// CSV writes the records in date order with a header, then a blank row and
// the sum of all values.
func CSV(w io.Writer, records *ledger.Collection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, rec := range records.SortByDate().Records() {
		row := make([]string, numCols)
		row[colValue] = amount(rec.Value())
		row[colDate] = date(rec.Date())
		row[colComment] = rec.Comment()
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	footer := [][]string{{""}, {"Sum"}, {amount(records.Value())}}
	if err := cw.WriteAll(footer); err != nil {
		return fmt.Errorf("writing csv sum: %w", err)
	}
	return nil
}
