package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/cleared-dev/cashbook/internal/ledger"
)

const (
	numFields  = 3
	colValue   = 0
	colDate    = 1
	colComment = 2
)

// ReadRecords reads tab-separated value/date/comment rows. The direction
// comes from the file name, not the file contents.
func ReadRecords(r io.Reader, direction ledger.Direction) ([]ledger.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = numFields
	cr.LazyQuotes = true

	var records []ledger.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ledger TSV: %w", err)
		}

		rec, err := UnmarshalRecord(row, direction)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords writes records as ledger rows. Values are written as
// magnitudes; the sign lives in the file name.
func WriteRecords(w io.Writer, records []ledger.Record) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRecord converts a Record to a ledger row.
func MarshalRecord(rec ledger.Record) []string {
	row := make([]string, numFields)
	row[colValue] = rec.Value().Abs().String()
	row[colDate] = rec.Date().String()
	row[colComment] = rec.Comment()
	return row
}

// UnmarshalRecord converts a ledger row to a Record.
func UnmarshalRecord(row []string, direction ledger.Direction) (ledger.Record, error) {
	if len(row) != numFields {
		return ledger.Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}
	return ledger.NewRecord(row[colValue], row[colDate], row[colComment], string(direction))
}
