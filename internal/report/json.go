package report

import (
	"encoding/json"
	"fmt"
	"io"

	"cloud.google.com/go/civil"
)

// LastPaymentsJSON writes a tag to last payment date object. Keys come out
// sorted.
func LastPaymentsJSON(w io.Writer, last map[string]civil.Date) error {
	out := make(map[string]string, len(last))
	for tag, d := range last {
		out[tag] = date(d)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding payments: %w", err)
	}
	return nil
}
