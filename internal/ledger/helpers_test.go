package ledger

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func rec(t *testing.T, value, date, comment, direction string) Record {
	t.Helper()
	r, err := NewRecord(value, date, comment, direction)
	require.NoError(t, err)
	return r
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func day(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func comments(c *Collection) []string {
	var out []string
	for _, r := range c.Records() {
		out = append(out, r.Comment())
	}
	return out
}
