package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashbook/internal/ledger"
)

type row struct {
	value, date, comment, direction string
}

func collection(t *testing.T, rows ...row) *ledger.Collection {
	t.Helper()
	c := ledger.NewCollection()
	for _, r := range rows {
		rec, err := ledger.NewRecord(r.value, r.date, r.comment, r.direction)
		require.NoError(t, err)
		c.Append(rec)
	}
	return c
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}
