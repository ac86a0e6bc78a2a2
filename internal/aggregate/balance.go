package aggregate

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/ledger"
)

// ErrNegativeBalance means the recorded cash went below zero, which a
// consistent ledger never does.
var ErrNegativeBalance = errors.New("negative balance")

// Balance sums all records and fails when the result is negative.
func Balance(records *ledger.Collection) (decimal.Decimal, error) {
	total := records.Value()
	if total.IsNegative() {
		return total, fmt.Errorf("balance %s: %w", total, ErrNegativeBalance)
	}
	return total, nil
}

// Party reports whether there is money left.
func Party(records *ledger.Collection) bool {
	return records.Value().IsPositive()
}
