package ledger

import "github.com/shopspring/decimal"

// Rounding is the truncation policy for computed amounts. Every cut rounds
// toward negative infinity so a computed balance never overstates cash.
type Rounding struct {
	Places int32
}

// DefaultRounding keeps cents.
func DefaultRounding() Rounding {
	return Rounding{Places: 2}
}

// Floor cuts d to the configured number of places.
func (r Rounding) Floor(d decimal.Decimal) decimal.Decimal {
	return d.RoundFloor(r.Places)
}

// Quo divides a by b, floored to the configured number of places.
// b must not be zero.
func (r Rounding) Quo(a, b decimal.Decimal) decimal.Decimal {
	return floorQuo(a, b, r.Places)
}

// IntQuo divides a by b and floors the result to an integer.
// b must not be zero.
func (r Rounding) IntQuo(a, b decimal.Decimal) int64 {
	return floorQuo(a, b, 0).IntPart()
}

// Int floors d to an integer.
func (r Rounding) Int(d decimal.Decimal) int64 {
	return d.Floor().IntPart()
}

func floorQuo(a, b decimal.Decimal, places int32) decimal.Decimal {
	q, rem := a.QuoRem(b, places)
	if !rem.IsZero() && rem.Sign() != b.Sign() {
		q = q.Sub(decimal.New(1, -places))
	}
	return q
}
