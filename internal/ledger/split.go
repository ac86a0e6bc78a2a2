package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/month"
)

// coverPrefix marks the months a payment covers, e.g. "for:2025-01..2025-03"
// or "for:2025-04".
const coverPrefix = "for:"

// Coverage returns the months named by the record's coverage token, or nil
// when the comment has none.
func (r Record) Coverage() ([]string, error) {
	var cover string
	for _, tok := range strings.Fields(r.comment) {
		if !strings.HasPrefix(tok, coverPrefix) {
			continue
		}
		if cover != "" {
			return nil, fmt.Errorf("comment %q has more than one coverage token: %w", r.comment, ErrInvalidSplit)
		}
		cover = strings.TrimPrefix(tok, coverPrefix)
		if cover == "" {
			return nil, fmt.Errorf("comment %q has an empty coverage token: %w", r.comment, ErrInvalidSplit)
		}
	}
	if cover == "" {
		return nil, nil
	}

	from, to, found := strings.Cut(cover, "..")
	if !found {
		to = from
	}
	months, err := month.Range(from, to)
	if err != nil {
		return nil, fmt.Errorf("coverage %q: %w: %v", cover, ErrInvalidSplit, err)
	}
	if len(months) == 0 {
		return nil, fmt.Errorf("coverage %q ends before it starts: %w", cover, ErrInvalidSplit)
	}
	return months, nil
}

// AutoSplit replaces every record covering other months than its own with
// one record per covered month. The parts always add up to the original
// value: each part is the floored share of the amount and the first part
// takes the remainder. Parts lose the coverage token, so splitting an
// already split collection changes nothing.
func (c *Collection) AutoSplit(rnd Rounding) (*Collection, error) {
	out := &Collection{records: make([]Record, 0, len(c.records))}
	for _, r := range c.records {
		months, err := r.Coverage()
		if err != nil {
			return nil, err
		}
		if len(months) == 0 || len(months) == 1 && months[0] == r.Month() {
			out.records = append(out.records, r)
			continue
		}

		parts, err := r.split(months, rnd)
		if err != nil {
			return nil, err
		}
		out.records = append(out.records, parts...)
	}
	return out, nil
}

func (r Record) split(months []string, rnd Rounding) ([]Record, error) {
	n := decimal.NewFromInt(int64(len(months)))
	magnitude := r.value.Abs()
	share := rnd.Quo(magnitude, n)
	first := magnitude.Sub(share.Mul(n.Sub(decimal.NewFromInt(1))))

	comment := withoutCoverage(r.comment)
	parts := make([]Record, 0, len(months))
	for i, m := range months {
		date, err := month.First(m)
		if err != nil {
			return nil, err
		}
		if m == r.Month() {
			date = r.date
		}

		v := share
		if i == 0 {
			v = first
		}
		if r.value.IsNegative() {
			v = v.Neg()
		}
		part := r.derive(v, date)
		part.comment = comment
		parts = append(parts, part)
	}
	return parts, nil
}

func withoutCoverage(comment string) string {
	toks := strings.Fields(comment)
	kept := toks[:0]
	for _, tok := range toks {
		if !strings.HasPrefix(tok, coverPrefix) {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}
