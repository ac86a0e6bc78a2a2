package aggregate

import (
	"slices"

	"cloud.google.com/go/civil"

	"github.com/cleared-dev/cashbook/internal/ledger"
)

// PaymentRow is one expected bill in a month.
type PaymentRow struct {
	Tag string
	ledger.Payment
}

// MonthPayments lists the expected bills of one month.
type MonthPayments struct {
	Month string
	Rows  []PaymentRow
}

// OutgoingInMonth returns the outgoing records of month m in date order.
func OutgoingInMonth(records *ledger.Collection, m string) (*ledger.Collection, error) {
	c, err := records.Filter(m, []string{"direction==outgoing", "month==" + m})
	if err != nil {
		return nil, err
	}
	return c.SortByDate(), nil
}

// PendingPayments reports, for every month of records, whether each tag
// was paid. Months are chronological and tags alphabetical.
func PendingPayments(records *ledger.Collection, tags []string) ([]MonthPayments, error) {
	sorted := slices.Clone(tags)
	slices.Sort(sorted)

	var out []MonthPayments
	for _, m := range records.Months() {
		paid, err := OutgoingInMonth(records, m)
		if err != nil {
			return nil, err
		}
		mp := MonthPayments{Month: m}
		for _, tag := range sorted {
			p, err := paid.FindHashtag(tag)
			if err != nil {
				return nil, err
			}
			mp.Rows = append(mp.Rows, PaymentRow{Tag: tag, Payment: p})
		}
		out = append(out, mp)
	}
	return out, nil
}

// LastPayments maps every hashtag to the date of its most recent record.
func LastPayments(records *ledger.Collection) (map[string]civil.Date, error) {
	groups, err := records.GroupBy("hashtag")
	if err != nil {
		return nil, err
	}
	out := make(map[string]civil.Date, len(groups))
	for tag, c := range groups {
		last, err := c.Last()
		if err != nil {
			return nil, err
		}
		out[tag] = last.Date()
	}
	return out, nil
}
