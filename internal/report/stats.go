package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/aggregate"
	"github.com/cleared-dev/cashbook/internal/ledger"
)

// Projection holds the what-if figures printed under the stats table.
type Projection struct {
	Rate           decimal.Decimal // configured monthly dues per member
	MembersForRate int64
	Members        int
	DuesForMembers int64
}

// Project computes the what-if figures from the Total and Average buckets.
func Project(s *aggregate.Stats, rate decimal.Decimal, rnd ledger.Rounding) Projection {
	total := s.Buckets[aggregate.BucketTotal]
	members := s.Buckets[aggregate.BucketAverage].Members
	months := s.MonthCount()
	return Projection{
		Rate:           rate,
		MembersForRate: aggregate.MembersNeededForDues(rate, total.Outgoing, months, rnd),
		Members:        members,
		DuesForMembers: aggregate.DuesNeededForMembers(members, total.Outgoing, months, rnd),
	}
}

type statsRow struct {
	name string
	text func(*aggregate.Bucket) string
}

var statsRows = []statsRow{
	{"Incoming", func(b *aggregate.Bucket) string { return amount(b.Incoming.Value()) }},
	{"Outgoing", func(b *aggregate.Bucket) string { return amount(b.Outgoing.Value()) }},
	{"Dues", func(b *aggregate.Bucket) string { return amount(b.Dues.Value()) }},
	{"Other", func(b *aggregate.Bucket) string { return amount(b.Other.Value()) }},
	{"Members", func(b *aggregate.Bucket) string { return strconv.Itoa(b.Members) }},
	{"ARPM", arpm},
	{"Subtotal", func(b *aggregate.Bucket) string { return amount(b.Subtotal) }},
	{"Balance", func(b *aggregate.Bucket) string { return amount(b.Balance) }},
}

func arpm(b *aggregate.Bucket) string {
	if b.ARPM == aggregate.NoARPM {
		return "-"
	}
	return strconv.FormatInt(b.ARPM, 10)
}

// StatsText writes the stats as a table with one column per bucket,
// followed by the projections.
func StatsText(w io.Writer, s *aggregate.Stats, p Projection) error {
	order := s.Order()
	t := newTable(append([]string{""}, order...)...)
	for _, sr := range statsRows {
		row := []string{sr.name}
		for _, name := range order {
			row = append(row, sr.text(s.Buckets[name]))
		}
		t.Row(row...)
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	fmt.Fprintf(&b, "Months: %d\n", s.MonthCount())
	fmt.Fprintf(&b, "Members needed at %s per month: %d\n", amount(p.Rate), p.MembersForRate)
	fmt.Fprintf(&b, "Dues needed per month with %d members: %d\n", p.Members, p.DuesForMembers)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

var tsvDoc = []string{
	"# cashbook statistics, one row per bucket",
	"# bucket: closed month YYYY-MM, Average, MonthTD (current month) or Total",
	"# incoming, outgoing: sums of positive and negative records",
	"# dues: sum of records tagged with the dues pattern; other: incoming minus dues",
	"# members: distinct dues tags; arpm: dues per member, -1 without members",
	"# subtotal: incoming plus outgoing; balance: running subtotal in row order",
}

var tsvHeader = []string{"bucket", "incoming", "outgoing", "dues", "other", "members", "arpm", "subtotal", "balance"}

// StatsTSV writes the stats as tab separated rows under a commented header
// block.
func StatsTSV(w io.Writer, s *aggregate.Stats) error {
	for _, line := range tsvDoc {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing stats header: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(tsvHeader); err != nil {
		return fmt.Errorf("writing stats header: %w", err)
	}
	for _, name := range s.Order() {
		b := s.Buckets[name]
		row := []string{
			name,
			amount(b.Incoming.Value()),
			amount(b.Outgoing.Value()),
			amount(b.Dues.Value()),
			amount(b.Other.Value()),
			strconv.Itoa(b.Members),
			strconv.FormatInt(b.ARPM, 10),
			amount(b.Subtotal),
			amount(b.Balance),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing stats row %s: %w", name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}
