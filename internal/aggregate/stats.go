package aggregate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/ledger"
	"github.com/cleared-dev/cashbook/internal/month"
)

// Names of the rollup buckets that follow the past months.
const (
	BucketAverage = "Average"
	BucketMonthTD = "MonthTD"
	BucketTotal   = "Total"
)

// DefaultDuesPattern selects membership dues by hashtag, e.g. #dues:alice.
const DefaultDuesPattern = "^dues:"

// NoARPM is the ARPM of a bucket without members.
const NoARPM int64 = -1

// StatsConfig controls ComputeStats.
type StatsConfig struct {
	Reference   string // current month, "YYYY-MM"
	Rounding    ledger.Rounding
	DuesPattern string // regular expression over hashtags
}

// Bucket holds the statistics of one month or rollup.
type Bucket struct {
	Incoming *ledger.Collection
	Outgoing *ledger.Collection
	Dues     *ledger.Collection
	Other    *ledger.Collection // incoming, not dues
	Members  int
	ARPM     int64 // average revenue per member, NoARPM without members
	Subtotal decimal.Decimal
	Balance  decimal.Decimal
}

// Stats is the multi-month statistics table.
type Stats struct {
	Months  []string // closed months before the reference month, ascending
	Buckets map[string]*Bucket
}

// MonthCount is the number of closed months.
func (s *Stats) MonthCount() int { return len(s.Months) }

// Order lists the bucket names in report order.
func (s *Stats) Order() []string {
	order := make([]string, 0, len(s.Months)+3)
	order = append(order, s.Months...)
	return append(order, BucketAverage, BucketMonthTD, BucketTotal)
}

type bucketFilters struct {
	incoming ledger.Filter
	outgoing ledger.Filter
	dues     ledger.Filter
	rounding ledger.Rounding
}

// ComputeStats splits records into closed months and the current month and
// computes per-month buckets plus Average, MonthTD and Total rollups.
func ComputeStats(records *ledger.Collection, cfg StatsConfig) (*Stats, error) {
	pattern := cfg.DuesPattern
	if pattern == "" {
		pattern = DefaultDuesPattern
	}

	var bf bucketFilters
	var err error
	if bf.incoming, err = ledger.ParseFilter("value>0"); err != nil {
		return nil, err
	}
	if bf.outgoing, err = ledger.ParseFilter("value<0"); err != nil {
		return nil, err
	}
	if bf.dues, err = ledger.ParseFilter("hashtag=~" + pattern); err != nil {
		return nil, fmt.Errorf("dues pattern: %w", err)
	}
	bf.rounding = cfg.Rounding

	past, err := records.Filter(cfg.Reference, []string{"rel_months<0"})
	if err != nil {
		return nil, err
	}
	current, err := records.Filter(cfg.Reference, []string{"rel_months==0"})
	if err != nil {
		return nil, err
	}

	byMonth, err := past.GroupBy("month")
	if err != nil {
		return nil, err
	}

	s := &Stats{
		Months:  past.Months(),
		Buckets: make(map[string]*Bucket, len(byMonth)+3),
	}

	memberSum := 0
	for _, m := range s.Months {
		b, err := bf.bucket(byMonth[m])
		if err != nil {
			return nil, fmt.Errorf("month %s: %w", m, err)
		}
		s.Buckets[m] = b
		memberSum += b.Members
	}

	if s.Buckets[BucketMonthTD], err = bf.bucket(current); err != nil {
		return nil, fmt.Errorf("month to date: %w", err)
	}
	total, err := bf.bucket(past)
	if err != nil {
		return nil, fmt.Errorf("total: %w", err)
	}
	s.Buckets[BucketTotal] = total

	if s.Buckets[BucketAverage], err = average(total, memberSum, len(s.Months), cfg); err != nil {
		return nil, fmt.Errorf("average: %w", err)
	}

	running := decimal.Zero
	for _, name := range s.Order() {
		b := s.Buckets[name]
		running = running.Add(b.Subtotal)
		b.Balance = running
	}
	return s, nil
}

func (bf bucketFilters) bucket(c *ledger.Collection) (*Bucket, error) {
	var b Bucket
	var err error
	if b.Incoming, err = c.Apply("", bf.incoming); err != nil {
		return nil, err
	}
	if b.Outgoing, err = c.Apply("", bf.outgoing); err != nil {
		return nil, err
	}
	if b.Dues, err = c.Apply("", bf.dues); err != nil {
		return nil, err
	}
	b.Other, err = b.Incoming.FilterFunc(func(r ledger.Record) (bool, error) {
		dues, err := bf.dues.Match(r, "")
		return !dues, err
	})
	if err != nil {
		return nil, err
	}

	members, err := b.Dues.GroupBy("hashtag")
	if err != nil {
		return nil, err
	}
	b.Members = len(members)
	b.ARPM = NoARPM
	if b.Members > 0 {
		b.ARPM = bf.rounding.IntQuo(b.Dues.Value(), decimal.NewFromInt(int64(b.Members)))
	}
	b.Subtotal = b.Incoming.Value().Add(b.Outgoing.Value())
	return &b, nil
}

// average turns the Total bucket into per-month means. The amounts become
// single synthetic records so the Average bucket renders like any other.
func average(total *Bucket, memberSum, months int, cfg StatsConfig) (*Bucket, error) {
	if months == 0 {
		return &Bucket{
			Incoming: ledger.NewCollection(),
			Outgoing: ledger.NewCollection(),
			Dues:     ledger.NewCollection(),
			Other:    ledger.NewCollection(),
			ARPM:     NoARPM,
		}, nil
	}

	date, err := month.First(cfg.Reference)
	if err != nil {
		return nil, err
	}
	n := decimal.NewFromInt(int64(months))
	mean := func(c *ledger.Collection, name string) *ledger.Collection {
		v := cfg.Rounding.Quo(c.Value(), n)
		return ledger.NewCollection(ledger.Synthesize(v, date, "average "+name))
	}

	b := &Bucket{
		Incoming: mean(total.Incoming, "incoming"),
		Outgoing: mean(total.Outgoing, "outgoing"),
		Dues:     mean(total.Dues, "dues"),
		Other:    mean(total.Other, "other"),
		Members:  memberSum / months,
		ARPM:     NoARPM,
	}
	// Total dues over member-months rather than the mean of monthly ARPMs,
	// which months with few members would skew.
	if b.Members > 0 {
		b.ARPM = cfg.Rounding.IntQuo(total.Dues.Value(), decimal.NewFromInt(int64(b.Members)*int64(months)))
	}
	b.Subtotal = b.Incoming.Value().Add(b.Outgoing.Value())
	return b, nil
}

// MembersNeededForDues is how many members paying rate per month would
// cover the outgoing amount over months. A zero rate or no months yields 0.
func MembersNeededForDues(rate decimal.Decimal, outgoing *ledger.Collection, months int, rnd ledger.Rounding) int64 {
	if !rate.IsPositive() || months <= 0 {
		return 0
	}
	return rnd.IntQuo(outgoing.Value().Abs(), rate.Mul(decimal.NewFromInt(int64(months))))
}

// DuesNeededForMembers is the monthly rate members would have to pay to
// cover the outgoing amount over months. No members yields 0.
func DuesNeededForMembers(members int, outgoing *ledger.Collection, months int, rnd ledger.Rounding) int64 {
	if members <= 0 || months <= 0 {
		return 0
	}
	return rnd.IntQuo(outgoing.Value().Abs(), decimal.NewFromInt(int64(members)*int64(months)))
}
