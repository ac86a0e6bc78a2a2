package ledger

import (
	"fmt"
	"slices"
	"sort"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Collection is an ordered list of records. Filtering and grouping return
// new collections over the same record values.
type Collection struct {
	records []Record
}

// NewCollection creates a Collection holding records in the given order.
func NewCollection(records ...Record) *Collection {
	return &Collection{records: slices.Clone(records)}
}

// Append adds records at the end.
func (c *Collection) Append(records ...Record) {
	c.records = append(c.records, records...)
}

// AppendCollection adds every member of o at the end, in order.
func (c *Collection) AppendCollection(o *Collection) {
	c.records = append(c.records, o.records...)
}

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.records) }

// At returns the i-th record in insertion order.
func (c *Collection) At(i int) Record { return c.records[i] }

// Records returns a copy of the members.
func (c *Collection) Records() []Record {
	return slices.Clone(c.records)
}

// Value sums all member values. The empty collection sums to zero.
func (c *Collection) Value() decimal.Decimal {
	total := decimal.Zero
	for _, r := range c.records {
		total = r.Add(total)
	}
	return total
}

// Last returns the chronologically latest record. Ties keep the earliest
// inserted record.
func (c *Collection) Last() (Record, error) {
	if len(c.records) == 0 {
		return Record{}, ErrEmptyCollection
	}
	last := c.records[0]
	for _, r := range c.records[1:] {
		if r.date.After(last.date) {
			last = r
		}
	}
	return last, nil
}

// SortByDate returns a new collection in date order; records sharing a date
// keep their relative order.
func (c *Collection) SortByDate() *Collection {
	sorted := c.Records()
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return compareDates(a.date, b.date)
	})
	return &Collection{records: sorted}
}

// Filter keeps the records satisfying every expression. ref is the
// reference month for rel_months. No expressions keeps everything.
func (c *Collection) Filter(ref string, exprs []string) (*Collection, error) {
	filters, err := ParseFilters(exprs)
	if err != nil {
		return nil, err
	}
	return c.Apply(ref, filters...)
}

// Apply is Filter for already parsed expressions.
func (c *Collection) Apply(ref string, filters ...Filter) (*Collection, error) {
	return c.FilterFunc(func(r Record) (bool, error) {
		for _, f := range filters {
			ok, err := f.Match(r, ref)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	})
}

// FilterFunc keeps the records for which keep returns true.
func (c *Collection) FilterFunc(keep func(Record) (bool, error)) (*Collection, error) {
	out := &Collection{}
	for _, r := range c.records {
		ok, err := keep(r)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", r, err)
		}
		if ok {
			out.records = append(out.records, r)
		}
	}
	return out, nil
}

// Labeler maps a record to a display label. ok=false leaves the record out.
type Labeler func(r Record) (label string, ok bool, err error)

// Partition groups records under the label chosen by label. Records keep
// their relative order inside each group.
func (c *Collection) Partition(label Labeler) (map[string]*Collection, error) {
	groups := make(map[string]*Collection)
	for _, r := range c.records {
		key, ok, err := label(r)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", r, err)
		}
		if !ok {
			continue
		}
		g, seen := groups[key]
		if !seen {
			g = &Collection{}
			groups[key] = g
		}
		g.records = append(g.records, r)
	}
	return groups, nil
}

// GroupBy partitions the records by a field's textual value. Untagged
// records are left out when grouping by hashtag.
func (c *Collection) GroupBy(field string) (map[string]*Collection, error) {
	f, err := ParseField(field)
	if err != nil {
		return nil, err
	}
	if f == FieldRelMonths {
		return nil, fmt.Errorf("cannot group by %q without a reference month: %w", field, ErrUnknownField)
	}
	return c.Partition(func(r Record) (string, bool, error) {
		return r.text(f, "")
	})
}

// Months returns the distinct month keys of the members in ascending order.
func (c *Collection) Months() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, r := range c.records {
		m := r.Month()
		if !seen[m] {
			seen[m] = true
			keys = append(keys, m)
		}
	}
	sort.Strings(keys)
	return keys
}

// RelMonths returns each member's month offset from ref, in insertion order.
func (c *Collection) RelMonths(ref string) ([]int, error) {
	offsets := make([]int, len(c.records))
	for i, r := range c.records {
		n, err := r.RelMonths(ref)
		if err != nil {
			return nil, err
		}
		offsets[i] = n
	}
	return offsets, nil
}

// Payment is the result of looking a tag up in a set of payments.
type Payment struct {
	Found bool
	Value decimal.Decimal // amount paid, positive for outgoing payments
	Date  civil.Date
}

// FindHashtag looks for the single record tagged #tag. A tag carried by
// more than one record is an error rather than an arbitrary pick, and so is
// any record with more than one tag.
func (c *Collection) FindHashtag(tag string) (Payment, error) {
	var found []Record
	for _, r := range c.records {
		t, ok, err := r.Hashtag()
		if err != nil {
			return Payment{}, err
		}
		if ok && t == tag {
			found = append(found, r)
		}
	}
	switch len(found) {
	case 0:
		return Payment{}, nil
	case 1:
		return Payment{Found: true, Value: found[0].value.Neg(), Date: found[0].date}, nil
	}
	return Payment{}, fmt.Errorf("#%s found in %d records: %w", tag, len(found), ErrAmbiguousMatch)
}
