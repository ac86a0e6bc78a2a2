package ledger

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/month"
)

// DateFormat is the textual date layout used by ledger files and filters.
const DateFormat = "2006-01-02"

// Direction tells whether money came in or went out.
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Incoming, Outgoing:
		return d, nil
	}
	return "", fmt.Errorf("direction %q: %w", s, ErrInvalidDirection)
}

// Record is a single cash transaction. The value is signed at construction
// (outgoing amounts are negative) and never changes afterwards.
type Record struct {
	value     decimal.Decimal
	date      civil.Date
	comment   string
	direction Direction
}

// NewRecord parses one ledger row. The value of an outgoing record is negated.
func NewRecord(valueText, dateText, comment, direction string) (Record, error) {
	dir, err := ParseDirection(direction)
	if err != nil {
		return Record{}, err
	}

	value, err := decimal.NewFromString(strings.TrimSpace(valueText))
	if err != nil {
		return Record{}, fmt.Errorf("parsing value %q: %w: %v", valueText, ErrInvalidValue, err)
	}

	date, err := parseDate(dateText)
	if err != nil {
		return Record{}, err
	}

	if dir == Outgoing {
		value = value.Neg()
	}

	return Record{value: value, date: date, comment: comment, direction: dir}, nil
}

// Synthesize builds a record from an already signed value. Negative values
// are outgoing, everything else is incoming.
func Synthesize(value decimal.Decimal, date civil.Date, comment string) Record {
	dir := Incoming
	if value.IsNegative() {
		dir = Outgoing
	}
	return Record{value: value, date: date, comment: comment, direction: dir}
}

func parseDate(text string) (civil.Date, error) {
	date, err := civil.ParseDate(strings.TrimSpace(text))
	if err != nil {
		return civil.Date{}, fmt.Errorf("parsing date %q: %w: %v", text, ErrInvalidDate, err)
	}
	return date, nil
}

// derive copies r with a new value and date, keeping comment and direction.
func (r Record) derive(value decimal.Decimal, date civil.Date) Record {
	return Record{value: value, date: date, comment: r.comment, direction: r.direction}
}

// Value returns the signed amount.
func (r Record) Value() decimal.Decimal { return r.value }

// Date returns the transaction date.
func (r Record) Date() civil.Date { return r.date }

// Comment returns the free-text comment.
func (r Record) Comment() string { return r.comment }

// Direction returns incoming or outgoing.
func (r Record) Direction() Direction { return r.direction }

// Add returns the record value plus d.
func (r Record) Add(d decimal.Decimal) decimal.Decimal {
	return r.value.Add(d)
}

// AddRecord returns the sum of both record values.
func (r Record) AddRecord(o Record) decimal.Decimal {
	return r.value.Add(o.value)
}

// Month returns the "YYYY-MM" key of the record date.
func (r Record) Month() string {
	return month.Of(r.date)
}

// RelMonths returns the signed month distance from ref to the record month.
func (r Record) RelMonths(ref string) (int, error) {
	return month.Offset(ref, r.Month())
}

// Hashtag returns the single #tag of the comment without the leading '#'.
// ok is false when the comment has no tag; more than one tag is an error.
func (r Record) Hashtag() (tag string, ok bool, err error) {
	tags := tagTokens(r.comment)
	switch len(tags) {
	case 0:
		return "", false, nil
	case 1:
		return tags[0], true, nil
	}
	return "", false, fmt.Errorf("comment %q has %d hashtags: %w", r.comment, len(tags), ErrAmbiguousTag)
}

// Matches reports whether the named field equals literal. Values compare
// numerically and dates by calendar day; a missing hashtag never matches.
func (r Record) Matches(field, literal string) (bool, error) {
	f, err := ParseField(field)
	if err != nil {
		return false, err
	}
	if f == FieldRelMonths {
		return false, fmt.Errorf("field %q needs a reference month: %w", field, ErrUnknownField)
	}
	flt, err := newFilter(f, OpEqual, literal)
	if err != nil {
		return false, err
	}
	return flt.Match(r, "")
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s %s %q", r.date, r.direction, r.value, r.comment)
}

func tagTokens(s string) []string {
	var tags []string
	for _, tok := range strings.Fields(s) {
		if len(tok) > 1 && tok[0] == '#' {
			tags = append(tags, tok[1:])
		}
	}
	return tags
}
