package ledger

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Operator is a filter comparison.
type Operator string

const (
	OpEqual    Operator = "=="
	OpNotEqual Operator = "!="
	OpGreater  Operator = ">"
	OpLess     Operator = "<"
	OpMatch    Operator = "=~" // partial regular expression match
)

// Two-character operators first so "==" is never read as a prefix of another.
var operators = []Operator{OpEqual, OpNotEqual, OpMatch, OpGreater, OpLess}

// Filter is one parsed "<field><op><literal>" expression.
type Filter struct {
	Field   Field
	Op      Operator
	Literal string

	value  decimal.Decimal
	date   civil.Date
	months int
	re     *regexp.Regexp
}

// ParseFilter parses an expression such as "hashtag=~^dues:" or "rel_months<0".
func ParseFilter(expr string) (Filter, error) {
	i := 0
	for i < len(expr) && (expr[i] >= 'a' && expr[i] <= 'z' || expr[i] == '_') {
		i++
	}
	if i == 0 {
		return Filter{}, fmt.Errorf("%q: missing field name: %w", expr, ErrInvalidFilter)
	}

	field, err := ParseField(expr[:i])
	if err != nil {
		return Filter{}, fmt.Errorf("%q: %w", expr, err)
	}

	rest := expr[i:]
	for _, op := range operators {
		if strings.HasPrefix(rest, string(op)) {
			f, err := newFilter(field, op, rest[len(op):])
			if err != nil {
				return Filter{}, fmt.Errorf("%q: %w", expr, err)
			}
			return f, nil
		}
	}
	return Filter{}, fmt.Errorf("%q: missing operator: %w", expr, ErrInvalidFilter)
}

// ParseFilters parses every expression, failing on the first bad one.
func ParseFilters(exprs []string) ([]Filter, error) {
	filters := make([]Filter, 0, len(exprs))
	for _, expr := range exprs {
		f, err := ParseFilter(expr)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func newFilter(field Field, op Operator, literal string) (Filter, error) {
	f := Filter{Field: field, Op: op, Literal: literal}

	if op == OpMatch {
		re, err := regexp.Compile(literal)
		if err != nil {
			return Filter{}, fmt.Errorf("pattern %q: %w: %v", literal, ErrInvalidFilter, err)
		}
		f.re = re
		return f, nil
	}

	var err error
	switch field {
	case FieldValue:
		f.value, err = decimal.NewFromString(literal)
		if err != nil {
			return Filter{}, fmt.Errorf("parsing value %q: %w: %v", literal, ErrInvalidValue, err)
		}
	case FieldDate:
		f.date, err = parseDate(literal)
		if err != nil {
			return Filter{}, err
		}
	case FieldRelMonths:
		f.months, err = strconv.Atoi(literal)
		if err != nil {
			return Filter{}, fmt.Errorf("rel_months %q: %w: %v", literal, ErrInvalidFilter, err)
		}
	}
	return f, nil
}

// Match evaluates the filter against r. ref is the reference month used by
// rel_months. An untagged record only satisfies "hashtag!=...".
func (f Filter) Match(r Record, ref string) (bool, error) {
	text, ok, err := r.text(f.Field, ref)
	if err != nil {
		return false, err
	}
	if !ok {
		return f.Op == OpNotEqual, nil
	}

	if f.re != nil {
		return f.re.MatchString(text), nil
	}

	var c int
	switch f.Field {
	case FieldValue:
		c = r.value.Cmp(f.value)
	case FieldDate:
		c = compareDates(r.date, f.date)
	case FieldRelMonths:
		n, _ := strconv.Atoi(text)
		c = cmp.Compare(n, f.months)
	default:
		c = strings.Compare(text, f.Literal)
	}

	switch f.Op {
	case OpEqual:
		return c == 0, nil
	case OpNotEqual:
		return c != 0, nil
	case OpGreater:
		return c > 0, nil
	case OpLess:
		return c < 0, nil
	}
	return false, fmt.Errorf("operator %q: %w", f.Op, ErrInvalidFilter)
}

func (f Filter) String() string {
	return f.Field.String() + string(f.Op) + f.Literal
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
