package ledger

import (
	"fmt"
	"strconv"
)

// Field names a record attribute addressable from filters and grouping.
type Field int

const (
	FieldValue Field = iota + 1
	FieldDate
	FieldComment
	FieldDirection
	FieldMonth
	FieldHashtag
	FieldRelMonths
)

var fieldNames = map[string]Field{
	"value":      FieldValue,
	"date":       FieldDate,
	"comment":    FieldComment,
	"direction":  FieldDirection,
	"month":      FieldMonth,
	"hashtag":    FieldHashtag,
	"rel_months": FieldRelMonths,
}

// ParseField resolves a field name.
func ParseField(name string) (Field, error) {
	f, ok := fieldNames[name]
	if !ok {
		return 0, fmt.Errorf("field %q: %w", name, ErrUnknownField)
	}
	return f, nil
}

func (f Field) String() string {
	for name, v := range fieldNames {
		if v == f {
			return name
		}
	}
	return "field(" + strconv.Itoa(int(f)) + ")"
}

// text returns the textual form of field f of r. ok is false only for an
// untagged record's hashtag. ref is consulted for rel_months alone.
func (r Record) text(f Field, ref string) (s string, ok bool, err error) {
	switch f {
	case FieldValue:
		return r.value.String(), true, nil
	case FieldDate:
		return r.date.String(), true, nil
	case FieldComment:
		return r.comment, true, nil
	case FieldDirection:
		return string(r.direction), true, nil
	case FieldMonth:
		return r.Month(), true, nil
	case FieldHashtag:
		return r.Hashtag()
	case FieldRelMonths:
		n, err := r.RelMonths(ref)
		if err != nil {
			return "", false, err
		}
		return strconv.Itoa(n), true, nil
	}
	return "", false, fmt.Errorf("%s: %w", f, ErrUnknownField)
}
