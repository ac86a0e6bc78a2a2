package aggregate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cleared-dev/cashbook/internal/ledger"
)

// TagLabel labels records by their capitalised hashtag, merging incoming
// and outgoing amounts. Untagged records get the untagged label.
func TagLabel(untagged string) ledger.Labeler {
	return func(r ledger.Record) (string, bool, error) {
		tag, ok, err := r.Hashtag()
		if err != nil {
			return "", false, err
		}
		if !ok {
			return untagged, true, nil
		}
		return Capitalize(tag), true, nil
	}
}

// DirectionalTagLabel is TagLabel with separate rows per direction.
func DirectionalTagLabel(untagged string) ledger.Labeler {
	base := TagLabel(untagged)
	return func(r ledger.Record) (string, bool, error) {
		label, ok, err := base(r)
		if err != nil || !ok {
			return label, ok, err
		}
		if r.Direction() == ledger.Incoming {
			return label + " (in)", true, nil
		}
		return label + " (out)", true, nil
	}
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
