package ledger

import "errors"

// Error kinds raised by record construction and collection queries.
var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidValue     = errors.New("invalid value")
	ErrInvalidDate      = errors.New("invalid date")
	ErrAmbiguousTag     = errors.New("ambiguous hashtag")
	ErrUnknownField     = errors.New("unknown field")
	ErrInvalidFilter    = errors.New("invalid filter expression")
	ErrInvalidSplit     = errors.New("invalid split range")
	ErrEmptyCollection  = errors.New("empty collection")
	ErrAmbiguousMatch   = errors.New("ambiguous match")
)
