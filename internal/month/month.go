package month

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Format returns a month key like "2025-01".
func Format(year int, m time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(m))
}

// Of returns the month key of a calendar date.
func Of(d civil.Date) string {
	return Format(d.Year, d.Month)
}

// Parse parses "2025-01" into year and month.
func Parse(key string) (year int, m time.Month, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid month key format: %q", key)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in month key %q: %w", key, err)
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in month key %q: %w", key, err)
	}
	if n < 1 || n > 12 {
		return 0, 0, fmt.Errorf("month out of range in month key %q", key)
	}

	return year, time.Month(n), nil
}

// First returns the first day of the month named by key.
func First(key string) (civil.Date, error) {
	year, m, err := Parse(key)
	if err != nil {
		return civil.Date{}, err
	}
	return civil.Date{Year: year, Month: m, Day: 1}, nil
}

// Offset returns the signed number of months from ref to key.
// Offset("2025-01", "2024-11") == -2.
func Offset(ref, key string) (int, error) {
	ry, rm, err := Parse(ref)
	if err != nil {
		return 0, err
	}
	ky, km, err := Parse(key)
	if err != nil {
		return 0, err
	}
	return index(ky, km) - index(ry, rm), nil
}

// Add shifts key by n months.
func Add(key string, n int) (string, error) {
	year, m, err := Parse(key)
	if err != nil {
		return "", err
	}
	i := index(year, m) + n
	return Format(i/12, time.Month(i%12+1)), nil
}

// Range returns every key from..to inclusive, in order.
// An empty slice is returned when to precedes from.
func Range(from, to string) ([]string, error) {
	n, err := Offset(from, to)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, max(n+1, 0))
	for i := 0; i <= n; i++ {
		k, err := Add(from, i)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func index(year int, m time.Month) int {
	return year*12 + int(m) - 1
}
