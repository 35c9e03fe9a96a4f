package codec

// Package codec holds the scalar coercion rules that are more than a single
// strconv call. Each rule is named and isolated so a schema annotation can
// take over its trigger condition later.

import (
	"strings"
	"time"
)

// LooksLikeDateTime is the trigger for the date-time rule on long fields:
// ISO-8601 date-times always contain the literal 'T' separator, base-10
// integers never do. The heuristic is deliberately crude — any long field
// whose text contains a 'T' is parsed as a date-time — and is kept for
// compatibility with existing data.
func LooksLikeDateTime(text string) bool {
	return strings.Contains(text, "T")
}

// ParseDateTimeMillis converts a timezone-qualified ISO-8601 date-time such
// as "2018-05-09T14:00:28-07:00" into milliseconds since the Unix epoch,
// normalized to UTC.
func ParseDateTimeMillis(text string) (int64, error) {
	t, err := parseISO8601(text)
	if err != nil {
		return 0, err
	}
	return t.UTC().UnixMilli(), nil
}

func parseISO8601(s string) (time.Time, error) {
	// Accept fractional seconds when present (trailing zeros optional).
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
