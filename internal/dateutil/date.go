// Package dateutil formats the loosely formatted dates found in VTEX payloads
// for display in customer messages.
package dateutil

import (
	"fmt"
	"regexp"
	"time"
)

var (
	isoLike = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	brLike  = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
)

// Slash dates are read month-first, the same way VTEX's own tooling parses them.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// FormatIfValid returns value as DD/MM/YYYY (UTC) when it holds a parseable
// date, and value unchanged otherwise.
func FormatIfValid(value string) string {
	if !isoLike.MatchString(value) && !brLike.MatchString(value) {
		return value
	}

	t, ok := parse(value)
	if !ok {
		return value
	}

	t = t.UTC()
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}

func parse(value string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
