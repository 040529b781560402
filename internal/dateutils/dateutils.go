// Package dateutils provides common date and time operations used throughout the application.
package dateutils

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO     = "2006-01-02"
	DateLayoutFull    = "2006-01-02 15:04:05"
	DateLayoutRFC3339 = time.RFC3339
	MonthKeyLayout    = "2006-01"
	YearKeyLayout     = "2006"
)

// CommonFormats is a list of standard formats to try when parsing dates
var CommonFormats = []string{
	DateLayoutRFC3339,
	DateLayoutFull,
	DateLayoutISO,
	"2006-01-02T15:04:05",
	"02.01.2006",
	"01/02/2006",
	"Jan 2, 2006",
}

// ParseDate attempts to parse a date string using multiple common formats.
// Returns the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = strings.TrimSpace(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToUTC normalizes a timestamp to UTC. A zero-offset location parsed from a
// naive string is already effectively UTC; an aware timestamp is converted.
// The local system timezone is never assumed.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// MonthKey returns the "YYYY-MM" bucket key for a date.
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthKeyLayout)
}

// QuarterKey returns the "YYYY-Qn" bucket key for a date.
func QuarterKey(t time.Time) string {
	q := (int(t.UTC().Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", t.UTC().Year(), q)
}

// YearKey returns the "YYYY" bucket key for a date.
func YearKey(t time.Time) string {
	return t.UTC().Format(YearKeyLayout)
}

// SortedKeys returns the keys of a bucket map in ascending order. The
// "YYYY-MM" and "YYYY-Qn" layouts sort chronologically under plain string
// ordering.
func SortedKeys[V any](buckets map[string]V) []string {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DaysSince returns the whole days elapsed from t to now, both forced to UTC.
func DaysSince(t, now time.Time) int {
	return int(now.UTC().Sub(t.UTC()).Hours() / 24)
}

// DaysBetween returns the whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(b.UTC().Sub(a.UTC()).Hours() / 24)
}

// FormatDate formats a time.Time value according to the specified layout.
// If no layout is provided, DateLayoutISO is used.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}
