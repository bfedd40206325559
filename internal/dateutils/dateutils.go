// Package dateutils provides the calendar-date handling shared by the
// validator, the stores and the CSV import/export.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayoutISO is the only layout accepted for transaction dates.
const DateLayoutISO = "2006-01-02"

// ParseISODate parses a YYYY-MM-DD calendar date. Surrounding whitespace is
// ignored; anything else that is not an exact, in-range date is rejected.
// The result is midnight UTC.
func ParseISODate(dateStr string) (time.Time, error) {
	s := strings.TrimSpace(dateStr)
	if len(s) != len(DateLayoutISO) {
		return time.Time{}, fmt.Errorf("date %q is not in YYYY-MM-DD format", dateStr)
	}
	t, err := time.Parse(DateLayoutISO, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not a valid calendar date: %w", dateStr, err)
	}
	return t, nil
}

// ToISODate formats a date as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// TruncateToDate drops the time-of-day and location, keeping the calendar
// date as midnight UTC.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
