package models

import (
	"fmt"
	"time"
)

// MonthKey is a transaction date truncated to year and month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthKeyOf returns the month a date falls in.
func MonthKeyOf(date time.Time) MonthKey {
	return MonthKey{Year: date.Year(), Month: date.Month()}
}

// String renders the key as zero-padded YYYY-MM, so lexicographic order of the
// strings matches chronological order.
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
