package store

import (
	"fmt"
	"time"
)

// tsLayout is the stored timestamp format: UTC with fixed millisecond
// precision, so that stored values sort lexically in time order. It matches
// the ISO-8601 form of exported records.
const tsLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTS(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

func parseTS(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatListTime renders t in local time as Y/M/D H:MM, the compact form
// used in entry listings.
func FormatListTime(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%d/%d/%d %d:%02d", t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}
