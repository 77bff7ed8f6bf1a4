package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar-date form accepted for renewal dates.
	DateLayout = "2006-01-02"
	// StoredLayout is fixed width so stored timestamps sort lexically.
	StoredLayout = "2006-01-02T15:04:05.000000-07:00"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	DateLayout,
}

// FormatTimestamp renders t in the ISO-8601 form used for stored records.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(StoredLayout)
}

// ParseTimestamp decodes a stored ISO-8601 date or datetime string.
// Values without a zone are interpreted as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", value)
}
