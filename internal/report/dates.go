package report

import (
	"fmt"
	"strings"
	"time"
)

// FormatDateUS renders a timestamp the way the dashboard shows it:
// MM/DD/YYYY with a 12-hour clock.
func FormatDateUS(t time.Time) string {
	return t.Format("01/02/2006 03:04 PM")
}

// FormatDateShortUS renders just the date part.
func FormatDateShortUS(t time.Time) string {
	return t.Format("01/02/2006")
}

// inputLayouts are the forms users may type for a range bound, most
// specific first.
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseInputDate parses a user-supplied date or datetime.
func ParseInputDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}

	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD or YYYY-MM-DDTHH:MM)", value)
}
