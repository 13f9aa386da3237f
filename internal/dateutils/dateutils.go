// Package dateutils parses the date formats seen in upstream spreadsheet
// exports.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date format layouts tried when parsing source rows. Indian bank exports
// are DD/MM/YYYY first; US-style and ISO variants follow.
const (
	LayoutIndian = "02/01/2006"
	LayoutUS     = "01/02/2006"
	LayoutISO    = "2006-01-02"
)

var layouts = []string{
	LayoutIndian,
	LayoutUS,
	LayoutISO,
	"02-01-2006",
	"2006/01/02",
	"2-Jan-2006",
}

// ParseDate parses a source date string, trying each known layout in order.
// A day that is valid in both DD/MM and MM/DD reads as DD/MM.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
}

// Day truncates t to calendar-day precision in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
