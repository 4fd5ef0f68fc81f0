package event

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnparseableDate is returned when date text matches no known layout.
// Handlers respond by skipping the single listing that carried the text.
var ErrUnparseableDate = errors.New("unparseable date text")

// Eastern is the local time zone for every Boston venue. Canonical start
// times carry this zone's offset, respecting DST at the event's date.
var Eastern = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// No tzdata available; a fixed EST offset is the closest fallback.
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// Layouts carrying a full date. Ones with an explicit offset are parsed
// as-is and converted to loc; the rest are taken as local wall-clock time.
var datedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006 3:04 PM",
	"01/02/2006",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"Jan 2 2006",
}

// Layouts missing the year; the year is inferred from now (see inferYear).
var yearlessLayouts = []string{
	"Jan 2, 3:04 PM",
	"Jan 2 3:04 PM",
	"Jan 2",
	"January 2",
	"01/02 3:04 PM",
	"01/02",
}

// NormalizeDate parses venue-specific date text into a time in loc.
// Text without a year is resolved forward-looking relative to now: a
// month/day earlier in the calendar than now's month/day belongs to next
// year, since listings never point backward across a year boundary.
// Returns ErrUnparseableDate when no layout matches.
func NormalizeDate(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty text", ErrUnparseableDate)
	}

	for _, layout := range datedLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t.In(loc), nil
		}
	}

	for _, layout := range yearlessLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			year := inferYear(t.Month(), t.Day(), now)
			return time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, raw)
}

// inferYear picks the year for a month/day with none given: the current
// year when the date is on or after today's month/day, otherwise next year.
func inferYear(month time.Month, day int, now time.Time) int {
	if month < now.Month() || (month == now.Month() && day < now.Day()) {
		return now.Year() + 1
	}
	return now.Year()
}
