package event

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a single concert listing normalized to the canonical schema.
// Every field is always present in the JSON form; missing information is an
// empty string, an empty slice, or false, never an omitted key.
type Event struct {
	Venue   string    `json:"venue"`
	Bands   []string  `json:"bands"`
	Start   time.Time `json:"start"`
	Link    string    `json:"link"`
	Soldout bool      `json:"soldout"`
}

// New creates an Event with trimmed string fields and a non-nil bands slice.
func New(venue string, bands []string, start time.Time, link string, soldout bool) Event {
	cleaned := make([]string, 0, len(bands))
	for _, b := range bands {
		b = strings.TrimSpace(b)
		if b != "" {
			cleaned = append(cleaned, b)
		}
	}
	return Event{
		Venue:   strings.TrimSpace(venue),
		Bands:   cleaned,
		Start:   start,
		Link:    strings.TrimSpace(link),
		Soldout: soldout,
	}
}

// Validate checks that the record satisfies the schema invariants: a venue
// name and a determinable start time. Records failing validation are dropped
// by their handler rather than emitted.
func (e Event) Validate() error {
	if e.Venue == "" {
		return fmt.Errorf("event has no venue name")
	}
	if e.Start.IsZero() {
		return fmt.Errorf("event at %s has no start time", e.Venue)
	}
	if e.Bands == nil {
		return fmt.Errorf("event at %s has nil bands slice", e.Venue)
	}
	return nil
}
