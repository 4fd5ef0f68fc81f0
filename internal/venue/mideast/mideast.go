// Package mideast extracts events from the Middle East all-shows calendar.
//
// The calendar is queried one month at a time. Each month's page embeds its
// listings as a JavaScript object literal (`events: [...]`) inside a script
// block rather than serving clean JSON; the array is cut out with a regex
// and decoded leniently, since the literal allows single-quoted strings and
// unquoted keys that a strict JSON decoder rejects.
package mideast

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rockhound/boston-shows/internal/event"
	"github.com/rockhound/boston-shows/internal/fetch"
	"github.com/rockhound/boston-shows/internal/logger"
	"github.com/rockhound/boston-shows/internal/venue"
)

const (
	// VenueName is the canonical name stamped on every record.
	VenueName = "Middle East"

	calendarURL = "http://www.mideastoffers.com/all-shows/"
	eventURL    = "http://www.mideastoffers.com/event/"
)

// eventsArray cuts the embedded listing array out of the page script.
var eventsArray = regexp.MustCompile(`(?s)events: (\[.*?])`)

// listing mirrors one entry of the embedded array. yaml tags let the
// lenient decoder map the JS literal's unquoted keys.
type listing struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Start string `yaml:"start"`
}

// Handler scrapes the Middle East monthly calendars.
type Handler struct {
	client      *fetch.Client
	calendarURL string
}

// New creates a Middle East handler using the shared fetch client.
func New(client *fetch.Client) *Handler {
	return &Handler{
		client:      client,
		calendarURL: calendarURL,
	}
}

// Name returns the canonical venue name.
func (h *Handler) Name() string { return VenueName }

// Fetch walks the window month by month, starting with the month after the
// window's start. A month that fails to fetch or parse is logged and
// skipped; the remaining months still contribute.
func (h *Handler) Fetch(ctx context.Context, w venue.Window) ([]event.Event, error) {
	events := make([]event.Event, 0)

	// Anchor the walk on the first of the start month; adding months to a
	// day-29..31 date would skip or repeat months under AddDate overflow.
	first := time.Date(w.Start.Year(), w.Start.Month(), 1, 0, 0, 0, 0, w.Start.Location())

	for i := 1; i <= w.Months; i++ {
		month := first.AddDate(0, i, 0)

		params := url.Values{}
		params.Set("cal-month", strconv.Itoa(int(month.Month())))
		params.Set("cal-year", strconv.Itoa(month.Year()))

		body, err := h.client.Get(ctx, h.calendarURL, params)
		if err != nil {
			logger.Warn("skipping month", logger.Fields{
				"venue": VenueName,
				"month": month.Format("1/2006"),
				"cause": err.Error(),
			})
			continue
		}

		monthly, err := h.parse(body, w)
		if err != nil {
			logger.Warn("skipping month", logger.Fields{
				"venue": VenueName,
				"month": month.Format("1/2006"),
				"cause": err.Error(),
			})
			continue
		}

		logger.Debug("month parsed", logger.Fields{
			"venue":   VenueName,
			"month":   month.Format("1/2006"),
			"records": len(monthly),
		})
		events = append(events, monthly...)
	}

	return events, nil
}

// parse extracts the embedded listing array from one month's page and maps
// each entry, skipping single listings that cannot be normalized.
func (h *Handler) parse(body []byte, w venue.Window) ([]event.Event, error) {
	matches := eventsArray.FindSubmatch(body)
	if matches == nil {
		return nil, fmt.Errorf("no embedded events array found")
	}

	var listings []listing
	if err := yaml.Unmarshal(matches[1], &listings); err != nil {
		return nil, fmt.Errorf("decoding events array: %w", err)
	}

	events := make([]event.Event, 0, len(listings))
	for i, l := range listings {
		evt, err := h.parseListing(l, w)
		if err != nil {
			logger.Debug("skipping listing", logger.Fields{
				"venue":   VenueName,
				"listing": i,
				"reason":  err.Error(),
			})
			continue
		}
		events = append(events, evt)
	}
	return events, nil
}

// parseListing maps one embedded entry into a canonical event.
func (h *Handler) parseListing(l listing, w venue.Window) (event.Event, error) {
	start, err := event.NormalizeDate(l.Start, w.Start, event.Eastern)
	if err != nil {
		return event.Event{}, fmt.Errorf("parsing start time: %w", err)
	}

	link := ""
	if l.ID != "" {
		link = eventURL + l.ID
	}

	evt := event.New(VenueName, event.SplitBands(l.Title), start, link, false)
	if err := evt.Validate(); err != nil {
		return event.Event{}, err
	}
	return evt, nil
}
