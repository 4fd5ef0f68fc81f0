// Package bowery extracts events from the Bowery Boston show calendar.
//
// The calendar endpoint returns a single HTML page of show-item blocks for
// every Bowery-managed room in Boston. Each block carries the headliner,
// optional supporting acts, a UTC start instant on a calendar widget link,
// a site-relative detail link, and a ticket button whose label flips to
// "Sold Out" when no tickets remain.
package bowery

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rockhound/boston-shows/internal/event"
	"github.com/rockhound/boston-shows/internal/fetch"
	"github.com/rockhound/boston-shows/internal/logger"
	"github.com/rockhound/boston-shows/internal/venue"
)

const (
	// VenueName is the canonical name stamped on every record.
	VenueName = "Bowery Boston"

	baseURL     = "https://www.boweryboston.com"
	calendarURL = baseURL + "/info/events/get"
)

var withPrefix = regexp.MustCompile(`^with\s*`)

// Handler scrapes the Bowery Boston event calendar.
type Handler struct {
	client *fetch.Client
}

// New creates a Bowery Boston handler using the shared fetch client.
func New(client *fetch.Client) *Handler {
	return &Handler{client: client}
}

// Name returns the canonical venue name.
func (h *Handler) Name() string { return VenueName }

// Fetch retrieves the full calendar page and parses every show block.
// The calendar has no date-range query, so the window only supplies the
// reference time for date normalization.
func (h *Handler) Fetch(ctx context.Context, w venue.Window) ([]event.Event, error) {
	params := url.Values{}
	params.Set("scope", "all")
	params.Set("page", "0")
	params.Set("rows", "9999")
	params.Set("venues", "boston")

	doc, err := h.client.GetDocument(ctx, calendarURL, params)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar: %w", err)
	}

	return h.parse(doc, w), nil
}

// parse walks every show-item block, skipping blocks that lack a usable
// start time rather than failing the whole venue.
func (h *Handler) parse(doc *goquery.Document, w venue.Window) []event.Event {
	events := make([]event.Event, 0)

	doc.Find("div.show-item").Each(func(i int, sel *goquery.Selection) {
		evt, err := h.parseShow(sel, w)
		if err != nil {
			logger.Debug("skipping listing", logger.Fields{
				"venue":   VenueName,
				"listing": i,
				"reason":  err.Error(),
			})
			return
		}
		events = append(events, evt)
	})

	return events
}

// parseShow extracts one canonical event from a show-item block.
func (h *Handler) parseShow(sel *goquery.Selection, w venue.Window) (event.Event, error) {
	rawStart, ok := sel.Find("a.calendar-dropdown-item.google").Attr("data-start")
	if !ok {
		return event.Event{}, fmt.Errorf("no data-start attribute")
	}
	start, err := event.NormalizeDate(rawStart, w.Start, event.Eastern)
	if err != nil {
		return event.Event{}, fmt.Errorf("parsing start time: %w", err)
	}

	link := ""
	if href, ok := sel.Find("a").First().Attr("href"); ok {
		link = venue.AbsoluteURL(baseURL, href)
	}

	bands := make([]string, 0, 4)
	if headliner := strings.TrimSpace(sel.Find("div.info-title a").First().Text()); headliner != "" {
		bands = append(bands, headliner)
	}
	if supporting := strings.TrimSpace(sel.Find("div.supporting-acts span").First().Text()); supporting != "" {
		supporting = withPrefix.ReplaceAllString(supporting, "")
		bands = append(bands, event.SplitBands(supporting)...)
	}

	soldout := event.IsSoldOutText(sel.Find("a.button.event.ticket.primary").Text())

	evt := event.New(VenueName, bands, start, link, soldout)
	if err := evt.Validate(); err != nil {
		return event.Event{}, err
	}
	return evt, nil
}
