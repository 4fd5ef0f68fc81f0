// Package crossroads extracts events from Crossroads Presents venue
// calendars (Paradise Rock Club and Brighton Music Hall).
//
// Both rooms share one JSON API that serves a single month of listings per
// request (`month_events.json?period=N`, where period 0 is the current
// month). Listings are grouped by day and mixed with non-music bookings,
// which are filtered out.
package crossroads

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rockhound/boston-shows/internal/event"
	"github.com/rockhound/boston-shows/internal/fetch"
	"github.com/rockhound/boston-shows/internal/logger"
	"github.com/rockhound/boston-shows/internal/venue"
)

const baseURL = "http://events.crossroadspresents.com"

// Venue slugs on the Crossroads calendar site.
const (
	ParadiseName = "Paradise Rock Club"
	ParadiseSlug = "paradise-rock-club"

	BrightonName = "Brighton Music Hall"
	BrightonSlug = "brighton-music-hall"
)

// monthResponse mirrors one month of the calendar API.
type monthResponse struct {
	EventGroups []struct {
		Events []apiEvent `json:"events"`
	} `json:"event_groups"`
}

type apiEvent struct {
	Title         string `json:"title"`
	Permalink     string `json:"permalink"`
	BeginDate     string `json:"tz_adjusted_begin_date"`
	CategoryParam string `json:"category_param"`
	SoldOut       bool   `json:"sold_out"`
	Artists       []struct {
		Title string `json:"title"`
	} `json:"artists"`
}

// Handler queries one Crossroads venue's monthly calendar API.
type Handler struct {
	client  *fetch.Client
	name    string
	baseURL string
	slug    string
}

// New creates a handler for the named Crossroads venue.
func New(client *fetch.Client, name, slug string) *Handler {
	return &Handler{
		client:  client,
		name:    name,
		baseURL: baseURL,
		slug:    slug,
	}
}

// NewParadise creates the Paradise Rock Club handler.
func NewParadise(client *fetch.Client) *Handler {
	return New(client, ParadiseName, ParadiseSlug)
}

// NewBrighton creates the Brighton Music Hall handler.
func NewBrighton(client *fetch.Client) *Handler {
	return New(client, BrightonName, BrightonSlug)
}

// Name returns the canonical venue name.
func (h *Handler) Name() string { return h.name }

// Fetch requests one month per period across the window. A month that
// fails to fetch is logged and skipped; the rest still contribute.
func (h *Handler) Fetch(ctx context.Context, w venue.Window) ([]event.Event, error) {
	events := make([]event.Event, 0)

	for period := 0; period < w.Months; period++ {
		params := url.Values{}
		params.Set("period", strconv.Itoa(period))

		var month monthResponse
		monthURL := fmt.Sprintf("%s/venues/%s/month_events.json", h.baseURL, h.slug)
		if err := h.client.GetJSON(ctx, monthURL, params, &month); err != nil {
			logger.Warn("skipping month", logger.Fields{
				"venue":  h.name,
				"period": period,
				"cause":  err.Error(),
			})
			continue
		}

		monthly := h.parse(month, w)
		logger.Debug("month parsed", logger.Fields{
			"venue":   h.name,
			"period":  period,
			"records": len(monthly),
		})
		events = append(events, monthly...)
	}

	return events, nil
}

// parse maps one month of grouped listings, keeping music bookings only
// and skipping single listings that cannot be normalized.
func (h *Handler) parse(month monthResponse, w venue.Window) []event.Event {
	events := make([]event.Event, 0)

	for _, group := range month.EventGroups {
		for _, raw := range group.Events {
			if raw.CategoryParam != "music" {
				continue
			}
			evt, err := h.parseListing(raw, w)
			if err != nil {
				logger.Debug("skipping listing", logger.Fields{
					"venue":  h.name,
					"title":  raw.Title,
					"reason": err.Error(),
				})
				continue
			}
			events = append(events, evt)
		}
	}

	return events
}

// parseListing maps one API listing into a canonical event. Bands come
// from the artists array; bookings without one fall back to the title.
func (h *Handler) parseListing(raw apiEvent, w venue.Window) (event.Event, error) {
	start, err := event.NormalizeDate(raw.BeginDate, w.Start, event.Eastern)
	if err != nil {
		return event.Event{}, fmt.Errorf("parsing begin date: %w", err)
	}

	var bands []string
	if len(raw.Artists) > 0 {
		bands = make([]string, 0, len(raw.Artists))
		for _, artist := range raw.Artists {
			bands = append(bands, artist.Title)
		}
	} else if raw.Title != "" {
		bands = []string{raw.Title}
	}

	link := venue.AbsoluteURL(h.baseURL, raw.Permalink)

	evt := event.New(h.name, bands, start, link, raw.SoldOut)
	if err := evt.Validate(); err != nil {
		return event.Event{}, err
	}
	return evt, nil
}
