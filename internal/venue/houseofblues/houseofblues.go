// Package houseofblues extracts events from the House of Blues Boston
// event-calendar API.
//
// The API accepts an explicit date range, so the full window is forwarded.
// Its response is a JSON string literal wrapping the real payload with
// backslash-escaped quotes; the body must be unwrapped before decoding.
package houseofblues

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rockhound/boston-shows/internal/event"
	"github.com/rockhound/boston-shows/internal/fetch"
	"github.com/rockhound/boston-shows/internal/logger"
	"github.com/rockhound/boston-shows/internal/venue"
)

const (
	// VenueName is the canonical name stamped on every record.
	VenueName = "House of Blues Boston"

	eventsURL = "http://www.houseofblues.com/boston/api/EventCalendar/GetEvents"
	detailURL = "http://www.houseofblues.com/boston/EventDetail?tmeventid=%s&offerid=0"

	// Ticketmaster venue ID for the Boston room.
	venueID = 9044
)

// apiResponse mirrors the unwrapped GetEvents payload.
type apiResponse struct {
	Result []apiEvent `json:"result"`
}

type apiEvent struct {
	Title     string      `json:"title"`
	EventID   json.Number `json:"eventID"`
	EventDate string      `json:"eventDate"`
	SoldOut   bool        `json:"soldOut"`
	Artists   []apiArtist `json:"artists"`
}

type apiArtist struct {
	Name string `json:"name"`
}

// Handler queries the House of Blues Boston calendar API.
type Handler struct {
	client    *fetch.Client
	eventsURL string
}

// New creates a House of Blues handler using the shared fetch client.
func New(client *fetch.Client) *Handler {
	return &Handler{
		client:    client,
		eventsURL: eventsURL,
	}
}

// Name returns the canonical venue name.
func (h *Handler) Name() string { return VenueName }

// Fetch queries the calendar API for the window's date range and maps each
// result into a canonical event.
func (h *Handler) Fetch(ctx context.Context, w venue.Window) ([]event.Event, error) {
	params := url.Values{}
	params.Set("startDate", w.Start.Format("01/02/2006"))
	params.Set("endDate", w.End().Format("01/02/2006"))
	params.Set("venueIds", strconv.Itoa(venueID))
	params.Set("limit", "9999")
	params.Set("offset", "1")
	params.Set("genre", "")
	params.Set("artist", "")
	params.Set("offerType", "STANDARD,STANDARD - Priority")

	body, err := h.client.Get(ctx, h.eventsURL, params)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar: %w", err)
	}

	return h.parse(body, w)
}

// parse unwraps the string-wrapped payload and maps its results.
func (h *Handler) parse(body []byte, w venue.Window) ([]event.Event, error) {
	payload, err := unwrap(body)
	if err != nil {
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decoding calendar payload: %w", err)
	}

	events := make([]event.Event, 0, len(resp.Result))
	for i, raw := range resp.Result {
		evt, err := h.parseListing(raw, w)
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

// parseListing maps one API result into a canonical event.
func (h *Handler) parseListing(raw apiEvent, w venue.Window) (event.Event, error) {
	start, err := event.NormalizeDate(raw.EventDate, w.Start, event.Eastern)
	if err != nil {
		return event.Event{}, fmt.Errorf("parsing event date: %w", err)
	}

	// The first artist is the headliner; further entries repeat the title
	// for co-headlined shows and are dropped when they do.
	bands := make([]string, 0, len(raw.Artists))
	for i, artist := range raw.Artists {
		if i > 0 && strings.EqualFold(artist.Name, raw.Title) {
			continue
		}
		bands = append(bands, artist.Name)
	}

	link := ""
	if raw.EventID.String() != "" {
		link = fmt.Sprintf(detailURL, raw.EventID.String())
	}

	evt := event.New(VenueName, bands, start, link, raw.SoldOut)
	if err := evt.Validate(); err != nil {
		return event.Event{}, err
	}
	return evt, nil
}

// unwrap strips the outer string literal and unescapes the quoted payload.
func unwrap(body []byte) ([]byte, error) {
	s := strings.TrimSpace(string(body))
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return nil, fmt.Errorf("calendar payload is not string-wrapped")
	}
	s = s[1 : len(s)-1]
	s = strings.ReplaceAll(s, `\"`, `"`)
	return []byte(s), nil
}
