package crossroads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/rockhound/boston-shows/internal/event"
	"github.com/rockhound/boston-shows/internal/fetch"
	"github.com/rockhound/boston-shows/internal/venue"
)

func loadFixture(t *testing.T) monthResponse {
	t.Helper()
	data, err := os.ReadFile("../../../testdata/fixtures/crossroads.json")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	var month monthResponse
	if err := json.Unmarshal(data, &month); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return month
}

func testWindow() venue.Window {
	return venue.Window{
		Start:  time.Date(2021, time.March, 1, 0, 0, 0, 0, event.Eastern),
		Months: 12,
	}
}

func TestParse(t *testing.T) {
	h := NewParadise(fetch.New(0))
	events := h.parse(loadFixture(t), testWindow())

	// Four listings in the fixture: one non-music and one with no begin
	// date are dropped, leaving two.
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	first := events[0]
	if first.Venue != ParadiseName {
		t.Errorf("venue = %q, want %q", first.Venue, ParadiseName)
	}
	if !reflect.DeepEqual(first.Bands, []string{"The Expendables", "Through the Roots", "Pacific Dub"}) {
		t.Errorf("bands = %v, want artists array", first.Bands)
	}
	if got := first.Start.Format(time.RFC3339); got != "2021-03-02T18:00:00-05:00" {
		t.Errorf("start = %s, want offset-adjusted begin date", got)
	}
	if first.Link != "http://events.crossroadspresents.com/events/2021/3/2/the-expendables-through-the-roots-pacific-dub" {
		t.Errorf("link = %q, want permalink joined to base", first.Link)
	}
	if first.Soldout {
		t.Error("first event should not be sold out")
	}

	// No artists array: the title is the single band entry.
	second := events[1]
	if !reflect.DeepEqual(second.Bands, []string{"Japanese Breakfast"}) {
		t.Errorf("bands = %v, want title fallback", second.Bands)
	}
	if !second.Soldout {
		t.Error("second event should be sold out")
	}
}

func TestFetchWalksPeriods(t *testing.T) {
	var periods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		periods = append(periods, r.URL.Query().Get("period"))
		if r.URL.Path != "/venues/paradise-rock-club/month_events.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"event_groups": []}`))
	}))
	defer srv.Close()

	h := NewParadise(fetch.New(5 * time.Second))
	h.baseURL = srv.URL

	events, err := h.Fetch(context.Background(), venue.Window{
		Start:  time.Date(2021, time.March, 1, 0, 0, 0, 0, event.Eastern),
		Months: 3,
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0 from empty months", len(events))
	}
	if !reflect.DeepEqual(periods, []string{"0", "1", "2"}) {
		t.Errorf("periods = %v, want [0 1 2]", periods)
	}
}

func TestFetchSkipsFailedMonth(t *testing.T) {
	fixture, err := os.ReadFile("../../../testdata/fixtures/crossroads.json")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// First month errors; second serves listings.
		if calls == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write(fixture)
	}))
	defer srv.Close()

	h := NewBrighton(fetch.New(5 * time.Second))
	h.baseURL = srv.URL

	events, err := h.Fetch(context.Background(), venue.Window{
		Start:  time.Date(2021, time.March, 1, 0, 0, 0, 0, event.Eastern),
		Months: 2,
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events, want 2 from the surviving month", len(events))
	}
	if events[0].Venue != BrightonName {
		t.Errorf("venue = %q, want %q", events[0].Venue, BrightonName)
	}
}
