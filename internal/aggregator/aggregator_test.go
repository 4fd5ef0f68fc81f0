package aggregator

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rockhound/boston-shows/internal/event"
	"github.com/rockhound/boston-shows/internal/venue"
)

type fakeHandler struct {
	name   string
	events []event.Event
	err    error
	panics bool
}

func (f *fakeHandler) Name() string { return f.name }

func (f *fakeHandler) Fetch(ctx context.Context, w venue.Window) ([]event.Event, error) {
	if f.panics {
		panic("unexpected document structure")
	}
	return f.events, f.err
}

func makeEvent(venueName, band string) event.Event {
	start := time.Date(2021, time.April, 10, 20, 0, 0, 0, event.Eastern)
	return event.New(venueName, []string{band}, start, "https://example.com/e/1", false)
}

func testWindow() venue.Window {
	return venue.Window{
		Start:  time.Date(2021, time.March, 1, 0, 0, 0, 0, event.Eastern),
		Months: 12,
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	handlers := []venue.Handler{
		&fakeHandler{name: "A", events: []event.Event{makeEvent("A", "Band A")}},
		&fakeHandler{name: "B", err: errors.New("connection refused")},
		&fakeHandler{name: "C", events: []event.Event{makeEvent("C", "Band C")}},
		&fakeHandler{name: "D", panics: true},
		&fakeHandler{name: "E", events: []event.Event{makeEvent("E", "Band E")}},
	}

	got := Run(context.Background(), handlers, testWindow(), false)

	venues := make([]string, len(got))
	for i, e := range got {
		venues[i] = e.Venue
	}
	if !reflect.DeepEqual(venues, []string{"A", "C", "E"}) {
		t.Errorf("venues = %v, want failures isolated and order preserved", venues)
	}
}

func TestRunPreservesHandlerOrder(t *testing.T) {
	handlers := []venue.Handler{
		&fakeHandler{name: "First", events: []event.Event{
			makeEvent("First", "Band 1"),
			makeEvent("First", "Band 2"),
		}},
		&fakeHandler{name: "Second", events: []event.Event{
			makeEvent("Second", "Band 3"),
		}},
	}

	got := Run(context.Background(), handlers, testWindow(), false)

	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if got[0].Bands[0] != "Band 1" || got[1].Bands[0] != "Band 2" || got[2].Bands[0] != "Band 3" {
		t.Errorf("events out of order: %v", got)
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	handlers := []venue.Handler{
		&fakeHandler{name: "A", events: []event.Event{makeEvent("A", "Band A")}},
		&fakeHandler{name: "B", err: errors.New("timeout")},
		&fakeHandler{name: "C", events: []event.Event{makeEvent("C", "Band C")}},
	}

	sequential := Run(context.Background(), handlers, testWindow(), false)
	parallel := Run(context.Background(), handlers, testWindow(), true)

	if !reflect.DeepEqual(sequential, parallel) {
		t.Errorf("parallel output %v differs from sequential %v", parallel, sequential)
	}
}

func TestRunAllHandlersFail(t *testing.T) {
	handlers := []venue.Handler{
		&fakeHandler{name: "A", err: errors.New("down")},
		&fakeHandler{name: "B", err: errors.New("down")},
	}

	got := Run(context.Background(), handlers, testWindow(), false)

	// Still a usable (empty, non-nil) list; partial success is success.
	if got == nil {
		t.Fatal("result should be non-nil even when every venue fails")
	}
	if len(got) != 0 {
		t.Errorf("got %d events, want 0", len(got))
	}
}
