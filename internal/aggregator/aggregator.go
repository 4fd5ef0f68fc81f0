// Package aggregator runs every registered venue handler and concatenates
// their results into the final event list.
//
// Each handler runs in isolation: a fetch failure, parse failure, or panic
// is logged against the venue and contributes an empty list instead of
// stopping the run. Output order is always the handler registration order,
// whether handlers execute sequentially or in parallel.
package aggregator

import (
	"context"
	"fmt"
	"sync"

	"github.com/rockhound/boston-shows/internal/event"
	"github.com/rockhound/boston-shows/internal/logger"
	"github.com/rockhound/boston-shows/internal/venue"
)

// Run invokes every handler over the window and returns the concatenation
// of their event lists in handler order. With parallel set, handlers run
// one goroutine each and join before concatenation; ordering is unchanged.
func Run(ctx context.Context, handlers []venue.Handler, w venue.Window, parallel bool) []event.Event {
	groups := make([][]event.Event, len(handlers))

	if parallel {
		var wg sync.WaitGroup
		for i, h := range handlers {
			wg.Add(1)
			go func(i int, h venue.Handler) {
				defer wg.Done()
				groups[i] = runOne(ctx, h, w)
			}(i, h)
		}
		wg.Wait()
	} else {
		for i, h := range handlers {
			groups[i] = runOne(ctx, h, w)
		}
	}

	combined := make([]event.Event, 0)
	for _, group := range groups {
		combined = append(combined, group...)
	}
	return combined
}

// runOne executes a single handler, converting any failure into an empty
// contribution so one broken venue never takes down the run.
func runOne(ctx context.Context, h venue.Handler, w venue.Window) []event.Event {
	name := h.Name()

	events, err := fetchSafely(ctx, h, w)
	if err != nil {
		logger.Error("venue failed", logger.Fields{"venue": name}, err)
		logger.AddCount("venues.failed", 1)
		return nil
	}

	logger.Info("venue parsed", logger.Fields{
		"venue":   name,
		"records": len(events),
	})
	logger.AddCount("venues.ok", 1)
	logger.AddCount("records", int64(len(events)))
	return events
}

// fetchSafely calls the handler and turns a panic into an error.
func fetchSafely(ctx context.Context, h venue.Handler, w venue.Window) (events []event.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			events = nil
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Fetch(ctx, w)
}
