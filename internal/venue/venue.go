package venue

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rockhound/boston-shows/internal/event"
)

// Window bounds how far forward a handler should look. Start doubles as the
// run's reference time for year inference, so handlers stay deterministic
// under test. Venues without date-range support ignore the window and
// return whatever their single listing page contains.
type Window struct {
	Start  time.Time
	Months int
}

// End returns the exclusive end of the window.
func (w Window) End() time.Time {
	return w.Start.AddDate(0, w.Months, 0)
}

// Handler produces zero or more canonical events for one venue. Handlers
// are stateless: venue identity and endpoints are fixed at construction,
// and two calls over identical source content yield identical results.
type Handler interface {
	// Name returns the canonical venue name attached to every record.
	Name() string

	// Fetch retrieves and parses the venue's listings within the window.
	// A listing missing a required field is skipped; Fetch fails only when
	// the source itself is unreachable or structurally unrecognizable.
	Fetch(ctx context.Context, w Window) ([]event.Event, error)
}

// Registry is the ordered set of handlers for a run. Order is fixed at
// registration time and determines the grouping order of the output.
type Registry struct {
	handlers []Handler
	names    map[string]bool
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]bool),
	}
}

// Register appends a handler, rejecting duplicate venue names.
func (r *Registry) Register(h Handler) error {
	name := h.Name()
	if r.names[name] {
		return fmt.Errorf("handler %s already registered", name)
	}
	r.names[name] = true
	r.handlers = append(r.handlers, h)
	return nil
}

// Handlers returns the registered handlers in registration order.
func (r *Registry) Handlers() []Handler {
	return r.handlers
}

// AbsoluteURL resolves href against base, returning an absolute URL string.
// Handlers must emit absolute links; venue pages routinely use site-relative
// ticket paths. Unresolvable input falls back to the raw href.
func AbsoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
