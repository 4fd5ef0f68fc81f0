package cli

import (
	"fmt"
	"strings"

	"github.com/rockhound/boston-shows/internal/fetch"
	"github.com/rockhound/boston-shows/internal/venue"
	"github.com/rockhound/boston-shows/internal/venue/bowery"
	"github.com/rockhound/boston-shows/internal/venue/crossroads"
	"github.com/rockhound/boston-shows/internal/venue/houseofblues"
	"github.com/rockhound/boston-shows/internal/venue/mideast"
)

// handlerDef binds a stable selection key to a handler constructor. The
// slice order fixes both execution order and output grouping order.
type handlerDef struct {
	key   string
	build func(*fetch.Client) venue.Handler
}

var handlerDefs = []handlerDef{
	{"bowery", func(c *fetch.Client) venue.Handler { return bowery.New(c) }},
	{"houseofblues", func(c *fetch.Client) venue.Handler { return houseofblues.New(c) }},
	{"mideast", func(c *fetch.Client) venue.Handler { return mideast.New(c) }},
	{"paradise", func(c *fetch.Client) venue.Handler { return crossroads.NewParadise(c) }},
	{"brighton", func(c *fetch.Client) venue.Handler { return crossroads.NewBrighton(c) }},
}

// buildRegistry assembles the handler registry, restricted to the given
// venue keys when any are named. Unknown keys are an error so typos fail
// fast instead of silently collecting nothing.
func buildRegistry(client *fetch.Client, only []string) (*venue.Registry, error) {
	selected := make(map[string]bool, len(only))
	for _, key := range only {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		if !knownKey(key) {
			return nil, fmt.Errorf("unknown venue key %q (known: %s)", key, strings.Join(knownKeys(), ", "))
		}
		selected[key] = true
	}

	registry := venue.NewRegistry()
	for _, def := range handlerDefs {
		if len(selected) > 0 && !selected[def.key] {
			continue
		}
		if err := registry.Register(def.build(client)); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func knownKey(key string) bool {
	for _, def := range handlerDefs {
		if def.key == key {
			return true
		}
	}
	return false
}

func knownKeys() []string {
	keys := make([]string, len(handlerDefs))
	for i, def := range handlerDefs {
		keys[i] = def.key
	}
	return keys
}
