// Package cli implements the command-line interface for boston-shows.
//
// The cli package provides the Cobra-based command that assembles the venue
// handler registry, runs the aggregator over the configured look-ahead
// window, and writes the combined event list as a JSON array. Venue
// failures are reported but never fail the command; only an invalid
// configuration or a failure to write the output file exits non-zero.
package cli
