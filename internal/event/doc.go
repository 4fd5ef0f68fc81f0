// Package event defines the canonical concert record every venue handler
// emits and the normalization helpers shared between handlers.
//
// A record always carries five fields: venue name, performing bands, start
// time (Eastern local time with UTC offset), ticket link, and sold-out
// status. Date text in venue pages varies widely; NormalizeDate folds the
// known formats into a single local timestamp and applies a forward-looking
// year-inference rule for text that omits the year.
package event
