package event

import (
	"regexp"
	"strings"
)

// bandSeparator matches the delimiters venues use between act names inside
// a single listing title: commas, pipes, and slashes.
var bandSeparator = regexp.MustCompile(`\s*[,|/]\s*`)

// SplitBands splits a listing title into individual act names.
// Empty segments are dropped; an empty or whitespace title yields an
// empty (non-nil) slice.
func SplitBands(title string) []string {
	bands := make([]string, 0, 4)
	for _, part := range bandSeparator.Split(title, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			bands = append(bands, part)
		}
	}
	return bands
}

// IsSoldOutText reports whether text contains a venue's sold-out marker.
// Matching is case-insensitive so "SOLD OUT", "Sold Out", and button labels
// with surrounding whitespace all register.
func IsSoldOutText(text string) bool {
	return strings.Contains(strings.ToLower(text), "sold out")
}
