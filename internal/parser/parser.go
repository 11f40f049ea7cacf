// Package parser converts raw Settour pfpFlightSegmentSearch responses into
// normalized trip records. The upstream schema is loosely typed and only
// partially documented, so every lookup is defensive: missing or malformed
// fields default and emit a diagnostic instead of failing the batch.
//
// Extraction runs in two passes. The outbound pass yields incomplete records,
// each carrying the searchId needed to fetch that itinerary's inbound
// options. The inbound pass merges one outbound record with each viable
// inbound itinerary, a one-to-many expansion into complete round trips.
package parser

import (
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/logging"
)

// Parser holds no per-call state; one instance may be shared across
// concurrent passes as long as the logger is safe for concurrent use.
type Parser struct {
	log logging.Logger
}

func New(log logging.Logger) *Parser {
	return &Parser{log: log}
}
