package parser

import (
	"errors"
	"fmt"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
)

var (
	errNoSegments = errors.New("no usable flight segments")
	errNoFares    = errors.New("fareList missing or empty")
	errNoSearchID = errors.New("first fare option missing searchId")
)

// ParseOutbound converts an outbound search response into incomplete trip
// records: outbound segments and departure date set, pricing zeroed,
// ReturnDate nil. Each record carries the searchId needed to fetch its
// inbound options.
//
// The bool reports whether the envelope itself was structurally valid. A
// valid envelope with zero surviving items returns an empty slice and true;
// individually malformed items are skipped with a diagnostic and never fail
// the batch.
func (p *Parser) ParseOutbound(doc map[string]any) ([]models.TripRecord, bool) {
	list, ok := p.flightList(doc, "")
	if !ok {
		return nil, false
	}

	if len(list) == 0 {
		p.log.Infof("outbound response contained no flights")
		return []models.TripRecord{}, true
	}

	records := make([]models.TripRecord, 0, len(list))
	for i, raw := range list {
		item, ok := asObject(raw)
		if !ok {
			p.log.Warnf("outbound flight %d is not an object, skipped", i+1)
			p.log.Debugf("flight item: %s", excerpt(raw))
			continue
		}
		rec, err := p.buildOutbound(item)
		if err != nil {
			p.log.Warnf("outbound flight %d skipped: %v", i+1, err)
			p.log.Debugf("flight item: %s", excerpt(raw))
			continue
		}
		records = append(records, rec)
	}

	p.log.Debugf("parsed %d/%d outbound flights", len(records), len(list))
	return records, true
}

// buildOutbound attempts the four per-item extraction steps. Any failed
// step returns the skip reason; composing them this way keeps one bad item
// from touching the rest of the batch.
func (p *Parser) buildOutbound(item map[string]any) (models.TripRecord, error) {
	fields := p.extractFlightFields(item)

	segments := p.extractSegments(item)
	if len(segments) == 0 {
		return models.TripRecord{}, errNoSegments
	}

	fare, ok := firstFare(item)
	if !ok {
		return models.TripRecord{}, errNoFares
	}
	searchID := coerceString(fare["searchId"])
	if searchID == "" {
		return models.TripRecord{}, errNoSearchID
	}

	departure, err := parseCompactDate(fields.DepartureDate)
	if err != nil {
		return models.TripRecord{}, fmt.Errorf("departure date %q: %w", fields.DepartureDate, err)
	}

	// Pricing stays zeroed here: the authoritative round-trip fare comes
	// from the inbound response, not the outbound leg.
	return models.TripRecord{
		DepartureDate:    departure,
		OutboundSegments: segments,
		SearchID:         searchID,
	}, nil
}
