package parser

import (
	"fmt"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
)

// ParseInbound expands one incomplete outbound record against an inbound
// search response, producing one complete trip record per viable inbound
// itinerary. Every diagnostic is tagged with the originating search id.
//
// The outbound record must carry a search id; without one the response
// cannot belong to it and nothing is produced. An empty result otherwise
// means no viable inbound combination existed, which is a normal terminal
// outcome. The pass never panics past its boundary.
func (p *Parser) ParseInbound(doc map[string]any, outbound models.TripRecord) []models.TripRecord {
	if outbound.SearchID == "" {
		p.log.Errorf("outbound record has no search id, inbound response dropped")
		return nil
	}
	tag := " (searchId: " + outbound.SearchID + ")"

	list, ok := p.flightList(doc, tag)
	if !ok {
		return nil
	}

	p.log.Debugf("inbound flight list length: %d%s", len(list), tag)
	if len(list) == 0 {
		p.log.Infof("inbound response contained no flights%s", tag)
		return nil
	}

	trips := make([]models.TripRecord, 0, len(list))
	for i, raw := range list {
		item, ok := asObject(raw)
		if !ok {
			p.log.Warnf("inbound flight %d is not an object, skipped%s", i+1, tag)
			p.log.Debugf("flight item: %s", excerpt(raw))
			continue
		}
		trip, err := p.buildInbound(item, outbound)
		if err != nil {
			p.log.Warnf("inbound flight %d skipped%s: %v", i+1, tag, err)
			p.log.Debugf("flight item: %s", excerpt(raw))
			continue
		}
		trips = append(trips, trip)
	}

	p.log.Debugf("built %d round-trip combinations%s", len(trips), tag)
	return trips
}

// buildInbound runs the same four extraction steps as the outbound pass
// against the inbound item, then merges with the outbound record. The
// outbound segments are copied so completed records stay independent of
// each other and of the source record.
func (p *Parser) buildInbound(item map[string]any, outbound models.TripRecord) (models.TripRecord, error) {
	fields := p.extractFlightFields(item)

	returnDate, err := parseCompactDate(fields.DepartureDate)
	if err != nil {
		return models.TripRecord{}, fmt.Errorf("return date %q: %w", fields.DepartureDate, err)
	}

	segments := p.extractSegments(item)
	if len(segments) == 0 {
		return models.TripRecord{}, errNoSegments
	}

	fare, ok := firstFare(item)
	if !ok {
		return models.TripRecord{}, errNoFares
	}
	amounts := p.extractFare(fare)

	outSegments := make([]models.FlightSegment, len(outbound.OutboundSegments))
	copy(outSegments, outbound.OutboundSegments)

	return models.TripRecord{
		DepartureDate:    outbound.DepartureDate,
		ReturnDate:       &returnDate,
		Price:            amounts.Price,
		Tax:              amounts.Tax,
		OutboundSegments: outSegments,
		InboundSegments:  segments,
		SearchID:         outbound.SearchID,
	}, nil
}
