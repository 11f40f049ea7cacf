package parser

import (
	"strings"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
)

// classDelimiter separates per-segment tokens inside the fare's class-name
// and class-type strings, one token per segment in itinerary order.
const classDelimiter = "、"

// extractSegments builds the ordered segment list from a flight item's
// flightDetail entries. The cabin label of segment i joins the i-th
// class-name and class-type tokens of the first fare option; when the token
// lists do not cover a segment the label degrades to whatever is available.
// A missing flightDetail list or an unusable entry never fails the item
// here — an empty result is the caller's signal to reject it.
func (p *Parser) extractSegments(item map[string]any) []models.FlightSegment {
	details, ok := asList(item["flightDetail"])
	if !ok {
		p.log.Warnf("flight item missing flightDetail list")
		return nil
	}

	var classNames, classTypes []string
	if fare, ok := firstFare(item); ok {
		if s, ok := asString(fare["pfpClassName"]); ok && s != "" {
			classNames = strings.Split(s, classDelimiter)
		}
		if s, ok := asString(fare["bccTp"]); ok && s != "" {
			classTypes = strings.Split(s, classDelimiter)
		}
	}

	segments := make([]models.FlightSegment, 0, len(details))
	for i, raw := range details {
		detail, ok := asObject(raw)
		if !ok {
			p.log.Warnf("flight detail %d is not an object, skipped", i+1)
			p.log.Debugf("flight detail: %s", excerpt(raw))
			continue
		}

		v, present := detail["flightNumber"]
		if !present || v == nil {
			p.log.Warnf("flight detail %d missing flightNumber, skipped", i+1)
			continue
		}
		number := coerceString(v)
		if number == "" {
			p.log.Warnf("flight detail %d has empty flightNumber, skipped", i+1)
			continue
		}

		carrier := ""
		if c, present := detail["marketingAirlineCode"]; present && c != nil {
			carrier = coerceString(c)
		}

		label, aligned := cabinLabel(classNames, classTypes, i)
		if !aligned {
			p.log.Warnf("cabin class tokens do not cover flight detail %d", i+1)
		}

		segments = append(segments, models.FlightSegment{
			FlightNumber: carrier + number,
			CabinClass:   label,
		})
	}

	return segments
}

// cabinLabel joins the positional class-name and class-type tokens for
// segment i. aligned is false when either non-empty token list is too short
// for the index.
func cabinLabel(names, types []string, i int) (label string, aligned bool) {
	aligned = true
	if i < len(names) {
		label += names[i]
	} else if len(names) > 0 {
		aligned = false
	}
	if i < len(types) {
		label += types[i]
	} else if len(types) > 0 {
		aligned = false
	}
	return label, aligned
}
