package models

import "time"

// FlightSegment is one scheduled flight within an itinerary. A non-stop
// itinerary has one segment, a connecting itinerary has several.
type FlightSegment struct {
	// FlightNumber is the marketing airline code concatenated with the
	// numeric flight number, e.g. "BR857". Empty when the source fields
	// were missing.
	FlightNumber string `json:"flight_number"`

	// CabinClass combines the booking class name and class-type code that
	// the fare assigns to this segment's position, e.g. "經濟艙V". Empty
	// when the fare carried no label for this position.
	CabinClass string `json:"cabin_class"`
}

// TripRecord is one round-trip itinerary. The outbound pass produces
// incomplete records (no return date, no inbound segments, zero pricing);
// the inbound pass produces complete records. No other state exists.
type TripRecord struct {
	DepartureDate time.Time  `json:"departure_date"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`

	// Price is the tax-exclusive fare amount: the upstream total is
	// tax-inclusive and Price is derived as total minus Tax. Zero until
	// the inbound merge sets the authoritative round-trip fare.
	Price float64 `json:"price"`
	Tax   float64 `json:"tax"`

	OutboundSegments []FlightSegment `json:"outbound_segments"`
	InboundSegments  []FlightSegment `json:"inbound_segments,omitempty"`

	// SearchID is the opaque token returned with the outbound itinerary,
	// required to query its inbound options. Never empty on a produced
	// record.
	SearchID string `json:"search_id"`

	ValueScore float64 `json:"value_score,omitempty"`
}

// Complete reports whether the record has been through the inbound merge.
func (t TripRecord) Complete() bool {
	return t.ReturnDate != nil && len(t.InboundSegments) > 0
}

// TotalStops is the number of intermediate stops across both directions.
func (t TripRecord) TotalStops() int {
	stops := 0
	if n := len(t.OutboundSegments); n > 1 {
		stops += n - 1
	}
	if n := len(t.InboundSegments); n > 1 {
		stops += n - 1
	}
	return stops
}
