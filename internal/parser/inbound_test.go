package parser

import (
	"testing"
	"time"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
)

func outboundRecordForTest(t *testing.T, searchID string) (*Parser, *testLogger, models.TripRecord) {
	t.Helper()
	p, log := newTestParser()
	records, ok := p.ParseOutbound(envelope(validOutboundItem("20250615", searchID)))
	if !ok || len(records) != 1 {
		t.Fatalf("outbound fixture: ok=%v records=%d", ok, len(records))
	}
	return p, log, records[0]
}

func TestParseInboundOneToManyExpansion(t *testing.T) {
	p, _, outbound := outboundRecordForTest(t, "S1")

	inbound := envelope(
		flightItem("20250620",
			[]any{leg("BR", "197")},
			[]any{fareOption("I1", "經濟艙", "V", float64(15000), float64(2000))},
		),
		flightItem("20250621",
			[]any{leg("BR", "2197")},
			[]any{fareOption("I2", "經濟艙", "K", float64(18000), float64(2000))},
		),
		flightItem("20250622",
			[]any{leg("CI", "101")},
			[]any{fareOption("I3", "豪華經濟艙", "W", float64(25000), float64(3000))},
		),
	)

	trips := p.ParseInbound(inbound, outbound)
	if len(trips) != 3 {
		t.Fatalf("len(trips) = %d, want 3", len(trips))
	}

	wantDeparture := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	for i, trip := range trips {
		if !trip.Complete() {
			t.Errorf("trips[%d].Complete() = false, want true", i)
		}
		if trip.SearchID != "S1" {
			t.Errorf("trips[%d].SearchID = %q, want S1", i, trip.SearchID)
		}
		if !trip.DepartureDate.Equal(wantDeparture) {
			t.Errorf("trips[%d].DepartureDate = %v, want %v", i, trip.DepartureDate, wantDeparture)
		}
		if len(trip.OutboundSegments) != len(outbound.OutboundSegments) {
			t.Errorf("trips[%d] outbound segments = %d, want %d",
				i, len(trip.OutboundSegments), len(outbound.OutboundSegments))
		}
		for j := range trip.OutboundSegments {
			if trip.OutboundSegments[j] != outbound.OutboundSegments[j] {
				t.Errorf("trips[%d].OutboundSegments[%d] = %+v, want %+v",
					i, j, trip.OutboundSegments[j], outbound.OutboundSegments[j])
			}
		}
		key := trip.ReturnDate.Format("20060102")
		if seen[key] {
			t.Errorf("duplicate return date %s", key)
		}
		seen[key] = true
	}

	if trips[0].Price != 13000 || trips[0].Tax != 2000 {
		t.Errorf("trips[0] pricing = %v/%v, want 13000/2000", trips[0].Price, trips[0].Tax)
	}
	if trips[1].Price != 16000 {
		t.Errorf("trips[1].Price = %v, want 16000", trips[1].Price)
	}
	if trips[2].Price != 22000 || trips[2].Tax != 3000 {
		t.Errorf("trips[2] pricing = %v/%v, want 22000/3000", trips[2].Price, trips[2].Tax)
	}

	// Round-trip of the subtraction rule: price + tax gives back the raw
	// tax-inclusive total of each inbound fare.
	totals := []float64{15000, 18000, 25000}
	for i, trip := range trips {
		if trip.Price+trip.Tax != totals[i] {
			t.Errorf("trips[%d] price+tax = %v, want %v", i, trip.Price+trip.Tax, totals[i])
		}
	}
}

func TestParseInboundCopiesOutboundSegments(t *testing.T) {
	p, _, outbound := outboundRecordForTest(t, "S1")

	inbound := envelope(
		flightItem("20250620",
			[]any{leg("BR", "197")},
			[]any{fareOption("I1", "經濟艙", "V", float64(15000), float64(2000))},
		),
		flightItem("20250621",
			[]any{leg("BR", "2197")},
			[]any{fareOption("I2", "經濟艙", "V", float64(15000), float64(2000))},
		),
	)

	trips := p.ParseInbound(inbound, outbound)
	if len(trips) != 2 {
		t.Fatalf("len(trips) = %d, want 2", len(trips))
	}

	// Mutating one trip's outbound segments must not leak into the others
	// or into the source record.
	trips[0].OutboundSegments[0].FlightNumber = "MUTATED"
	if trips[1].OutboundSegments[0].FlightNumber == "MUTATED" {
		t.Error("outbound segments shared between sibling trips")
	}
	if outbound.OutboundSegments[0].FlightNumber == "MUTATED" {
		t.Error("outbound segments shared with the source record")
	}
}

func TestParseInboundMissingSearchID(t *testing.T) {
	p, log := newTestParser()

	trips := p.ParseInbound(envelope(), models.TripRecord{})
	if len(trips) != 0 {
		t.Errorf("len(trips) = %d, want 0", len(trips))
	}
	if !log.hasError("search id") {
		t.Errorf("error log %v does not mention the missing search id", log.errs)
	}
}

func TestParseInboundInvalidEnvelopeTaggedWithSearchID(t *testing.T) {
	p, log, outbound := outboundRecordForTest(t, "S1")

	trips := p.ParseInbound(map[string]any{"data": "nope"}, outbound)
	if len(trips) != 0 {
		t.Errorf("len(trips) = %d, want 0", len(trips))
	}
	if !log.hasError("searchId: S1") {
		t.Errorf("error log %v is not tagged with the search id", log.errs)
	}
}

func TestParseInboundEmptyListIsSuccess(t *testing.T) {
	p, log, outbound := outboundRecordForTest(t, "S1")

	trips := p.ParseInbound(envelope(), outbound)
	if len(trips) != 0 {
		t.Errorf("len(trips) = %d, want 0", len(trips))
	}
	if len(log.errs) != 0 {
		t.Errorf("unexpected error diagnostics: %v", log.errs)
	}
	if len(log.infos) == 0 {
		t.Error("expected an info diagnostic for the empty list")
	}
}

func TestParseInboundSkipsMalformedItems(t *testing.T) {
	p, log, outbound := outboundRecordForTest(t, "S1")

	inbound := envelope(
		// no fare options at all
		flightItem("20250620", []any{leg("BR", "197")}, nil),
		// unparseable return date
		flightItem("junk",
			[]any{leg("BR", "197")},
			[]any{fareOption("I1", "經濟艙", "V", float64(15000), float64(2000))},
		),
		// no usable segments
		flightItem("20250620",
			[]any{},
			[]any{fareOption("I2", "經濟艙", "V", float64(15000), float64(2000))},
		),
		// the one good item
		flightItem("20250622",
			[]any{leg("BR", "197")},
			[]any{fareOption("I3", "經濟艙", "V", float64(15000), float64(2000))},
		),
	)

	trips := p.ParseInbound(inbound, outbound)
	if len(trips) != 1 {
		t.Fatalf("len(trips) = %d, want 1", len(trips))
	}
	want := time.Date(2025, time.June, 22, 0, 0, 0, 0, time.UTC)
	if !trips[0].ReturnDate.Equal(want) {
		t.Errorf("ReturnDate = %v, want %v", trips[0].ReturnDate, want)
	}
	if len(log.warns) < 3 {
		t.Errorf("len(warns) = %d, want at least 3", len(log.warns))
	}
}
