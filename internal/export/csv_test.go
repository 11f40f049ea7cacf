package export

import (
	"strings"
	"testing"
	"time"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
)

func TestWriteCSV(t *testing.T) {
	ret := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	trips := []models.TripRecord{
		{
			DepartureDate: time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
			ReturnDate:    &ret,
			Price:         13000,
			Tax:           2000,
			OutboundSegments: []models.FlightSegment{
				{FlightNumber: "BR198", CabinClass: "經濟艙V"},
				{FlightNumber: "BR2198", CabinClass: "經濟艙V"},
			},
			InboundSegments: []models.FlightSegment{
				{FlightNumber: "BR197", CabinClass: "經濟艙K"},
			},
			SearchID: "S1",
		},
	}

	var buf strings.Builder
	if err := WriteCSV(&buf, trips); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row", len(lines))
	}

	header := lines[0]
	for _, col := range []string{"departure_date", "return_date", "price", "tax", "search_id"} {
		if !strings.Contains(header, col) {
			t.Errorf("header %q missing column %q", header, col)
		}
	}

	row := lines[1]
	for _, want := range []string{"2025-06-15", "2025-06-20", "BR198/BR2198", "BR197", "NT$15,000", "S1"} {
		if !strings.Contains(row, want) {
			t.Errorf("row %q missing %q", row, want)
		}
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf strings.Builder
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}
	// No records means no output at all, not a stray header.
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}
