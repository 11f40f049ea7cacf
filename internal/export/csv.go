// Package export writes extracted trip records to CSV, the downstream
// format the fare data is consumed in.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
	"github.com/Weichen128/settour-tour-fare-scraper-data/pkg/currency"
)

const dateLayout = "2006-01-02"

type tripRow struct {
	DepartureDate   string  `csv:"departure_date"`
	ReturnDate      string  `csv:"return_date"`
	Price           float64 `csv:"price"`
	Tax             float64 `csv:"tax"`
	TotalFormatted  string  `csv:"total_formatted"`
	OutboundFlights string  `csv:"outbound_flights"`
	OutboundCabins  string  `csv:"outbound_cabins"`
	InboundFlights  string  `csv:"inbound_flights"`
	InboundCabins   string  `csv:"inbound_cabins"`
	SearchID        string  `csv:"search_id"`
}

// WriteCSV writes one row per trip record with a header line.
func WriteCSV(w io.Writer, trips []models.TripRecord) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	for _, trip := range trips {
		if err := enc.Encode(toRow(trip)); err != nil {
			return fmt.Errorf("encode trip record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the records to path, creating or truncating it.
func WriteFile(path string, trips []models.TripRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, trips); err != nil {
		return err
	}
	return f.Close()
}

func toRow(trip models.TripRecord) tripRow {
	row := tripRow{
		DepartureDate:   trip.DepartureDate.Format(dateLayout),
		Price:           trip.Price,
		Tax:             trip.Tax,
		TotalFormatted:  currency.FormatTWD(trip.Price + trip.Tax),
		OutboundFlights: joinFlightNumbers(trip.OutboundSegments),
		OutboundCabins:  joinCabins(trip.OutboundSegments),
		InboundFlights:  joinFlightNumbers(trip.InboundSegments),
		InboundCabins:   joinCabins(trip.InboundSegments),
		SearchID:        trip.SearchID,
	}
	if trip.ReturnDate != nil {
		row.ReturnDate = trip.ReturnDate.Format(dateLayout)
	}
	return row
}

func joinFlightNumbers(segments []models.FlightSegment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.FlightNumber != "" {
			parts = append(parts, seg.FlightNumber)
		}
	}
	return strings.Join(parts, "/")
}

func joinCabins(segments []models.FlightSegment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.CabinClass)
	}
	return strings.Join(parts, "/")
}
