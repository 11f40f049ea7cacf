// Package filter narrows and orders extracted trip records for display.
package filter

import (
	"sort"
	"strings"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/ranking"
)

func Apply(trips []models.TripRecord, filters *models.TripFilters, sortBy, sortOrder string) []models.TripRecord {
	filtered := applyFilters(trips, filters)

	if sortBy == "value" {
		filtered = ranking.CalculateScores(filtered)
	}

	return applySort(filtered, sortBy, sortOrder)
}

func applyFilters(trips []models.TripRecord, filters *models.TripFilters) []models.TripRecord {
	if filters == nil {
		return trips
	}

	result := make([]models.TripRecord, 0, len(trips))
	for _, trip := range trips {
		if matchesFilters(trip, filters) {
			result = append(result, trip)
		}
	}
	return result
}

func matchesFilters(trip models.TripRecord, filters *models.TripFilters) bool {
	if filters.PriceMin != nil && trip.Price < *filters.PriceMin {
		return false
	}
	if filters.PriceMax != nil && trip.Price > *filters.PriceMax {
		return false
	}
	if filters.MaxTax != nil && trip.Tax > *filters.MaxTax {
		return false
	}
	if filters.MaxStops != nil && trip.TotalStops() > *filters.MaxStops {
		return false
	}
	if len(filters.Airlines) > 0 && !matchesAirlines(trip, filters.Airlines) {
		return false
	}
	return true
}

// matchesAirlines requires every segment to be operated by one of the
// wanted carriers, matched on the flight-number prefix.
func matchesAirlines(trip models.TripRecord, airlines []string) bool {
	segments := make([]models.FlightSegment, 0, len(trip.OutboundSegments)+len(trip.InboundSegments))
	segments = append(segments, trip.OutboundSegments...)
	segments = append(segments, trip.InboundSegments...)

	for _, seg := range segments {
		matched := false
		for _, airline := range airlines {
			if airline != "" && strings.HasPrefix(strings.ToUpper(seg.FlightNumber), strings.ToUpper(airline)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func applySort(trips []models.TripRecord, sortBy, sortOrder string) []models.TripRecord {
	sorted := make([]models.TripRecord, len(trips))
	copy(sorted, trips)

	var less func(a, b models.TripRecord) bool
	switch sortBy {
	case "price":
		less = func(a, b models.TripRecord) bool { return a.Price < b.Price }
	case "tax":
		less = func(a, b models.TripRecord) bool { return a.Tax < b.Tax }
	case "return_date":
		less = func(a, b models.TripRecord) bool {
			if a.ReturnDate == nil || b.ReturnDate == nil {
				return b.ReturnDate == nil && a.ReturnDate != nil
			}
			return a.ReturnDate.Before(*b.ReturnDate)
		}
	case "value":
		less = func(a, b models.TripRecord) bool { return a.ValueScore < b.ValueScore }
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if sortOrder == "desc" {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}
