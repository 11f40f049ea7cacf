// Package ranking scores complete trips for the "value" sort: cheap and
// direct beats cheap with connections.
package ranking

import (
	"math"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
)

const (
	PriceWeight = 0.7
	StopsWeight = 0.3
)

func CalculateScores(trips []models.TripRecord) []models.TripRecord {
	if len(trips) == 0 {
		return trips
	}

	maxTotal := findMaxTotal(trips)

	result := make([]models.TripRecord, len(trips))
	for i, trip := range trips {
		result[i] = trip
		result[i].ValueScore = CalculateValue(trip, maxTotal)
	}
	return result
}

// Lower score = better value.
func CalculateValue(trip models.TripRecord, maxTotal float64) float64 {
	priceScore := 0.0
	if maxTotal > 0 {
		priceScore = ((trip.Price + trip.Tax) / maxTotal) * 100
	}

	stopsScore := float64(trip.TotalStops()) * 15
	score := priceScore*PriceWeight + stopsScore*StopsWeight

	return math.Round(score*100) / 100
}

func findMaxTotal(trips []models.TripRecord) float64 {
	max := 0.0
	for _, trip := range trips {
		if total := trip.Price + trip.Tax; total > max {
			max = total
		}
	}
	return max
}
