package models

// TripFilters narrows a result set after extraction. All fields optional.
type TripFilters struct {
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
	Airlines []string `json:"airlines,omitempty"`
	MaxStops *int     `json:"max_stops,omitempty"`
	MaxTax   *float64 `json:"max_tax,omitempty"`
}

// SearchRequest describes one round-trip fare search. Dates use the
// upstream's compact YYYYMMDD form.
type SearchRequest struct {
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	DepartureDate string       `json:"departure_date"`
	ReturnDate    string       `json:"return_date"`
	Filters       *TripFilters `json:"filters,omitempty"`
	SortBy        string       `json:"sort_by,omitempty"`
	SortOrder     string       `json:"sort_order,omitempty"`
}

func (r *SearchRequest) Validate() error {
	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if !isCompactDate(r.DepartureDate) {
		return ErrBadDepartureDate
	}
	if !isCompactDate(r.ReturnDate) {
		return ErrBadReturnDate
	}
	if r.SortBy == "" {
		r.SortBy = "value"
	}
	if r.SortOrder == "" {
		r.SortOrder = "asc"
	}
	return nil
}

// isCompactDate checks the YYYYMMDD shape only; calendar validity is the
// parser's concern.
func isCompactDate(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin      ValidationError = "origin is required"
	ErrMissingDestination ValidationError = "destination is required"
	ErrBadDepartureDate   ValidationError = "departure_date must be YYYYMMDD"
	ErrBadReturnDate      ValidationError = "return_date must be YYYYMMDD"
)
