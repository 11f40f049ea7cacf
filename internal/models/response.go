package models

type SearchCriteria struct {
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	DepartureDate string       `json:"departure_date"`
	ReturnDate    string       `json:"return_date"`
	Filters       *TripFilters `json:"filters,omitempty"`
	SortBy        string       `json:"sort_by"`
	SortOrder     string       `json:"sort_order"`
}

type SearchMetadata struct {
	TotalResults    int   `json:"total_results"`
	OutboundOptions int   `json:"outbound_options"`
	InboundQueries  int   `json:"inbound_queries"`
	InboundFailed   int   `json:"inbound_failed"`
	SearchTimeMs    int64 `json:"search_time_ms"`
	CacheHit        bool  `json:"cache_hit"`
}

type SearchResponse struct {
	SearchCriteria SearchCriteria `json:"search_criteria"`
	Metadata       SearchMetadata `json:"metadata"`
	Trips          []TripRecord   `json:"trips"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
