package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/cache"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/filter"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/search"
)

type SearchHandler struct {
	searcher *search.Searcher
	cache    cache.Cache
}

func NewSearchHandler(searcher *search.Searcher, c cache.Cache) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		cache:    c,
	}
}

func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if cachedTrips, found := h.cache.Get(ctx, req); found {
		filtered := filter.Apply(cachedTrips, req.Filters, req.SortBy, req.SortOrder)
		return c.JSON(http.StatusOK, models.SearchResponse{
			SearchCriteria: buildSearchCriteria(req),
			Metadata: models.SearchMetadata{
				TotalResults: len(filtered),
				SearchTimeMs: time.Since(startTime).Milliseconds(),
				CacheHit:     true,
			},
			Trips: filtered,
		})
	}

	result, err := h.searcher.Search(ctx, req)
	if err != nil {
		status := http.StatusBadGateway
		return c.JSON(status, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to search fares: " + err.Error(),
			Code:    status,
		})
	}

	_ = h.cache.Set(ctx, req, result.Trips)
	filtered := filter.Apply(result.Trips, req.Filters, req.SortBy, req.SortOrder)

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchCriteria: buildSearchCriteria(req),
		Metadata: models.SearchMetadata{
			TotalResults:    len(filtered),
			OutboundOptions: result.OutboundOptions,
			InboundQueries:  result.InboundQueries,
			InboundFailed:   result.InboundFailed,
			SearchTimeMs:    time.Since(startTime).Milliseconds(),
			CacheHit:        false,
		},
		Trips: filtered,
	})
}

func buildSearchCriteria(req models.SearchRequest) models.SearchCriteria {
	return models.SearchCriteria{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Filters:       req.Filters,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	}
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
