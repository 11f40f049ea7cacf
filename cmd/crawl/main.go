// Command crawl runs one round-trip fare search from the command line and
// writes the extracted trip records to CSV.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/config"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/export"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/filter"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/logging"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/parser"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/ratelimit"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/search"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/settour"
)

func main() {
	origin := flag.String("from", "", "origin airport code, e.g. TPE")
	destination := flag.String("to", "", "destination airport code, e.g. NRT")
	departure := flag.String("depart", "", "departure date, YYYYMMDD")
	returnDate := flag.String("return", "", "return date, YYYYMMDD")
	output := flag.String("out", "fares.csv", "output CSV path")
	sortBy := flag.String("sort", "price", "sort order: price, tax, return_date, value")
	flag.Parse()

	req := models.SearchRequest{
		Origin:        *origin,
		Destination:   *destination,
		DepartureDate: *departure,
		ReturnDate:    *returnDate,
		SortBy:        *sortBy,
	}
	if err := req.Validate(); err != nil {
		log.Fatalf("Invalid search: %v", err)
	}

	cfg := config.Load()
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	limiter := ratelimit.NewStageLimiterWithDefaults()
	limiter.SetStageLimit(ratelimit.StageOutbound, cfg.OutboundRPS, int(cfg.OutboundRPS)*2)
	limiter.SetStageLimit(ratelimit.StageInbound, cfg.InboundRPS, int(cfg.InboundRPS)*2)

	client := settour.New(settour.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Limiter: limiter,
	}, logger)

	searcher := search.New(client, parser.New(logger), search.Config{
		Timeout:       cfg.RequestTimeout * 2,
		MaxRetries:    cfg.MaxRetries,
		RetryDelays:   search.DefaultRetryDelays(),
		MaxConcurrent: cfg.MaxConcurrent,
	}, logger)

	result, err := searcher.Search(context.Background(), req)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	trips := filter.Apply(result.Trips, req.Filters, req.SortBy, req.SortOrder)
	if err := export.WriteFile(*output, trips); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	log.Printf("Wrote %d round trips to %s (%d outbound options, %d inbound failures)",
		len(trips), *output, result.OutboundOptions, result.InboundFailed)
}
