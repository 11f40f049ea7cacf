// Package search orchestrates the two-stage round-trip fare search: one
// outbound fetch, then one inbound fetch per outbound itinerary, merged by
// the parser into complete trip records. The fan-out runs concurrently —
// each inbound pass gets its own document and outbound record, so no state
// is shared between goroutines.
package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/logging"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/parser"
)

// Fetcher is the transport collaborator. Retries and rate limiting live on
// this side of the boundary, never inside the parser.
type Fetcher interface {
	SearchOutbound(ctx context.Context, req models.SearchRequest) (map[string]any, error)
	SearchInbound(ctx context.Context, searchID string) (map[string]any, error)
}

// ErrInvalidResponse means the outbound envelope failed structural
// validation, as opposed to a valid search with zero results.
var ErrInvalidResponse = errors.New("outbound response failed validation")

type Config struct {
	Timeout       time.Duration
	MaxRetries    int
	RetryDelays   []time.Duration
	MaxConcurrent int
}

// DefaultRetryDelays backs off per attempt, capping at the last entry.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{
		200 * time.Millisecond,
		500 * time.Millisecond,
		1 * time.Second,
	}
}

type Searcher struct {
	fetcher Fetcher
	parser  *parser.Parser
	config  Config
	log     logging.Logger
}

type Result struct {
	Trips           []models.TripRecord
	OutboundOptions int
	InboundQueries  int
	InboundFailed   int
}

func New(fetcher Fetcher, p *parser.Parser, config Config, log logging.Logger) *Searcher {
	return &Searcher{
		fetcher: fetcher,
		parser:  p,
		config:  config,
		log:     log,
	}
}

func (s *Searcher) Search(ctx context.Context, req models.SearchRequest) (*Result, error) {
	searchCtx := ctx
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	doc, err := s.fetchWithRetry(searchCtx, "outbound", func(ctx context.Context) (map[string]any, error) {
		return s.fetcher.SearchOutbound(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	records, ok := s.parser.ParseOutbound(doc)
	if !ok {
		return nil, ErrInvalidResponse
	}

	result := &Result{
		Trips:           make([]models.TripRecord, 0),
		OutboundOptions: len(records),
		InboundQueries:  len(records),
	}
	if len(records) == 0 {
		return result, nil
	}

	type inboundResult struct {
		searchID string
		trips    []models.TripRecord
		err      error
	}

	var sem chan struct{}
	if s.config.MaxConcurrent > 0 {
		sem = make(chan struct{}, s.config.MaxConcurrent)
	}

	resultCh := make(chan inboundResult, len(records))
	var wg sync.WaitGroup

	for _, rec := range records {
		wg.Add(1)
		go func(rec models.TripRecord) {
			defer wg.Done()

			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-searchCtx.Done():
					resultCh <- inboundResult{searchID: rec.SearchID, err: searchCtx.Err()}
					return
				}
			}

			doc, err := s.fetchWithRetry(searchCtx, "inbound", func(ctx context.Context) (map[string]any, error) {
				return s.fetcher.SearchInbound(ctx, rec.SearchID)
			})
			if err != nil {
				resultCh <- inboundResult{searchID: rec.SearchID, err: err}
				return
			}

			resultCh <- inboundResult{
				searchID: rec.SearchID,
				trips:    s.parser.ParseInbound(doc, rec),
			}
		}(rec)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for ir := range resultCh {
		if ir.err != nil {
			s.log.Errorf("inbound search failed (searchId: %s): %v", ir.searchID, ir.err)
			result.InboundFailed++
			continue
		}
		result.Trips = append(result.Trips, ir.trips...)
	}

	s.log.Infof("search produced %d round trips from %d outbound options (%d inbound failures)",
		len(result.Trips), result.OutboundOptions, result.InboundFailed)
	return result, nil
}

func (s *Searcher) fetchWithRetry(ctx context.Context, stage string, fetch func(context.Context) (map[string]any, error)) (map[string]any, error) {
	var lastErr error

	for attempt := 0; attempt <= s.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 && len(s.config.RetryDelays) > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(s.config.RetryDelays) {
				delayIdx = len(s.config.RetryDelays) - 1
			}
			select {
			case <-time.After(s.config.RetryDelays[delayIdx]):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		doc, err := fetch(ctx)
		if err == nil {
			return doc, nil
		}

		lastErr = err
		s.log.Warnf("%s fetch attempt %d failed: %v", stage, attempt+1, err)
	}

	return nil, lastErr
}
