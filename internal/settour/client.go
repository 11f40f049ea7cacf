// Package settour is the GraphQL transport for the upstream flight search.
// It fetches raw response documents and leaves all interpretation to the
// parser; a structurally broken response is the parser's to reject, not an
// error here.
package settour

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/logging"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/ratelimit"
)

const defaultTimeout = 15 * time.Second

// The two stages share one query; the inbound call is keyed by the searchId
// returned with an outbound itinerary.
const flightSegmentQuery = `query pfpFlightSegmentSearch($input: PfpFlightSegmentSearchInput!) {
  pfpFlightSegmentSearch(input: $input) {
    error
    data {
      flightList {
        depAirportCode arrAirportCode depDate depTime arrDate arrTime flyTime
        flightDetail { marketingAirlineCode flightNumber depAirportCode arrAirportCode depDate depTime arrDate arrTime flyTime }
        fareList { searchId pfpClassName bccTp fareInfo { totalPrice { price } tax { totalTax } } }
      }
    }
  }
}`

type Config struct {
	BaseURL string
	Timeout time.Duration
	Limiter *ratelimit.StageLimiter
}

type Client struct {
	baseURL string
	http    *http.Client
	limiter *ratelimit.StageLimiter
	log     logging.Logger
}

func New(cfg Config, log logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: cfg.Limiter,
		log:     log,
	}
}

// SearchOutbound fetches the outbound-leg document for a round-trip search.
func (c *Client) SearchOutbound(ctx context.Context, req models.SearchRequest) (map[string]any, error) {
	variables := map[string]any{
		"input": map[string]any{
			"depAirportCode": req.Origin,
			"arrAirportCode": req.Destination,
			"depDate":        req.DepartureDate,
			"returnDate":     req.ReturnDate,
			"tripType":       "RT",
		},
	}
	return c.post(ctx, ratelimit.StageOutbound, variables)
}

// SearchInbound fetches the inbound options of one outbound itinerary.
func (c *Client) SearchInbound(ctx context.Context, searchID string) (map[string]any, error) {
	variables := map[string]any{
		"input": map[string]any{
			"searchId": searchID,
			"tripType": "RT",
		},
	}
	return c.post(ctx, ratelimit.StageInbound, variables)
}

func (c *Client) post(ctx context.Context, stage string, variables map[string]any) (map[string]any, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, stage); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(map[string]any{
		"query":     flightSegmentQuery,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("encode %s query: %w", stage, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", stage, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s search request: %w", stage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s search: upstream returned %s", stage, resp.Status)
	}

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", stage, err)
	}

	c.log.Debugf("%s search completed (%d top-level keys)", stage, len(doc))
	return doc, nil
}
