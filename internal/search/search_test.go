package search

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/parser"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// stubFetcher serves canned documents and fails configured search ids.
type stubFetcher struct {
	outbound     map[string]any
	inbound      map[string]map[string]any
	failInbound  map[string]error
	inboundCalls atomic.Int32
}

func (f *stubFetcher) SearchOutbound(ctx context.Context, req models.SearchRequest) (map[string]any, error) {
	return f.outbound, nil
}

func (f *stubFetcher) SearchInbound(ctx context.Context, searchID string) (map[string]any, error) {
	f.inboundCalls.Add(1)
	if err, ok := f.failInbound[searchID]; ok {
		return nil, err
	}
	return f.inbound[searchID], nil
}

func envelope(flights ...any) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"pfpFlightSegmentSearch": map[string]any{
				"data": map[string]any{"flightList": flights},
			},
		},
	}
}

func flightItem(depDate, searchID string, flightNumber string, total float64) map[string]any {
	return map[string]any{
		"depAirportCode": "TPE",
		"arrAirportCode": "NRT",
		"depDate":        depDate,
		"depTime":        "0830",
		"arrDate":        depDate,
		"arrTime":        "1230",
		"flyTime":        float64(180),
		"flightDetail": []any{
			map[string]any{"marketingAirlineCode": "BR", "flightNumber": flightNumber},
		},
		"fareList": []any{
			map[string]any{
				"searchId":     searchID,
				"pfpClassName": "經濟艙",
				"bccTp":        "V",
				"fareInfo": map[string]any{
					"totalPrice": map[string]any{"price": total},
					"tax":        map[string]any{"totalTax": float64(2000)},
				},
			},
		},
	}
}

func newSearcher(f Fetcher) *Searcher {
	return New(f, parser.New(nopLogger{}), Config{MaxConcurrent: 4}, nopLogger{})
}

func TestSearchExpandsEachOutboundOption(t *testing.T) {
	fetcher := &stubFetcher{
		outbound: envelope(
			flightItem("20250615", "S1", "198", 12000),
			flightItem("20250615", "S2", "2198", 13000),
		),
		inbound: map[string]map[string]any{
			"S1": envelope(
				flightItem("20250620", "I1", "197", 15000),
				flightItem("20250621", "I2", "2197", 16000),
			),
			"S2": envelope(
				flightItem("20250622", "I3", "101", 17000),
			),
		},
	}

	result, err := newSearcher(fetcher).Search(context.Background(), models.SearchRequest{})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if result.OutboundOptions != 2 {
		t.Errorf("OutboundOptions = %d, want 2", result.OutboundOptions)
	}
	if result.InboundQueries != 2 {
		t.Errorf("InboundQueries = %d, want 2", result.InboundQueries)
	}
	if result.InboundFailed != 0 {
		t.Errorf("InboundFailed = %d, want 0", result.InboundFailed)
	}
	if len(result.Trips) != 3 {
		t.Fatalf("len(Trips) = %d, want 3", len(result.Trips))
	}
	if n := fetcher.inboundCalls.Load(); n != 2 {
		t.Errorf("inbound calls = %d, want 2", n)
	}

	bySearchID := map[string]int{}
	for _, trip := range result.Trips {
		if !trip.Complete() {
			t.Errorf("trip %+v is not complete", trip)
		}
		bySearchID[trip.SearchID]++
	}
	if bySearchID["S1"] != 2 || bySearchID["S2"] != 1 {
		t.Errorf("trips per search id = %v, want S1:2 S2:1", bySearchID)
	}
}

func TestSearchToleratesInboundFailures(t *testing.T) {
	fetcher := &stubFetcher{
		outbound: envelope(
			flightItem("20250615", "S1", "198", 12000),
			flightItem("20250615", "S2", "2198", 13000),
		),
		inbound: map[string]map[string]any{
			"S2": envelope(flightItem("20250622", "I3", "101", 17000)),
		},
		failInbound: map[string]error{
			"S1": errors.New("upstream returned 502 Bad Gateway"),
		},
	}

	result, err := newSearcher(fetcher).Search(context.Background(), models.SearchRequest{})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if result.InboundFailed != 1 {
		t.Errorf("InboundFailed = %d, want 1", result.InboundFailed)
	}
	if len(result.Trips) != 1 {
		t.Fatalf("len(Trips) = %d, want 1", len(result.Trips))
	}
	if result.Trips[0].SearchID != "S2" {
		t.Errorf("surviving SearchID = %q, want S2", result.Trips[0].SearchID)
	}
}

func TestSearchInvalidOutboundEnvelope(t *testing.T) {
	fetcher := &stubFetcher{outbound: map[string]any{"unexpected": true}}

	_, err := newSearcher(fetcher).Search(context.Background(), models.SearchRequest{})
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("Search() error = %v, want ErrInvalidResponse", err)
	}
}

func TestSearchZeroOutboundOptions(t *testing.T) {
	fetcher := &stubFetcher{outbound: envelope()}

	result, err := newSearcher(fetcher).Search(context.Background(), models.SearchRequest{})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(result.Trips) != 0 || result.OutboundOptions != 0 {
		t.Errorf("result = %+v, want empty success", result)
	}
	if n := fetcher.inboundCalls.Load(); n != 0 {
		t.Errorf("inbound calls = %d, want 0", n)
	}
}

type flakyFetcher struct {
	stubFetcher
	outboundFails atomic.Int32
}

func (f *flakyFetcher) SearchOutbound(ctx context.Context, req models.SearchRequest) (map[string]any, error) {
	if f.outboundFails.Add(-1) >= 0 {
		return nil, fmt.Errorf("transient failure")
	}
	return f.stubFetcher.SearchOutbound(ctx, req)
}

func TestSearchRetriesOutboundFetch(t *testing.T) {
	fetcher := &flakyFetcher{
		stubFetcher: stubFetcher{outbound: envelope()},
	}
	fetcher.outboundFails.Store(2)

	retrying := New(fetcher, parser.New(nopLogger{}), Config{MaxRetries: 2}, nopLogger{})
	result, err := retrying.Search(context.Background(), models.SearchRequest{})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if result.OutboundOptions != 0 {
		t.Errorf("OutboundOptions = %d, want 0", result.OutboundOptions)
	}
}
