package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"webresearch-api/core/domain"
	apperrors "webresearch-api/core/errors"
	"webresearch-api/core/interfaces"
)

func deps() interfaces.Dependencies {
	return interfaces.Dependencies{Logger: &mockLogger{}}
}

func candidateSet(n int) []domain.Candidate {
	out := make([]domain.Candidate, n)
	for i := range out {
		out[i] = domain.Candidate{
			Rank:    i + 1,
			Title:   fmt.Sprintf("result %d", i+1),
			Link:    fmt.Sprintf("https://example.com/%d", i+1),
			Snippet: "some snippet text",
		}
	}
	return out
}

func TestSearchWeb_DiscoveryFailure(t *testing.T) {
	discovery := &mockDiscovery{
		discoverFunc: func(ctx context.Context, query string) ([]domain.Candidate, error) {
			return nil, &apperrors.DiscoveryError{Query: query, Attempts: 3, Err: errors.New("unreachable")}
		},
	}
	fetcher := &mockFetcher{}
	svc := NewService(deps(), discovery, fetcher, Config{})

	resp := svc.SearchWeb(context.Background(), "anything")

	if resp.OK {
		t.Error("response should not be OK when discovery fails")
	}
	if len(resp.Results) != 0 {
		t.Errorf("Results length = %d, want 0", len(resp.Results))
	}
	if len(resp.Errors) != 1 || !strings.Contains(resp.Errors[0], "unreachable") {
		t.Errorf("Errors = %v, want discovery summary", resp.Errors)
	}
	if len(fetcher.calls) != 0 {
		t.Error("no fetches should be attempted after discovery failure")
	}
}

func TestSearchWeb_OrderPreservation(t *testing.T) {
	input := candidateSet(5)
	discovery := &mockDiscovery{
		discoverFunc: func(ctx context.Context, query string) ([]domain.Candidate, error) {
			return input, nil
		},
	}
	fetcher := &mockFetcher{}
	svc := NewService(deps(), discovery, fetcher, Config{TopK: 2, MaxConcurrency: 3})

	resp := svc.SearchWeb(context.Background(), "query")

	if !resp.OK {
		t.Fatalf("response not OK: %v", resp.Errors)
	}
	if len(resp.Results) != 5 {
		t.Fatalf("Results length = %d, want all 5 candidates", len(resp.Results))
	}
	for i, r := range resp.Results {
		if r.Rank != i+1 {
			t.Errorf("Results[%d].Rank = %d, want %d", i, r.Rank, i+1)
		}
	}
}

func TestSearchWeb_OnlyTopKFetched(t *testing.T) {
	discovery := &mockDiscovery{
		discoverFunc: func(ctx context.Context, query string) ([]domain.Candidate, error) {
			return candidateSet(5), nil
		},
	}
	fetcher := &mockFetcher{}
	svc := NewService(deps(), discovery, fetcher, Config{TopK: 2})

	resp := svc.SearchWeb(context.Background(), "query")

	if len(fetcher.calls) != 2 {
		t.Errorf("fetched %d URLs, want 2", len(fetcher.calls))
	}
	enrichedCount := 0
	for _, r := range resp.Results {
		if r.InDepth != nil {
			enrichedCount++
		}
	}
	if enrichedCount != 2 {
		t.Errorf("%d results enriched, want 2", enrichedCount)
	}
}

func TestSearchWeb_MixedFetchOutcomes(t *testing.T) {
	input := candidateSet(5)
	discovery := &mockDiscovery{
		discoverFunc: func(ctx context.Context, query string) ([]domain.Candidate, error) {
			return input, nil
		},
	}
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, url string) domain.FetchResult {
			if url == input[0].Link {
				return domain.FetchResult{URL: url, OK: true, Content: "Paris is the capital..."}
			}
			return domain.FetchResult{URL: url, Error: "context deadline exceeded"}
		},
	}
	svc := NewService(deps(), discovery, fetcher, Config{TopK: 2})

	resp := svc.SearchWeb(context.Background(), "capital of France")

	if !resp.OK {
		t.Fatal("one failed fetch must not fail the query")
	}
	if len(resp.Results) != 5 {
		t.Fatalf("Results length = %d, want 5", len(resp.Results))
	}

	var okCount, failCount, nilCount int
	for _, r := range resp.Results {
		switch {
		case r.InDepth == nil:
			nilCount++
		case r.InDepth.OK:
			okCount++
		default:
			failCount++
		}
	}
	if okCount != 1 || failCount != 1 || nilCount != 3 {
		t.Errorf("ok/fail/nil = %d/%d/%d, want 1/1/3", okCount, failCount, nilCount)
	}
}

func TestSearchWeb_ConcurrencyBound(t *testing.T) {
	discovery := &mockDiscovery{
		discoverFunc: func(ctx context.Context, query string) ([]domain.Candidate, error) {
			return candidateSet(10), nil
		},
	}
	fetcher := &mockFetcher{delay: 30 * time.Millisecond}
	svc := NewService(deps(), discovery, fetcher, Config{TopK: 10, MaxConcurrency: 3})

	svc.SearchWeb(context.Background(), "query")

	if len(fetcher.calls) != 10 {
		t.Fatalf("fetched %d URLs, want 10", len(fetcher.calls))
	}
	if fetcher.maxInFlight > 3 {
		t.Errorf("max in-flight fetches = %d, want at most 3", fetcher.maxInFlight)
	}
}

func TestSearchWeb_EmptyCandidateListIsOK(t *testing.T) {
	discovery := &mockDiscovery{
		discoverFunc: func(ctx context.Context, query string) ([]domain.Candidate, error) {
			return []domain.Candidate{}, nil
		},
	}
	fetcher := &mockFetcher{}
	svc := NewService(deps(), discovery, fetcher, Config{})

	resp := svc.SearchWeb(context.Background(), "obscure query")

	if !resp.OK {
		t.Error("empty discovery result without error should still be OK")
	}
	if len(resp.Results) != 0 {
		t.Errorf("Results length = %d, want 0", len(resp.Results))
	}
	if len(fetcher.calls) != 0 {
		t.Error("nothing should be fetched for an empty candidate list")
	}
}

func TestSearchWeb_PanickingFetcherDegradesResult(t *testing.T) {
	discovery := &mockDiscovery{
		discoverFunc: func(ctx context.Context, query string) ([]domain.Candidate, error) {
			return candidateSet(3), nil
		},
	}
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, url string) domain.FetchResult {
			panic("fetch subsystem exploded")
		},
	}
	svc := NewService(deps(), discovery, fetcher, Config{TopK: 2})

	resp := svc.SearchWeb(context.Background(), "query")

	if !resp.OK {
		t.Error("panicking fetch subsystem should degrade, not fail the query")
	}
	if len(resp.Results) != 3 {
		t.Fatalf("Results length = %d, want 3", len(resp.Results))
	}
	for _, r := range resp.Results {
		if r.InDepth != nil && r.InDepth.OK {
			t.Error("no result should report a successful fetch")
		}
	}
}

func TestRun_QueryEchoedInResponse(t *testing.T) {
	discovery := &mockDiscovery{
		discoverFunc: func(ctx context.Context, query string) ([]domain.Candidate, error) {
			return candidateSet(1), nil
		},
	}
	svc := NewService(deps(), discovery, &mockFetcher{}, Config{})

	resp := svc.SearchWeb(context.Background(), "capital of France")

	if resp.Query != "capital of France" {
		t.Errorf("Query = %q", resp.Query)
	}
}

func TestSearchWeb_MergeByURL(t *testing.T) {
	input := candidateSet(4)
	discovery := &mockDiscovery{
		discoverFunc: func(ctx context.Context, query string) ([]domain.Candidate, error) {
			return input, nil
		},
	}
	fetcher := &mockFetcher{}
	svc := NewService(deps(), discovery, fetcher, Config{TopK: 4, MaxConcurrency: 2})

	resp := svc.SearchWeb(context.Background(), "query")

	for _, r := range resp.Results {
		if r.InDepth == nil {
			t.Fatalf("candidate %s missing fetch result", r.Link)
		}
		if r.InDepth.URL != r.Link {
			t.Errorf("result for %s carries fetch of %s", r.Link, r.InDepth.URL)
		}
	}
}
