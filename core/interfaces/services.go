// ABOUTME: Service interfaces for the web research pipeline stages
// ABOUTME: Lets the orchestrator and HTTP handlers depend on contracts, not implementations

package interfaces

import (
	"context"

	"webresearch-api/core/domain"
)

// DiscoveryService finds candidate pages for a query via the search backend.
type DiscoveryService interface {
	// Discover returns candidates in backend order with 1-based ranks.
	// A backend failure surfaces as a single error for the whole call,
	// never as per-candidate errors.
	Discover(ctx context.Context, query string) ([]domain.Candidate, error)
}

// FetchService retrieves full extracted text for a single URL.
type FetchService interface {
	// Fetch never returns an error; every failure mode maps to a
	// FetchResult with OK set to false.
	Fetch(ctx context.Context, url string) domain.FetchResult
}

// ResearchService is the public operation surface of the pipeline.
type ResearchService interface {
	// SearchWeb runs discovery, ranking, and deep fetch for a query and
	// merges everything into a single structured response.
	SearchWeb(ctx context.Context, query string) domain.SearchResponse
}
