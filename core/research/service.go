// ABOUTME: Research service orchestrates discovery, ranking, and bounded deep fetch
// ABOUTME: Merges everything into one SearchResponse tolerating partial failure

package research

import (
	"context"
	"fmt"
	"sync"

	"webresearch-api/core/domain"
	"webresearch-api/core/interfaces"
	"webresearch-api/core/ranking"
)

const (
	defaultTopK           = 2
	defaultMaxConcurrency = 3
)

// Config holds orchestration settings
type Config struct {
	// TopK is the number of top-ranked candidates selected for deep fetch
	TopK int

	// MaxConcurrency caps in-flight deep fetches per query
	MaxConcurrency int
}

// Service runs the web research pipeline end to end
type Service struct {
	deps      interfaces.Dependencies
	discovery interfaces.DiscoveryService
	fetcher   interfaces.FetchService
	cfg       Config
}

// NewService creates a new research service instance
func NewService(deps interfaces.Dependencies, discovery interfaces.DiscoveryService, fetcher interfaces.FetchService, cfg Config) *Service {
	if cfg.TopK <= 0 {
		cfg.TopK = defaultTopK
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = defaultMaxConcurrency
	}

	return &Service{
		deps:      deps,
		discovery: discovery,
		fetcher:   fetcher,
		cfg:       cfg,
	}
}

// SearchWeb performs a web search and deep-fetches the most relevant hits.
// Discovery failure is the only condition yielding ok=false; everything
// downstream degrades to partial results.
func (s *Service) SearchWeb(ctx context.Context, query string) domain.SearchResponse {
	candidates, err := s.discovery.Discover(ctx, query)
	if err != nil {
		s.deps.Logger.Error("Discovery failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return domain.SearchResponse{
			OK:      false,
			Query:   query,
			Results: []domain.EnrichedResult{},
			Errors:  []string{err.Error()},
		}
	}

	return s.Run(ctx, query, candidates)
}

// Run ranks the given candidates, deep-fetches the top subset under the
// concurrency cap, and merges fetch results onto the full candidate list
// in original discovery order.
func (s *Service) Run(ctx context.Context, query string, candidates []domain.Candidate) domain.SearchResponse {
	fetched := s.fetchPhase(ctx, query, candidates)

	results := make([]domain.EnrichedResult, 0, len(candidates))
	for _, c := range candidates {
		enriched := domain.EnrichedResult{Candidate: c}
		if fr, ok := fetched[c.Link]; ok {
			result := fr
			enriched.InDepth = &result
		}
		results = append(results, enriched)
	}

	return domain.SearchResponse{
		OK:      true,
		Query:   query,
		Results: results,
		Errors:  []string{},
	}
}

// fetchPhase selects the top candidates and fetches them concurrently,
// keyed by URL. A panic anywhere in the phase degrades the whole query to
// discovery-only results instead of failing it.
func (s *Service) fetchPhase(ctx context.Context, query string, candidates []domain.Candidate) (fetched map[string]domain.FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			s.deps.Logger.Error("Deep fetch phase failed", map[string]interface{}{
				"query": query,
				"panic": fmt.Sprint(r),
			})
			fetched = nil
		}
	}()

	top := ranking.SelectTop(query, candidates, s.cfg.TopK)
	if len(top) == 0 {
		return map[string]domain.FetchResult{}
	}

	results := make([]domain.FetchResult, len(top))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, s.cfg.MaxConcurrency)

	for i, candidate := range top {
		wg.Add(1)
		go func(index int, link string) {
			defer wg.Done()
			defer func() {
				// a panicking fetch is captured as that result's
				// failure, never propagated to siblings
				if r := recover(); r != nil {
					results[index] = domain.FetchResult{
						URL:   link,
						Error: fmt.Sprint(r),
					}
				}
			}()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[index] = s.fetcher.Fetch(ctx, link)
		}(i, candidate.Link)
	}
	wg.Wait()

	fetched = make(map[string]domain.FetchResult, len(results))
	for _, r := range results {
		fetched[r.URL] = r
	}
	return fetched
}
