// ABOUTME: Discovery service queries the external text-search backend for a topic
// ABOUTME: Converts raw hits into rank-ordered candidates with truncated snippets

package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"webresearch-api/core/domain"
	apperrors "webresearch-api/core/errors"
	"webresearch-api/core/interfaces"
	"webresearch-api/pkg/retry"
)

const (
	defaultMaxResults      = 20
	defaultSnippetMaxChars = 2000
	retryBudget            = 2
	backoffStep            = 200 * time.Millisecond
)

// Config holds discovery backend settings
type Config struct {
	// BaseURL is the search backend endpoint
	BaseURL string

	// Region is passed through to the backend
	Region string

	// MaxResults caps the number of candidates collected
	MaxResults int

	// SnippetMaxChars is the snippet truncation budget
	SnippetMaxChars int
}

// Service handles candidate discovery through the search backend
type Service struct {
	deps   interfaces.Dependencies
	cfg    Config
	policy retry.Policy
}

// NewService creates a new discovery service instance
func NewService(deps interfaces.Dependencies, cfg Config) *Service {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.SnippetMaxChars <= 0 {
		cfg.SnippetMaxChars = defaultSnippetMaxChars
	}

	return &Service{
		deps: deps,
		cfg:  cfg,
		policy: retry.Policy{
			MaxRetries: retryBudget,
			Backoff:    retry.Linear(backoffStep, 0),
		},
	}
}

// Discover issues one search request and returns candidates in backend
// order with 1-based ranks. The whole call is retried on failure; after the
// budget is exhausted the last error surfaces as a single DiscoveryError.
func (s *Service) Discover(ctx context.Context, query string) ([]domain.Candidate, error) {
	if query == "" {
		return nil, errors.New("search query cannot be empty")
	}
	if s.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	var candidates []domain.Candidate
	attempts := 0

	err := s.policy.Do(ctx, func() error {
		attempts++
		result, err := s.search(ctx, query)
		if err != nil {
			s.deps.Logger.Warn("Discovery attempt failed", map[string]interface{}{
				"query":   query,
				"attempt": attempts,
				"error":   err.Error(),
			})
			return err
		}
		candidates = result
		return nil
	})
	if err != nil {
		return nil, &apperrors.DiscoveryError{Query: query, Attempts: attempts, Err: err}
	}

	s.deps.Logger.Debug("Discovery completed", map[string]interface{}{
		"query":      query,
		"candidates": len(candidates),
	})
	return candidates, nil
}

// rawHit mirrors the backend's result shape; alternate field names cover
// the backends in the wild (href vs link, body vs snippet).
type rawHit struct {
	Title   string `json:"title"`
	Heading string `json:"heading"`
	Href    string `json:"href"`
	Link    string `json:"link"`
	Body    string `json:"body"`
	Snippet string `json:"snippet"`
}

func (s *Service) search(ctx context.Context, query string) ([]domain.Candidate, error) {
	apiURL := fmt.Sprintf("%s?q=%s&kl=%s&safesearch=off&max_results=%d",
		s.cfg.BaseURL, url.QueryEscape(query), url.QueryEscape(s.cfg.Region), s.cfg.MaxResults)

	resp, err := s.deps.HTTPClient.Get(ctx, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to reach search backend: %w", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("search backend returned status %d", resp.StatusCode())
	}

	bodyBytes, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	var apiResponse struct {
		Results []rawHit `json:"results"`
	}
	if err := json.Unmarshal(bodyBytes, &apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(apiResponse.Results))
	for _, hit := range apiResponse.Results {
		if len(candidates) >= s.cfg.MaxResults {
			break
		}
		candidates = append(candidates, domain.Candidate{
			Rank:    len(candidates) + 1,
			Title:   firstNonEmpty(hit.Title, hit.Heading),
			Link:    firstNonEmpty(hit.Href, hit.Link),
			Snippet: truncate(firstNonEmpty(hit.Snippet, hit.Body), s.cfg.SnippetMaxChars),
		})
	}

	return candidates, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
