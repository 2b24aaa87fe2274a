// ABOUTME: Deep-fetch service retrieves full extracted text for a single URL
// ABOUTME: Consults the cache store, calls the reader service, and never returns an error

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"webresearch-api/core/domain"
	apperrors "webresearch-api/core/errors"
	"webresearch-api/core/interfaces"
	"webresearch-api/pkg/retry"
	"webresearch-api/pkg/urlutil"

	readability "github.com/go-shiori/go-readability"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultRetryBudget     = 2
	defaultContentMaxChars = 20000
	defaultCacheTTL        = 24 * time.Hour

	// maxBodyBytes bounds how much of a direct (non-reader) response is
	// read before text extraction
	maxBodyBytes = 5 * 1024 * 1024

	// errBodyMaxChars bounds how much of an error body lands in FetchResult.Error
	errBodyMaxChars = 500
)

// transientStatuses are HTTP statuses worth retrying
var transientStatuses = map[int]bool{
	429: true,
	502: true,
	503: true,
	504: true,
}

// Config holds deep-fetch settings
type Config struct {
	// ReaderBaseURL is the reader service endpoint; when empty, pages are
	// fetched directly and readable text is extracted locally
	ReaderBaseURL string

	// APIKey is the optional bearer token for the reader service
	APIKey string

	// Timeout bounds each fetch attempt
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after the first
	MaxRetries int

	// ContentMaxChars is the truncation budget applied before caching and returning
	ContentMaxChars int

	// CacheTTL is the lifetime of cached content
	CacheTTL time.Duration
}

// Service fetches full page text through the reader service with caching
// and bounded retries.
type Service struct {
	deps interfaces.Dependencies
	cfg  Config

	// backoff functions are fields so tests can collapse the delays
	httpBackoff retry.BackoffFunc
	netBackoff  retry.BackoffFunc
}

// NewService creates a new deep-fetch service instance
func NewService(deps interfaces.Dependencies, cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultRetryBudget
	}
	if cfg.ContentMaxChars <= 0 {
		cfg.ContentMaxChars = defaultContentMaxChars
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	return &Service{
		deps:        deps,
		cfg:         cfg,
		httpBackoff: retry.ExponentialJitter(time.Second, 10*time.Second, 500*time.Millisecond),
		netBackoff:  retry.Linear(500*time.Millisecond, 10*time.Second),
	}
}

// Fetch retrieves extracted text for a URL. It never returns an error: every
// failure mode maps to a FetchResult with OK false.
func (s *Service) Fetch(ctx context.Context, rawURL string) domain.FetchResult {
	if strings.TrimSpace(rawURL) == "" {
		return domain.FetchResult{URL: rawURL, Error: "empty url"}
	}

	cacheKey := urlutil.CacheKey(rawURL)

	if content, ok := s.cacheLookup(ctx, cacheKey); ok {
		s.deps.Logger.Debug("Deep fetch served from cache", map[string]interface{}{
			"url": rawURL,
		})
		return domain.FetchResult{URL: rawURL, OK: true, Content: content, Cached: true}
	}

	endpoint, headers := s.endpoint(rawURL)

	attempts := s.cfg.MaxRetries + 1
	var lastErr *apperrors.FetchError

	for attempt := 1; attempt <= attempts; attempt++ {
		result, ferr := s.fetchOnce(ctx, rawURL, endpoint, headers)
		if ferr == nil {
			s.cacheStore(ctx, cacheKey, rawURL, result.Content)
			return result
		}

		if !ferr.Transient {
			res := domain.FetchResult{URL: rawURL, Error: ferr.Message}
			if ferr.Status > 0 {
				status := ferr.Status
				res.Status = &status
			}
			return res
		}

		lastErr = ferr
		s.deps.Logger.Warn("Deep fetch attempt failed", map[string]interface{}{
			"url":     rawURL,
			"attempt": attempt,
			"error":   ferr.Message,
		})

		if attempt < attempts {
			// HTTP-level transients back off exponentially with jitter,
			// network-level failures linearly
			var delay time.Duration
			if ferr.Status > 0 {
				delay = s.httpBackoff(attempt)
			} else {
				delay = s.netBackoff(attempt)
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return domain.FetchResult{URL: rawURL, Error: ctx.Err().Error()}
			}
		}
	}

	res := domain.FetchResult{URL: rawURL, Error: lastErr.Message}
	if lastErr.Status > 0 {
		status := lastErr.Status
		res.Status = &status
	}
	return res
}

// endpoint builds the request target: the reader service when configured,
// the page itself otherwise.
func (s *Service) endpoint(rawURL string) (string, map[string]string) {
	if s.cfg.ReaderBaseURL == "" {
		return rawURL, nil
	}

	endpoint := strings.TrimRight(s.cfg.ReaderBaseURL, "/") + "/" + rawURL
	if s.cfg.APIKey == "" {
		return endpoint, nil
	}
	return endpoint, map[string]string{
		"Authorization": "Bearer " + s.cfg.APIKey,
	}
}

// fetchOnce performs one attempt. A nil FetchError means success.
func (s *Service) fetchOnce(ctx context.Context, rawURL, endpoint string, headers map[string]string) (domain.FetchResult, *apperrors.FetchError) {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.deps.HTTPClient.Get(reqCtx, endpoint, headers)
	if err != nil {
		return domain.FetchResult{}, &apperrors.FetchError{
			URL:       rawURL,
			Message:   err.Error(),
			Transient: true,
		}
	}
	defer resp.Body().Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxBodyBytes))
	if err != nil {
		return domain.FetchResult{}, &apperrors.FetchError{
			URL:       rawURL,
			Message:   fmt.Sprintf("failed to read response: %v", err),
			Transient: true,
		}
	}

	status := resp.StatusCode()
	switch {
	case status == 200:
		content := string(body)
		if s.cfg.ReaderBaseURL == "" {
			content = s.extractText(rawURL, body)
		}
		return domain.FetchResult{
			URL:     rawURL,
			OK:      true,
			Status:  &status,
			Content: truncate(content, s.cfg.ContentMaxChars),
		}, nil

	case transientStatuses[status]:
		return domain.FetchResult{}, &apperrors.FetchError{
			URL:       rawURL,
			Status:    status,
			Message:   fmt.Sprintf("transient status %d", status),
			Transient: true,
		}

	default:
		return domain.FetchResult{}, &apperrors.FetchError{
			URL:     rawURL,
			Status:  status,
			Message: truncate(string(body), errBodyMaxChars),
		}
	}
}

// extractText pulls readable text out of raw HTML when fetching pages
// directly. Extraction failure degrades to the raw body.
func (s *Service) extractText(rawURL string, body []byte) string {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return string(body)
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		s.deps.Logger.Warn("Failed to extract readable text", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return string(body)
	}
	return article.TextContent
}

// cacheLookup returns cached content for the key. Cache errors read as a miss.
func (s *Service) cacheLookup(ctx context.Context, key string) (string, bool) {
	if s.deps.Cache == nil {
		return "", false
	}
	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil || data == nil {
		return "", false
	}
	return string(data), true
}

// cacheStore persists fetched content. Write failures are logged and
// swallowed; caching must never fail the surrounding fetch.
func (s *Service) cacheStore(ctx context.Context, key, rawURL, content string) {
	if s.deps.Cache == nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, []byte(content), s.cfg.CacheTTL); err != nil {
		s.deps.Logger.Warn("Failed to cache fetched content", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
	}
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
