package research

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"webresearch-api/core/domain"
)

// mockDiscovery is a mock implementation of the DiscoveryService interface
type mockDiscovery struct {
	discoverFunc func(ctx context.Context, query string) ([]domain.Candidate, error)
}

func (m *mockDiscovery) Discover(ctx context.Context, query string) ([]domain.Candidate, error) {
	if m.discoverFunc != nil {
		return m.discoverFunc(ctx, query)
	}
	return nil, nil
}

// mockFetcher is a mock implementation of the FetchService interface that
// tracks concurrency of in-flight calls
type mockFetcher struct {
	fetchFunc func(ctx context.Context, url string) domain.FetchResult

	delay       time.Duration
	mu          sync.Mutex
	calls       []string
	inFlight    int32
	maxInFlight int32
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) domain.FetchResult {
	current := atomic.AddInt32(&m.inFlight, 1)
	defer atomic.AddInt32(&m.inFlight, -1)
	for {
		max := atomic.LoadInt32(&m.maxInFlight)
		if current <= max || atomic.CompareAndSwapInt32(&m.maxInFlight, max, current) {
			break
		}
	}

	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return domain.FetchResult{URL: url, OK: true, Content: "content for " + url}
}

// mockLogger is a no-op implementation of the Logger interface
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
