// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/disk: File-per-entry cache with TTL enforced on read
// - cache/memory: In-memory cache backed by go-cache
// - http/standard: Standard library HTTP client
// - logger/logrus: Structured logger built on logrus
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include unit tests alongside each implementation
//
// # Cache Implementations
//
// Disk Cache Example:
//
//	cache, err := disk.NewDiskCache("/var/cache/research", 24*time.Hour, logger)
//	err = cache.Set(ctx, key, []byte("value"), 0)
//	value, err := cache.Get(ctx, key)
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//
// # HTTP Client
//
// The HTTP client is a thin wrapper; retry policy belongs to the
// services that know which failures are transient:
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com", nil)
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := logruslogger.New("info")
//	logger.Info("request complete", map[string]interface{}{
//	    "path":   "/search",
//	    "status": 200,
//	})
package infrastructure
