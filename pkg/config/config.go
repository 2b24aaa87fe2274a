// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, search, reader, and cache settings

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Search contains discovery backend configuration
	Search SearchConfig

	// Reader contains deep-fetch / reader service configuration
	Reader ReaderConfig

	// Cache contains cache store configuration
	Cache CacheConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// SearchConfig holds discovery backend configuration
type SearchConfig struct {
	// BaseURL is the search backend endpoint
	BaseURL string

	// Region is the search region passed to the backend
	Region string

	// MaxResults caps the number of candidates collected per query
	MaxResults int

	// SnippetMaxChars is the snippet truncation budget
	SnippetMaxChars int

	// TopK is the number of top-ranked candidates selected for deep fetch
	TopK int
}

// ReaderConfig holds deep-fetch configuration
type ReaderConfig struct {
	// BaseURL is the reader service endpoint; when empty, pages are
	// fetched directly and text is extracted locally
	BaseURL string

	// APIKey is the optional bearer token sent to the reader service
	APIKey string

	// TimeoutSeconds is the per-fetch timeout
	TimeoutSeconds int

	// MaxConcurrency caps in-flight deep fetches per query
	MaxConcurrency int

	// MaxRetries is the number of additional attempts after the first
	MaxRetries int

	// ContentMaxChars is the fetched-content truncation budget
	ContentMaxChars int
}

// CacheConfig holds cache store configuration
type CacheConfig struct {
	// Dir is the directory holding one file per cached URL
	Dir string

	// TTLHours is the entry time-to-live in hours
	TTLHours int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Search: SearchConfig{
			BaseURL:         getEnvOrDefault("SEARCH_BASE_URL", ""),
			Region:          getEnvOrDefault("SEARCH_REGION", "in"),
			MaxResults:      getEnvAsIntOrDefault("SEARCH_MAX_RESULTS", 20),
			SnippetMaxChars: getEnvAsIntOrDefault("SEARCH_SNIPPET_MAX_CHARS", 2000),
			TopK:            getEnvAsIntOrDefault("SEARCH_TOP_K", 2),
		},
		Reader: ReaderConfig{
			BaseURL:         getEnvOrDefault("READER_BASE_URL", ""),
			APIKey:          getEnvOrDefault("JINA_API_KEY", ""),
			TimeoutSeconds:  getEnvAsIntOrDefault("JINA_TIMEOUT_SECONDS", 30),
			MaxConcurrency:  getEnvAsIntOrDefault("JINA_MAX_CONCURRENCY", 3),
			MaxRetries:      getEnvAsIntOrDefault("JINA_MAX_RETRIES", 2),
			ContentMaxChars: getEnvAsIntOrDefault("JINA_CONTENT_MAX_CHARS", 20000),
		},
		Cache: CacheConfig{
			Dir:      getEnvOrDefault("CACHE_DIR", "./cache"),
			TTLHours: getEnvAsIntOrDefault("CACHE_TTL_HOURS", 24),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Search.BaseURL == "" {
		return errors.New("search base URL cannot be empty")
	}

	if c.Search.MaxResults < 1 {
		return errors.New("search max results must be at least 1")
	}

	if c.Search.TopK < 0 {
		return errors.New("search top K cannot be negative")
	}

	if c.Reader.TimeoutSeconds < 1 {
		return errors.New("reader timeout must be at least 1 second")
	}

	if c.Reader.MaxConcurrency < 1 {
		return errors.New("reader max concurrency must be at least 1")
	}

	if c.Cache.Dir == "" {
		return errors.New("cache directory cannot be empty")
	}

	if c.Cache.TTLHours < 1 {
		return errors.New("cache TTL must be at least 1 hour")
	}

	return nil
}
