// ABOUTME: Domain model for the outcome of a single deep-fetch attempt
// ABOUTME: All failure modes map to a non-OK FetchResult rather than an error

package domain

// FetchResult captures the outcome of one deep fetch of a URL through the
// reader service. It is produced exactly once per fetch invocation and is
// never persisted.
type FetchResult struct {
	URL string `json:"url"`

	// OK reports whether usable content was obtained, from cache or network
	OK bool `json:"ok"`

	// Status is the HTTP status code of the last response, nil when the
	// failure happened below the HTTP layer or the content came from cache
	Status *int `json:"status,omitempty"`

	// Content is the extracted page text, truncated to the configured budget
	Content string `json:"content,omitempty"`

	// Error describes the failure when OK is false
	Error string `json:"error,omitempty"`

	// Cached reports whether Content was served from the cache store
	Cached bool `json:"cached"`
}
