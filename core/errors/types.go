// ABOUTME: Custom error types for the web research pipeline
// ABOUTME: Provides structured errors for retry classification and response assembly

package errors

import (
	"errors"
	"fmt"
)

// DiscoveryError represents a failure of the whole discovery call after the
// retry budget is exhausted. It is the only error that surfaces as a
// top-level ok=false response.
type DiscoveryError struct {
	Query    string
	Attempts int
	Err      error
}

// Error implements the error interface
func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed for %q after %d attempts: %v", e.Query, e.Attempts, e.Err)
}

// Unwrap returns the underlying cause
func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// FetchError represents a failed deep fetch of a single URL.
// Transient marks conditions worth retrying (429/502/503/504, network
// timeouts); everything else is permanent.
type FetchError struct {
	URL       string
	Status    int
	Message   string
	Transient bool
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("fetch %s: status %d: %s", e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

// IsDiscovery checks if an error is a DiscoveryError
func IsDiscovery(err error) bool {
	var discoveryErr *DiscoveryError
	return errors.As(err, &discoveryErr)
}

// IsTransient checks if an error is a FetchError marked retryable
func IsTransient(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Transient
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
