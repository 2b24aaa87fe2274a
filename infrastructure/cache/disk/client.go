// ABOUTME: Flat-file cache implementation with one JSON file per key
// ABOUTME: Provides a disk-backed cache with TTL expiry that survives restarts

package disk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"webresearch-api/core/interfaces"
)

// record is the on-disk entry format. FetchedAt is epoch seconds.
type record struct {
	Content   string  `json:"content"`
	FetchedAt float64 `json:"_fetched_at"`
}

// Client implements the Cache interface using one file per key.
// Keys are expected to be content-addressed (hex hashes), so writes to
// distinct keys never collide and same-key writes are idempotent
// overwrites; no cross-process locking is needed.
type Client struct {
	dir    string
	ttl    time.Duration
	logger interfaces.Logger
}

// NewDiskCache creates a disk cache rooted at dir, creating it if absent.
// Entries older than ttl read as absent and are best-effort deleted.
func NewDiskCache(dir string, ttl time.Duration, logger interfaces.Logger) (*Client, error) {
	if dir == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("cache TTL must be positive")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Client{
		dir:    dir,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Get retrieves a value from the cache.
// It returns an error when the entry is missing, unparsable, or expired;
// expired and corrupt entries are deleted on the way out.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path, err := c.entryPath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("key not found")
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		c.remove(path, "unparsable cache entry")
		return nil, errors.New("key not found")
	}

	fetchedAt := time.Unix(0, int64(rec.FetchedAt*float64(time.Second)))
	if time.Since(fetchedAt) > c.ttl {
		c.remove(path, "expired cache entry")
		return nil, errors.New("key not found")
	}

	return []byte(rec.Content), nil
}

// Set stores a value, overwriting any existing entry and stamping the
// current time. The per-call ttl is ignored: the on-disk record carries
// only the fetch time, and the store's configured TTL governs expiry.
func (c *Client) Set(ctx context.Context, key string, value []byte, _ time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path, err := c.entryPath(key)
	if err != nil {
		return err
	}

	rec := record{
		Content:   string(value),
		FetchedAt: float64(time.Now().UnixNano()) / float64(time.Second),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	return nil
}

// Delete removes a key from the cache.
func (c *Client) Delete(ctx context.Context, key string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path, err := c.entryPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// entryPath maps a key to its file, rejecting keys that would escape dir.
func (c *Client) entryPath(key string) (string, error) {
	if key == "" {
		return "", errors.New("key cannot be empty")
	}
	if strings.ContainsAny(key, "/\\") || key == "." || key == ".." {
		return "", fmt.Errorf("invalid cache key %q", key)
	}
	return filepath.Join(c.dir, key), nil
}

// remove deletes a stale entry; failure to delete is logged, never returned.
func (c *Client) remove(path, reason string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		if c.logger != nil {
			c.logger.Warn("Failed to delete "+reason, map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
	}
}
