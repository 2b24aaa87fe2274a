// ABOUTME: URL normalization and cache key derivation helpers
// ABOUTME: Normalized URLs hash to fixed-length, filesystem-safe cache keys

package urlutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/PuerkitoBio/purell"
)

// Normalize canonicalizes a URL so equivalent spellings map to one form.
func Normalize(rawURL string) (string, error) {
	flags := purell.FlagLowercaseScheme |
		purell.FlagLowercaseHost |
		purell.FlagRemoveDefaultPort |
		purell.FlagRemoveFragment |
		purell.FlagDecodeUnnecessaryEscapes |
		purell.FlagSortQuery |
		purell.FlagRemoveDuplicateSlashes |
		purell.FlagRemoveDotSegments

	return purell.NormalizeURLString(strings.TrimSpace(rawURL), flags)
}

// CacheKey derives the cache key for a URL: the hex-encoded SHA-256 of its
// normalized form. When normalization fails the raw URL is hashed instead,
// so a key is always produced.
func CacheKey(rawURL string) string {
	normalized, err := Normalize(rawURL)
	if err != nil {
		normalized = rawURL
	}
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
