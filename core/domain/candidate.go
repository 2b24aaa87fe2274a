// ABOUTME: Domain models for web search candidates and the merged research response
// ABOUTME: Defines structures flowing from discovery through ranking to the final result

package domain

// Candidate represents a single discovery hit from the search backend.
type Candidate struct {
	// Rank is the 1-based position in the order the backend returned hits.
	// It is assigned once at discovery time and never changes.
	Rank int `json:"rank"`

	// Title is the result title, empty when the backend omits it
	Title string `json:"title"`

	// Link is the result URL, empty when the backend omits it
	Link string `json:"link"`

	// Snippet is the short description, truncated to the configured budget
	Snippet string `json:"snippet"`
}

// ScoredCandidate pairs a candidate with its relevance score.
// It exists only while the ranker selects the deep-fetch subset.
type ScoredCandidate struct {
	Candidate

	// Score is the lexical relevance score; higher is more relevant
	Score float64 `json:"-"`
}

// EnrichedResult is a candidate with its deep-fetch outcome attached.
// InDepth is nil for candidates that were not selected for deep fetch.
type EnrichedResult struct {
	Candidate

	InDepth *FetchResult `json:"indepth"`
}

// SearchResponse is the top-level result of one research query.
// Results always follow the original discovery rank order, regardless of
// which subset was deep-fetched or in what order fetches completed.
type SearchResponse struct {
	OK      bool             `json:"ok"`
	Query   string           `json:"query"`
	Results []EnrichedResult `json:"results"`
	Errors  []string         `json:"errors"`
}
