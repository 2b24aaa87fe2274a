// ABOUTME: Relevance ranker that scores discovery candidates by lexical overlap
// ABOUTME: Selects the bounded subset of candidates worth deep-fetching

package ranking

import (
	"math"
	"sort"
	"strings"

	"webresearch-api/core/domain"
)

const (
	// snippetBonusCap is the snippet length at which the length bonus saturates
	snippetBonusCap = 800

	// overlapWeight is the weight of each query term found in the candidate text
	overlapWeight = 2.0
)

// SelectTop scores all candidates and returns the top k by descending score.
// Ties keep encounter order (stable sort). Selection is total: a candidate
// that cannot be scored gets score 0 rather than aborting the pass.
func SelectTop(query string, candidates []domain.Candidate, k int) []domain.Candidate {
	if k > len(candidates) {
		k = len(candidates)
	}
	if k <= 0 {
		return []domain.Candidate{}
	}

	terms := strings.Fields(strings.ToLower(query))

	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, domain.ScoredCandidate{
			Candidate: c,
			Score:     score(terms, c),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	top := make([]domain.Candidate, k)
	for i := 0; i < k; i++ {
		top[i] = scored[i].Candidate
	}
	return top
}

// score computes 2*overlap + lengthBonus + rankBonus from the truncated,
// lowercased candidate text. A panic while scoring one candidate yields 0.
func score(terms []string, c domain.Candidate) (s float64) {
	defer func() {
		if recover() != nil {
			s = 0
		}
	}()

	text := strings.ToLower(c.Title + " " + c.Snippet)

	overlap := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			overlap++
		}
	}

	lengthBonus := math.Min(float64(len(c.Snippet)), snippetBonusCap) / snippetBonusCap
	rankBonus := 1 / (1 + float64(c.Rank)/10)

	return overlapWeight*float64(overlap) + lengthBonus + rankBonus
}
