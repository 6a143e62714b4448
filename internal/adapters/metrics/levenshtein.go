package metrics

import (
	"github.com/agnivade/levenshtein"

	"github.com/baditaflorin/go_field_similarity/internal/ports"
)

// Levenshtein computes a normalized Levenshtein similarity:
//
//	similarity = 1 - distance / max(len(a), len(b))
//
// where distance is the rune-level edit distance.
type Levenshtein struct{}

// NewLevenshtein creates a new normalized Levenshtein evaluator.
func NewLevenshtein() ports.NormalizedSimilarity {
	return &Levenshtein{}
}

// Similarity returns the normalized Levenshtein similarity in [0,1].
// Two empty strings are identical, so their similarity is 1.
func (Levenshtein) Similarity(a, b string) float64 {
	longest := longestRuneLen(a, b)
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}
