package metrics

import (
	edlib "github.com/hbollon/go-edlib"

	"github.com/baditaflorin/go_field_similarity/internal/ports"
)

// LongestCommonSubsequence adapts the LCS edit distance, whose native form
// is a distance, into a similarity:
//
//	similarity = 1 - distance / max(len(a), len(b))
//
// The LCS edit distance only allows insertions and deletions, so it can
// reach len(a)+len(b) for fully disjoint strings and the similarity can go
// below 0. Callers clamp field scores before fusing them.
type LongestCommonSubsequence struct{}

// NewLongestCommonSubsequence creates a new LCS similarity adapter.
func NewLongestCommonSubsequence() ports.NormalizedSimilarity {
	return &LongestCommonSubsequence{}
}

// Similarity returns the LCS-derived similarity. Two empty strings are
// identical, so their similarity is 1.
func (LongestCommonSubsequence) Similarity(a, b string) float64 {
	longest := longestRuneLen(a, b)
	if longest == 0 {
		return 1
	}
	distance := edlib.LCSEditDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}
