package metrics

import (
	edlib "github.com/hbollon/go-edlib"

	"github.com/baditaflorin/go_field_similarity/internal/ports"
)

// Jaccard computes the Jaccard index between the character bigram sets of
// the two strings.
type Jaccard struct{}

// NewJaccard creates a new Jaccard similarity evaluator.
func NewJaccard() ports.NormalizedSimilarity {
	return &Jaccard{}
}

// Similarity returns the Jaccard similarity between a and b in [0,1].
// Unequal inputs below the bigram length score 0.
func (Jaccard) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if belowShingleLength(a, b) {
		return 0
	}
	return float64(edlib.JaccardSimilarity(a, b, shingleLength))
}
