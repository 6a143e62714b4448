package metrics

import (
	edlib "github.com/hbollon/go-edlib"

	"github.com/baditaflorin/go_field_similarity/internal/ports"
)

// Cosine computes the cosine similarity between the character bigram
// profiles of the two strings.
type Cosine struct{}

// NewCosine creates a new cosine similarity evaluator.
func NewCosine() ports.NormalizedSimilarity {
	return &Cosine{}
}

// Similarity returns the cosine similarity between a and b in [0,1].
// Equal inputs short-circuit to 1 so that strings shorter than one bigram
// still satisfy the identity property; unequal inputs below the bigram
// length score 0.
func (Cosine) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if belowShingleLength(a, b) {
		return 0
	}
	return float64(edlib.CosineSimilarity(a, b, shingleLength))
}
