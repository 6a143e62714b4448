package metrics

import (
	edlib "github.com/hbollon/go-edlib"

	"github.com/baditaflorin/go_field_similarity/internal/ports"
)

// Dice computes the Sorensen-Dice coefficient between the character bigram
// sets of the two strings.
type Dice struct{}

// NewDice creates a new Sorensen-Dice similarity evaluator.
func NewDice() ports.NormalizedSimilarity {
	return &Dice{}
}

// Similarity returns the Sorensen-Dice coefficient of a and b in [0,1].
// Unequal inputs below the bigram length score 0.
func (Dice) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if belowShingleLength(a, b) {
		return 0
	}
	return float64(edlib.SorensenDiceCoefficient(a, b, shingleLength))
}
