package metrics

import (
	"github.com/xrash/smetrics"

	"github.com/baditaflorin/go_field_similarity/internal/ports"
)

// Standard Jaro-Winkler parameters: prefix boost applies above this Jaro
// score, over at most this many leading runes.
const (
	jaroWinklerBoostThreshold = 0.7
	jaroWinklerPrefixSize     = 4
)

// JaroWinkler computes the Jaro-Winkler similarity, which favors strings
// sharing a common prefix.
type JaroWinkler struct{}

// NewJaroWinkler creates a new Jaro-Winkler similarity evaluator.
func NewJaroWinkler() ports.NormalizedSimilarity {
	return &JaroWinkler{}
}

// Similarity returns the Jaro-Winkler similarity between a and b in [0,1].
func (JaroWinkler) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	return smetrics.JaroWinkler(a, b, jaroWinklerBoostThreshold, jaroWinklerPrefixSize)
}
