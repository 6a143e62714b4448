package normalizer

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/baditaflorin/go_field_similarity/internal/ports"
)

// DefaultNormalizer implements the default match-input normalization:
// surrounding whitespace is trimmed and the text is case-folded so that
// comparisons are locale-invariant.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize trims surrounding whitespace and applies Unicode case folding.
// A fresh Caser is used per call; cases.Caser carries transform state and
// is not safe for concurrent use.
func (n *DefaultNormalizer) Normalize(text string) string {
	return cases.Fold().String(strings.TrimSpace(text))
}
