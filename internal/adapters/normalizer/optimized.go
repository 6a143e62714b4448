package normalizer

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/baditaflorin/go_field_similarity/internal/pool"
	"github.com/baditaflorin/go_field_similarity/internal/ports"
)

// OptimizedNormalizer implements the same trim + case-fold normalization as
// DefaultNormalizer with a pooled fast path for ASCII-only input, which is
// the common case for identifier-like document fields.
type OptimizedNormalizer struct {
	bytePool *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer.
func NewOptimizedNormalizer() ports.Normalizer {
	return &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(256),
	}
}

// Normalize trims surrounding whitespace and lowercases the text. ASCII
// input is handled byte-wise with a pooled buffer; anything else falls back
// to full Unicode case folding.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}
	if !asciiOnly {
		// ASCII case folding and lowercasing agree; for the rest of
		// Unicode only folding is locale-invariant.
		return cases.Fold().String(strings.TrimSpace(text))
	}

	start := 0
	end := len(text)
	for start < end && isASCIISpace(text[start]) {
		start++
	}
	for end > start && isASCIISpace(text[end-1]) {
		end--
	}
	if start == end {
		return ""
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	if cap(*buffer) < end-start {
		*buffer = make([]byte, 0, end-start)
	}
	for i := start; i < end; i++ {
		b := text[i]
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		*buffer = append(*buffer, b)
	}

	return string(*buffer)
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
