package matcher

import (
	"sync"

	"github.com/baditaflorin/go_field_similarity/internal/adapters/metrics"
	"github.com/baditaflorin/go_field_similarity/internal/core/domain"
	"github.com/baditaflorin/go_field_similarity/internal/ports"
)

// Supported matcher names. These literals are the wire format: selection is
// case-sensitive and there are no aliases.
const (
	Cosine                   = "cosine"
	Dice                     = "dice"
	Jaccard                  = "jaccard"
	JaroWinkler              = "jaro-winkler"
	Levenshtein              = "levenshtein"
	LongestCommonSubsequence = "longest-common-subsequence"
)

// builders is the closed name-to-constructor table. Resolution never falls
// back to dynamic dispatch beyond this fixed lookup.
var builders = map[string]func() ports.NormalizedSimilarity{
	Cosine:                   metrics.NewCosine,
	Dice:                     metrics.NewDice,
	Jaccard:                  metrics.NewJaccard,
	JaroWinkler:              metrics.NewJaroWinkler,
	Levenshtein:              metrics.NewLevenshtein,
	LongestCommonSubsequence: metrics.NewLongestCommonSubsequence,
}

// Names returns the supported matcher names in stable order.
func Names() []string {
	return []string{
		Cosine,
		Dice,
		Jaccard,
		JaroWinkler,
		Levenshtein,
		LongestCommonSubsequence,
	}
}

// Registry resolves matcher names to similarity evaluators. Each evaluator
// is constructed at most once per registry instance and cached for the
// lifetime of the registry.
type Registry struct {
	mu       sync.RWMutex
	matchers map[string]ports.NormalizedSimilarity

	normalizer ports.Normalizer
	logger     ports.Logger
}

// NewRegistry creates a new matcher registry.
func NewRegistry(logger ports.Logger, normalizer ports.Normalizer) *Registry {
	return &Registry{
		matchers:   make(map[string]ports.NormalizedSimilarity, len(builders)),
		normalizer: normalizer,
		logger:     logger,
	}
}

// Score selects the matcher by name, normalizes both inputs and returns the
// evaluator's similarity. An unknown matcher name fails with
// domain.UnsupportedMatcherError and is never cached.
func (r *Registry) Score(matcherName, left, right string) (float64, error) {
	m, err := r.resolve(matcherName)
	if err != nil {
		r.logger.Warn("Unknown matcher requested", "matcher", matcherName)
		return 0, err
	}

	a := r.normalizer.Normalize(left)
	b := r.normalizer.Normalize(right)
	return m.Similarity(a, b), nil
}

// resolve returns the cached evaluator for the name, constructing and
// caching it on first use. The check-then-insert sequence is guarded: a
// duplicate construction would be benign (evaluators are stateless) but a
// torn map write is not.
func (r *Registry) resolve(matcherName string) (ports.NormalizedSimilarity, error) {
	r.mu.RLock()
	m, ok := r.matchers[matcherName]
	r.mu.RUnlock()
	if ok {
		return m, nil
	}

	build, ok := builders[matcherName]
	if !ok {
		return nil, &domain.UnsupportedMatcherError{Name: matcherName}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.matchers[matcherName]; ok {
		return m, nil
	}
	m = build()
	r.matchers[matcherName] = m
	r.logger.Debug("Constructed matcher", "matcher", matcherName)
	return m, nil
}
