package ports

// NormalizedSimilarity defines the interface for a string similarity
// evaluator. Similarity is symmetric and returns 1.0 for identical inputs
// and 0.0 for maximally dissimilar inputs.
type NormalizedSimilarity interface {
	Similarity(a, b string) float64
}

// MatcherScorer resolves a named matcher and scores two strings with it.
type MatcherScorer interface {
	Score(matcherName, left, right string) (float64, error)
}
