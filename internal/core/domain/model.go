package domain

// FieldMatchSpec declares one field comparison: which document field to
// fetch, the reference value to compare it against, the matcher to use and
// the clamp bounds applied to the raw similarity before fusion.
type FieldMatchSpec struct {
	// FieldName identifies the document field to fetch.
	FieldName string
	// ReferenceValue is the caller-supplied value to compare against.
	ReferenceValue string
	// MatcherName selects the similarity algorithm.
	MatcherName string
	// High is the upper clamp bound, expected in [0,1].
	High float64
	// Low is the lower clamp bound, expected in [0,1].
	Low float64
}

// FieldScore holds the outcome of a single field comparison.
type FieldScore struct {
	FieldName   string
	MatcherName string
	// Raw is the similarity as returned by the matcher.
	Raw float64
	// Score is the raw similarity clamped to [Low, High].
	Score float64
}

// Result holds the outcome of scoring one document against a spec list.
type Result struct {
	// Name of the metric.
	Name string
	// Score is the fused document score.
	Score float64
	// Fields holds the per-field breakdown in evaluation order.
	Fields []FieldScore
}
