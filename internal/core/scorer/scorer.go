package scorer

import (
	"context"
	"math"

	"github.com/baditaflorin/go_field_similarity/internal/core/domain"
	"github.com/baditaflorin/go_field_similarity/internal/ports"
)

// FieldScorer evaluates a document against an ordered list of field match
// specifications and fuses the per-field similarity scores into a single
// document score.
type FieldScorer struct {
	registry ports.MatcherScorer
	logger   ports.Logger
}

// NewFieldScorer creates a new field scorer backed by the given matcher registry.
func NewFieldScorer(registry ports.MatcherScorer, logger ports.Logger) *FieldScorer {
	return &FieldScorer{
		registry: registry,
		logger:   logger,
	}
}

// Evaluate scores one document. For each spec it fetches the document's
// field value, computes the similarity against the reference value, clamps
// it to [Low, High] and folds it into the running total with the naive
// Bayes combination rule. The fold is commutative and associative, so the
// final score does not depend on spec order beyond float rounding.
//
// An empty spec list fails with domain.ErrNoFieldMatchers rather than
// returning an unset sentinel.
func (s *FieldScorer) Evaluate(ctx context.Context, specs []domain.FieldMatchSpec, lookup ports.FieldValueLookup) (domain.Result, error) {
	if len(specs) == 0 {
		return domain.Result{}, domain.ErrNoFieldMatchers
	}

	fields := make([]domain.FieldScore, 0, len(specs))
	var total float64
	scored := false

	for _, spec := range specs {
		select {
		case <-ctx.Done():
			s.logger.Error("Evaluation cancelled", "error", ctx.Err())
			return domain.Result{}, ctx.Err()
		default:
		}

		value := lookup(spec.FieldName)
		raw, err := s.registry.Score(spec.MatcherName, spec.ReferenceValue, value)
		if err != nil {
			return domain.Result{}, err
		}

		score := clamp(raw, spec.Low, spec.High)
		fields = append(fields, domain.FieldScore{
			FieldName:   spec.FieldName,
			MatcherName: spec.MatcherName,
			Raw:         raw,
			Score:       score,
		})

		s.logger.Debug("Scored field",
			"field", spec.FieldName,
			"matcher", spec.MatcherName,
			"raw", raw,
			"clamped", score,
		)

		if !scored {
			total = score
			scored = true
			continue
		}
		total, err = combine(total, score)
		if err != nil {
			return domain.Result{}, err
		}
	}

	s.logger.Debug("Computed document score",
		"score", total,
		"fields", len(fields),
	)

	return domain.Result{
		Name:   "field_similarity",
		Score:  total,
		Fields: fields,
	}, nil
}

// combine merges two per-field scores with the naive Bayes rule, treating
// each score as an independent probability of a true match:
//
//	combine(p, q) = p*q / (p*q + (1-p)*(1-q))
//
// Agreement pulls the aggregate toward the shared extreme; conflicting
// evidence collapses toward 0.5. The denominator vanishes only for
// degenerate pairs such as (0, 1), which fail explicitly instead of
// propagating NaN.
func combine(p, q float64) (float64, error) {
	truth := p * q
	denominator := truth + (1-p)*(1-q)
	if denominator == 0 {
		return 0, &domain.DegenerateCombinationError{Left: p, Right: q}
	}
	return truth / denominator, nil
}

// clamp restricts a raw similarity to the caller-declared bounds. Bounds
// are deliberately not validated: low > high yields an inverted but well
// defined clamp pinned to high.
func clamp(value, low, high float64) float64 {
	return math.Min(math.Max(value, low), high)
}
