package ports

import (
	"context"

	"github.com/baditaflorin/go_field_similarity/internal/core/domain"
)

// FieldValueLookup fetches a candidate document's field value by name.
// The host owns the representation of missing fields.
type FieldValueLookup func(fieldName string) string

// DocumentScorer fuses per-field similarity scores into one document score.
type DocumentScorer interface {
	Evaluate(ctx context.Context, specs []domain.FieldMatchSpec, lookup FieldValueLookup) (domain.Result, error)
}
