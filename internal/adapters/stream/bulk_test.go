package stream

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/baditaflorin/go_field_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_field_similarity/internal/core/domain"
	"github.com/baditaflorin/go_field_similarity/internal/core/matcher"
	"github.com/baditaflorin/go_field_similarity/internal/core/scorer"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Close() error                                   { return nil }

func newBulkScorer(workers int) *BulkScorer {
	registry := matcher.NewRegistry(nopLogger{}, normalizer.NewDefaultNormalizer())
	fieldScorer := scorer.NewFieldScorer(registry, nopLogger{})
	return NewBulkScorer(fieldScorer, nopLogger{}, workers)
}

func nameSpecs() []domain.FieldMatchSpec {
	return []domain.FieldMatchSpec{{
		FieldName:      "name",
		ReferenceValue: "john smith",
		MatcherName:    matcher.Levenshtein,
		High:           1.0,
		Low:            0.0,
	}}
}

const batch = `{"name": "John Smith"}
{"name": "xxxxxxxxxx"}
not json
{"other": "field"}`

func TestScoreStream(t *testing.T) {
	for _, workers := range []int{1, 4} {
		results, err := newBulkScorer(workers).ScoreStream(context.Background(), nameSpecs(), strings.NewReader(batch))
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if len(results) != 4 {
			t.Fatalf("workers=%d: got %d results, want 4", workers, len(results))
		}

		// Exact match after normalization.
		if results[0].Err != nil || results[0].Score != 1.0 {
			t.Errorf("workers=%d: results[0] = (%v, %v), want (1.0, nil)", workers, results[0].Score, results[0].Err)
		}
		// Fully dissimilar value of equal length.
		if results[1].Err != nil || results[1].Score != 0.0 {
			t.Errorf("workers=%d: results[1] = (%v, %v), want (0.0, nil)", workers, results[1].Score, results[1].Err)
		}
		// Malformed line fails alone.
		if results[2].Err == nil {
			t.Errorf("workers=%d: results[2].Err = nil, want JSON error", workers)
		}
		// Missing field scores against the "null" placeholder.
		if results[3].Err != nil {
			t.Errorf("workers=%d: results[3].Err = %v, want nil", workers, results[3].Err)
		}
		if results[3].Score < 0 || results[3].Score > 1 {
			t.Errorf("workers=%d: results[3].Score = %v, want value in [0,1]", workers, results[3].Score)
		}
	}
}

func TestScoreStreamParallelMatchesSequential(t *testing.T) {
	var b strings.Builder
	docs := []string{"john smith", "jon smith", "jane doe", "j smith", "smith john"}
	for _, name := range docs {
		b.WriteString(`{"name": "` + name + `"}` + "\n")
	}

	sequential, err := newBulkScorer(1).ScoreStream(context.Background(), nameSpecs(), strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	parallel, err := newBulkScorer(4).ScoreStream(context.Background(), nameSpecs(), strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	for i := range sequential {
		if math.Abs(sequential[i].Score-parallel[i].Score) > 1e-12 {
			t.Errorf("document %d: sequential=%v parallel=%v", i, sequential[i].Score, parallel[i].Score)
		}
	}
}

func TestScoreStreamCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newBulkScorer(1).ScoreStream(ctx, nameSpecs(), strings.NewReader(batch))
	if err == nil {
		t.Fatal("expected cancellation error, got nil")
	}
}

func TestDocumentLookup(t *testing.T) {
	lookup := DocumentLookup(map[string]interface{}{
		"name":   "Jane",
		"age":    float64(33),
		"absent": nil,
	})
	tests := []struct {
		field    string
		expected string
	}{
		{"name", "Jane"},
		{"age", "33"},
		{"absent", "null"},
		{"missing", "null"},
	}
	for _, tc := range tests {
		if got := lookup(tc.field); got != tc.expected {
			t.Errorf("lookup(%q) = %q, want %q", tc.field, got, tc.expected)
		}
	}
}
