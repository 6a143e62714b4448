package matcher

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/baditaflorin/go_field_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_field_similarity/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Close() error                                   { return nil }

func newTestRegistry() *Registry {
	return NewRegistry(nopLogger{}, normalizer.NewDefaultNormalizer())
}

func TestScoreIdenticalStrings(t *testing.T) {
	r := newTestRegistry()
	for _, name := range Names() {
		got, err := r.Score(name, "John Smith", "John Smith")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got != 1.0 {
			t.Errorf("%s: Score on identical strings = %v, want 1.0", name, got)
		}
	}
}

func TestScoreSymmetry(t *testing.T) {
	r := newTestRegistry()
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"john smith", "jon smith"},
		{"martha", "marhta"},
	}
	for _, name := range Names() {
		for _, p := range pairs {
			ab, err := r.Score(name, p[0], p[1])
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			ba, err := r.Score(name, p[1], p[0])
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			if math.Abs(ab-ba) > 1e-12 {
				t.Errorf("%s: Score(%q, %q) = %v but Score(%q, %q) = %v",
					name, p[0], p[1], ab, p[1], p[0], ba)
			}
		}
	}
}

func TestScoreNormalizesInputs(t *testing.T) {
	r := newTestRegistry()
	got, err := r.Score(Levenshtein, " Hello ", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.0 {
		t.Errorf("Score(levenshtein, %q, %q) = %v, want 1.0 after trim and case fold", " Hello ", "hello", got)
	}
}

func TestScoreUnknownMatcher(t *testing.T) {
	r := newTestRegistry()
	// Repeated calls must fail identically; the cache never masks the error.
	for i := 0; i < 3; i++ {
		_, err := r.Score("unknown-matcher", "a", "b")
		if err == nil {
			t.Fatal("expected error for unknown matcher, got nil")
		}
		var unsupported *domain.UnsupportedMatcherError
		if !errors.As(err, &unsupported) {
			t.Fatalf("expected UnsupportedMatcherError, got %T: %v", err, err)
		}
		if unsupported.Name != "unknown-matcher" {
			t.Errorf("error names matcher %q, want %q", unsupported.Name, "unknown-matcher")
		}
		if !strings.Contains(err.Error(), "unknown-matcher") {
			t.Errorf("error message %q does not identify the offending name", err.Error())
		}
	}
}

func TestScoreIdempotent(t *testing.T) {
	r := newTestRegistry()
	first, err := r.Score(JaroWinkler, "martha", "marhta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := r.Score(JaroWinkler, "martha", "marhta")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Errorf("repeated Score = %v, want %v (caching must be transparent)", again, first)
		}
	}
}

func TestScoreConcurrent(t *testing.T) {
	r := newTestRegistry()
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, name := range Names() {
				got, err := r.Score(name, "concurrent", "concurrent")
				if err != nil {
					errs <- err
					return
				}
				if got != 1.0 {
					errs <- errors.New("concurrent identical score != 1.0")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
