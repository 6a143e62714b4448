// field_similarity.go
// Package fieldsimilarity computes a fuzzy-match relevance score for a
// document by comparing one or more of its field values against
// caller-supplied reference values. Each field comparison selects one of
// six string similarity algorithms (cosine, dice, jaccard, jaro-winkler,
// levenshtein, longest-common-subsequence), clamps the similarity to a
// caller-declared range and the per-field scores are fused into a single
// document score with the naive Bayes combination rule:
//
//	combine(p, q) = p*q / (p*q + (1-p)*(1-q))
//
// This version uses the functional options pattern to allow configuration
// of the logger, the input normalizer and startup warmup.
package fieldsimilarity

import (
	"context"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_field_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_field_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_field_similarity/internal/adapters/stream"
	"github.com/baditaflorin/go_field_similarity/internal/config"
	"github.com/baditaflorin/go_field_similarity/internal/core/domain"
	"github.com/baditaflorin/go_field_similarity/internal/core/matcher"
	"github.com/baditaflorin/go_field_similarity/internal/core/scorer"
	"github.com/baditaflorin/go_field_similarity/internal/ports"
	"github.com/baditaflorin/go_field_similarity/internal/warmup"
)

// Re-exported domain types so callers do not import internal packages.
type (
	// FieldMatchSpec declares one field comparison.
	FieldMatchSpec = domain.FieldMatchSpec
	// FieldScore is the per-field scoring breakdown.
	FieldScore = domain.FieldScore
	// Result is the outcome of scoring one document.
	Result = domain.Result
	// FieldValueLookup fetches a document field value by name.
	FieldValueLookup = ports.FieldValueLookup
)

// ErrNoFieldMatchers is returned by Evaluate for an empty spec list.
var ErrNoFieldMatchers = domain.ErrNoFieldMatchers

// Matchers returns the supported matcher names in stable order.
func Matchers() []string {
	return matcher.Names()
}

// DocumentLookup adapts a decoded JSON document to a FieldValueLookup.
func DocumentLookup(doc map[string]interface{}) FieldValueLookup {
	return stream.DocumentLookup(doc)
}

// ParseFieldMatchSpecs converts a host parameter map (a decoded "matchers"
// list with field/value/matcher/high/low entries) into specs, failing fast
// on the first missing property.
func ParseFieldMatchSpecs(params map[string]interface{}) ([]FieldMatchSpec, error) {
	return config.ParseFieldMatchSpecs(params)
}

// FieldSimilarity provides methods to score documents against field match
// specifications. It is safe for concurrent use.
type FieldSimilarity struct {
	registry *matcher.Registry
	scorer   ports.DocumentScorer
	logger   ports.Logger
}

// Option defines a functional option for configuring FieldSimilarity.
type Option func(*fieldSimilarityConfig)

type fieldSimilarityConfig struct {
	Logger       ports.Logger
	Normalizer   ports.Normalizer
	WarmUp       bool
	WarmUpConfig warmup.Config
}

// WithLogger sets a custom logger.
func WithLogger(log l.Logger) Option {
	return func(cfg *fieldSimilarityConfig) {
		cfg.Logger = logger.FromExisting(log)
	}
}

// WithNormalizer sets a custom input normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *fieldSimilarityConfig) {
		cfg.Normalizer = n
	}
}

// WithOptimizedNormalizer sets the pooled ASCII fast-path normalizer.
func WithOptimizedNormalizer() Option {
	return func(cfg *fieldSimilarityConfig) {
		cfg.Normalizer = normalizer.NewOptimizedNormalizer()
	}
}

// WithWarmUp enables warmup of all matchers on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *fieldSimilarityConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig enables warmup with a custom configuration.
func WithWarmUpConfig(wc warmup.Config) Option {
	return func(cfg *fieldSimilarityConfig) {
		cfg.WarmUp = true
		cfg.WarmUpConfig = wc
	}
}

// New creates a new FieldSimilarity instance with the provided options.
func New(opts ...Option) (*FieldSimilarity, error) {
	cfg := &fieldSimilarityConfig{
		WarmUpConfig: warmup.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewDefaultNormalizer()
	}

	registry := matcher.NewRegistry(cfg.Logger, cfg.Normalizer)
	fieldScorer := scorer.NewFieldScorer(registry, cfg.Logger)

	if cfg.WarmUp {
		manager := warmup.NewManager(cfg.Logger, cfg.WarmUpConfig)
		manager.RegisterScorer(registry)
		manager.RegisterNormalizer(cfg.Normalizer)
		manager.WarmUp(context.Background())
	}

	return &FieldSimilarity{
		registry: registry,
		scorer:   fieldScorer,
		logger:   cfg.Logger,
	}, nil
}

// Score selects the matcher by name, normalizes both strings and returns
// their similarity. Unknown names fail with an UnsupportedMatcherError.
func (fs *FieldSimilarity) Score(matcherName, left, right string) (float64, error) {
	return fs.registry.Score(matcherName, left, right)
}

// Evaluate scores one document against the ordered spec list, clamping each
// field score to its bounds and fusing the scores into one.
func (fs *FieldSimilarity) Evaluate(ctx context.Context, specs []FieldMatchSpec, lookup FieldValueLookup) (Result, error) {
	return fs.scorer.Evaluate(ctx, specs, lookup)
}

// EvaluateParams parses a host parameter map into specs and evaluates them.
// Configuration errors surface before any field is scored.
func (fs *FieldSimilarity) EvaluateParams(ctx context.Context, params map[string]interface{}, lookup FieldValueLookup) (Result, error) {
	specs, err := config.ParseFieldMatchSpecs(params)
	if err != nil {
		fs.logger.Error("Rejected matcher configuration", "error", err)
		return Result{}, err
	}
	return fs.scorer.Evaluate(ctx, specs, lookup)
}

// NewBulkScorer creates a bulk scorer that evaluates newline-delimited JSON
// documents against one spec list with the given number of workers.
func (fs *FieldSimilarity) NewBulkScorer(workers int) *stream.BulkScorer {
	return stream.NewBulkScorer(fs.scorer, fs.logger, workers)
}
