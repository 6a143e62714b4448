package warmup

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/baditaflorin/go_field_similarity/internal/core/matcher"
	"github.com/baditaflorin/go_field_similarity/internal/ports"
)

// Config defines configuration for warming up the scoring engine.
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency: runtime.NumCPU(),
		Iterations:  200,
		Duration:    2 * time.Second,
		ForceGC:     true,
	}
}

// Sample pairs covering identical, near and dissimilar inputs.
var samplePairs = [][2]string{
	{"John Smith", "John Smith"},
	{"john smith", "jon smyth"},
	{"the quick brown fox", "a completely different value"},
}

// Manager pre-touches every matcher and normalizer before serving traffic,
// so the registry cache and the similarity hot paths are populated ahead of
// the first scored document.
type Manager struct {
	logger      ports.Logger
	scorers     []ports.MatcherScorer
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterScorer adds a matcher scorer to be warmed up.
func (wm *Manager) RegisterScorer(s ports.MatcherScorer) {
	wm.scorers = append(wm.scorers, s)
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (wm *Manager) RegisterNormalizer(n ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, n)
}

// WarmUp runs the warmup process for all registered components.
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting scoring engine warmup",
		"components", len(wm.scorers)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	wm.warmUpNormalizers(warmupCtx)
	wm.warmUpScorers(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("Scoring engine warmup completed",
		"duration", time.Since(startTime),
	)
}

func (wm *Manager) warmUpNormalizers(ctx context.Context) {
	if len(wm.normalizers) == 0 {
		return
	}
	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				for _, n := range wm.normalizers {
					for _, pair := range samplePairs {
						_ = n.Normalize(pair[0])
						_ = n.Normalize(pair[1])
					}
				}
			}
		}()
	}
	wg.Wait()
}

func (wm *Manager) warmUpScorers(ctx context.Context) {
	if len(wm.scorers) == 0 {
		return
	}
	wm.logger.Debug("Warming up matchers", "count", len(wm.scorers))

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				pair := samplePairs[j%len(samplePairs)]
				for _, s := range wm.scorers {
					for _, name := range matcher.Names() {
						_, _ = s.Score(name, pair[0], pair[1])
					}
				}
			}
		}()
	}
	wg.Wait()
}
