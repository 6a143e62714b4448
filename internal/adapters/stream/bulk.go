// Package stream scores batches of documents supplied as a stream of
// newline-delimited JSON objects against one fixed list of field match
// specifications.
package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/baditaflorin/go_field_similarity/internal/core/domain"
	"github.com/baditaflorin/go_field_similarity/internal/ports"
)

// maxLineSize bounds a single document line; larger documents should not
// pass through the fuzzy scorer anyway.
const maxLineSize = 1 << 20

// BulkResult holds the outcome of scoring one document line.
type BulkResult struct {
	// Line is the zero-based index of the document in the input stream.
	Line int
	// Score is the fused document score. Valid only when Err is nil.
	Score float64
	// Fields holds the per-field breakdown. Valid only when Err is nil.
	Fields []domain.FieldScore
	// Err reports a per-document failure (malformed JSON, unknown
	// matcher). Other documents in the batch are unaffected.
	Err error
}

// BulkScorer evaluates every document in a stream against the same spec
// list, sequentially or with a bounded pool of workers.
type BulkScorer struct {
	scorer  ports.DocumentScorer
	logger  ports.Logger
	workers int
}

// NewBulkScorer creates a new bulk scorer. Workers below 2 select the
// sequential path.
func NewBulkScorer(scorer ports.DocumentScorer, logger ports.Logger, workers int) *BulkScorer {
	if workers < 1 {
		workers = 1
	}
	return &BulkScorer{
		scorer:  scorer,
		logger:  logger,
		workers: workers,
	}
}

// ScoreStream reads newline-delimited JSON documents from r and scores each
// against specs. Results are returned in input order; per-document failures
// are recorded on the result instead of aborting the batch. The error
// return covers stream-level failures only (read errors, cancellation).
func (b *BulkScorer) ScoreStream(ctx context.Context, specs []domain.FieldMatchSpec, r io.Reader) ([]BulkResult, error) {
	lines, err := readLines(ctx, r)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("Scoring document batch",
		"documents", len(lines),
		"workers", b.workers,
	)

	results := make([]BulkResult, len(lines))
	if b.workers < 2 || len(lines) < 2 {
		for i, line := range lines {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			results[i] = b.scoreLine(ctx, specs, i, line)
		}
		return results, nil
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = b.scoreLine(ctx, specs, i, lines[i])
			}
		}()
	}

	for i := range lines {
		select {
		case <-ctx.Done():
			close(indexes)
			wg.Wait()
			return nil, ctx.Err()
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	return results, nil
}

func (b *BulkScorer) scoreLine(ctx context.Context, specs []domain.FieldMatchSpec, index int, line []byte) BulkResult {
	var doc map[string]interface{}
	if err := json.Unmarshal(line, &doc); err != nil {
		return BulkResult{Line: index, Err: fmt.Errorf("document %d: %w", index, err)}
	}

	result, err := b.scorer.Evaluate(ctx, specs, DocumentLookup(doc))
	if err != nil {
		return BulkResult{Line: index, Err: fmt.Errorf("document %d: %w", index, err)}
	}
	return BulkResult{Line: index, Score: result.Score, Fields: result.Fields}
}

// DocumentLookup adapts a decoded JSON document to a field value lookup.
// Absent and null fields stringify to "null", keeping the placeholder the
// search host exposes for unscorable fields.
func DocumentLookup(doc map[string]interface{}) ports.FieldValueLookup {
	return func(fieldName string) string {
		value, ok := doc[fieldName]
		if !ok || value == nil {
			return "null"
		}
		if s, ok := value.(string); ok {
			return s
		}
		return fmt.Sprint(value)
	}
}

func readLines(ctx context.Context, r io.Reader) ([][]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines [][]byte
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		line := make([]byte, len(raw))
		copy(line, raw)
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
