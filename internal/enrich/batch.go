package enrich

import (
	"context"
	"errors"
	"fmt"

	"github.com/birchwood/ethnograph/internal/logger"
	"github.com/birchwood/ethnograph/internal/metrics"
	"github.com/birchwood/ethnograph/internal/nlp"
	"go.uber.org/zap"
)

const (
	// DefaultBatchSize is a performance knob, not a correctness concern.
	DefaultBatchSize = 64
	// minBatchSize is the backoff floor; an exhausted capability at batch
	// size 1 is a fatal enrichment failure.
	minBatchSize = 1
)

// inBatches runs call over texts in batches, halving the batch size and
// retrying whenever the capability reports resource exhaustion. Results keep
// input order and no text is ever silently dropped.
func inBatches[T any](
	ctx context.Context,
	operation string,
	texts []string,
	batchSize int,
	call func(ctx context.Context, batch []string) ([]T, error),
) ([]T, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	m := metrics.Get()
	results := make([]T, 0, len(texts))

	for start := 0; start < len(texts); {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := call(ctx, texts[start:end])
		if err != nil {
			if errors.Is(err, nlp.ErrResourceExhausted) && batchSize > minBatchSize {
				batchSize /= 2
				if batchSize < minBatchSize {
					batchSize = minBatchSize
				}
				m.NLPBatchRetriesTotal.WithLabelValues(operation).Inc()
				logger.Warn("NLP capability exhausted, retrying with smaller batch",
					zap.String("operation", operation),
					zap.Int("batch_size", batchSize),
				)
				continue
			}
			return nil, fmt.Errorf("%s failed at offset %d: %w", operation, start, err)
		}

		m.NLPBatchesTotal.WithLabelValues(operation).Inc()
		results = append(results, batch...)
		start = end
	}
	return results, nil
}
