// Package nlp defines the pluggable text-analysis capabilities the
// enrichment stage depends on, and an HTTP client implementing them against
// the text-analysis sidecar service (the embedding and emotion models run
// out of process).
package nlp

import (
	"context"
	"errors"
)

// ErrResourceExhausted indicates the capability rejected a batch for being
// too large. Callers should retry with a smaller batch before giving up.
var ErrResourceExhausted = errors.New("nlp: resource exhausted")

// Embedder converts texts to unit-normalized embedding vectors. The result
// has one vector per input text, in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// EmotionClassifier scores texts against a fixed set of emotion labels. The
// result has one label->score map per input text, in order. The label set
// is classifier-defined and may omit labels for individual texts.
type EmotionClassifier interface {
	Classify(ctx context.Context, texts []string) ([]map[string]float64, error)
}

// CosineSimilarity is the dot product of two unit-normalized vectors.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}
