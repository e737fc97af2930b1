// Package enrich attaches derived fields to the unified event table: the
// temporal pass derives calendar fields from timestamps, the topic pass
// labels events against the configured taxonomy, and the emotion pass scores
// each event with the emotion classifier. Each pass runs at most once, when
// the working-view manager is constructed.
package enrich

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/birchwood/ethnograph/internal/cache"
	"github.com/birchwood/ethnograph/internal/logger"
	"github.com/birchwood/ethnograph/internal/models"
	"github.com/birchwood/ethnograph/internal/nlp"
	"go.uber.org/zap"
)

// Registry holds the process-wide NLP capabilities and the taxonomy
// embedding cache. Capabilities are shared across dataset instances; the
// registry is injected into each Manager instead of being reached for as
// ambient global state.
type Registry struct {
	mu         sync.Mutex
	embedder   nlp.Embedder
	classifier nlp.EmotionClassifier
	redis      *cache.RedisClient

	// taxonomy hash -> topic vectors, so identical taxonomies across
	// instances reuse the embeddings
	taxonomyVecs map[string][][]float32
}

// NewRegistry creates a registry with explicit capabilities.
func NewRegistry(embedder nlp.Embedder, classifier nlp.EmotionClassifier) *Registry {
	return &Registry{
		embedder:     embedder,
		classifier:   classifier,
		taxonomyVecs: make(map[string][][]float32),
	}
}

// SetCache attaches a Redis client so taxonomy embeddings survive restarts.
func (r *Registry) SetCache(redis *cache.RedisClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redis = redis
}

// Embedder returns the shared embedding capability.
func (r *Registry) Embedder() nlp.Embedder {
	return r.embedder
}

// Classifier returns the shared emotion classification capability.
func (r *Registry) Classifier() nlp.EmotionClassifier {
	return r.classifier
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default lazily initializes the process-wide registry from the
// NLP_SERVICE_URL environment variable.
func Default() *Registry {
	defaultOnce.Do(func() {
		baseURL := os.Getenv("NLP_SERVICE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:8000"
		}
		client := nlp.NewClient(baseURL)
		defaultRegistry = NewRegistry(client, client)
	})
	return defaultRegistry
}

// TopicVectors returns the embedding of every taxonomy description,
// embedding them on first use and caching by taxonomy content.
func (r *Registry) TopicVectors(ctx context.Context, taxonomy []models.TopicEntry) ([][]float32, error) {
	key := taxonomyHash(taxonomy)

	r.mu.Lock()
	if vecs, ok := r.taxonomyVecs[key]; ok {
		r.mu.Unlock()
		return vecs, nil
	}
	redis := r.redis
	r.mu.Unlock()

	if redis != nil {
		if vecs := loadCachedVectors(ctx, redis, key); vecs != nil {
			r.mu.Lock()
			r.taxonomyVecs[key] = vecs
			r.mu.Unlock()
			return vecs, nil
		}
	}

	texts := make([]string, len(taxonomy))
	for i, entry := range taxonomy {
		texts[i] = entry.Description
	}

	vecs, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed topic taxonomy: %w", err)
	}

	r.mu.Lock()
	r.taxonomyVecs[key] = vecs
	r.mu.Unlock()

	if redis != nil {
		storeCachedVectors(ctx, redis, key, vecs)
	}
	return vecs, nil
}

func taxonomyHash(taxonomy []models.TopicEntry) string {
	h := sha256.New()
	for _, entry := range taxonomy {
		h.Write([]byte(entry.Label))
		h.Write([]byte{0})
		h.Write([]byte(entry.Description))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func loadCachedVectors(ctx context.Context, redis *cache.RedisClient, key string) [][]float32 {
	raw, err := redis.Get(ctx, "taxonomy:"+key)
	if err != nil {
		return nil
	}
	var vecs [][]float32
	if err := json.Unmarshal([]byte(raw), &vecs); err != nil {
		logger.WarnWithFields("Discarding corrupt cached taxonomy embeddings", err)
		return nil
	}
	return vecs
}

func storeCachedVectors(ctx context.Context, redis *cache.RedisClient, key string, vecs [][]float32) {
	raw, err := json.Marshal(vecs)
	if err != nil {
		return
	}
	if err := redis.Set(ctx, "taxonomy:"+key, string(raw)); err != nil {
		logger.Warn("Failed to cache taxonomy embeddings", zap.Error(err))
	}
}
