package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/embeddings", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, []string{"one", "two"}, req.Texts)

		json.NewEncoder(w).Encode(embedResponse{
			Embeddings: [][]float32{{1, 0}, {0, 1}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	vecs, err := client.Embed(context.Background(), []string{"one", "two"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 0}, vecs[0])
}

func TestClientEmbedCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{Embeddings: [][]float32{{1}}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Embed(context.Background(), []string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestClientClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/emotions", r.URL.Path)
		json.NewEncoder(w).Encode(emotionsResponse{
			Results: []map[string]float64{{"joy": 0.8, "neutral": 0.2}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	results, err := client.Classify(context.Background(), []string{"so happy"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 0.8, results[0]["joy"], 1e-9)
}

func TestClientResourceExhausted(t *testing.T) {
	for _, status := range []int{
		http.StatusRequestEntityTooLarge,
		http.StatusTooManyRequests,
		http.StatusServiceUnavailable,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(srv.URL)
		_, err := client.Embed(context.Background(), []string{"text"})
		assert.ErrorIs(t, err, ErrResourceExhausted, "status %d maps to resource exhaustion", status)

		srv.Close()
	}
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Classify(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrResourceExhausted, "a 500 is not retryable exhaustion")
}

func TestClientHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(HealthResponse{Status: "healthy", ModelName: "all-MiniLM-L6-v2"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, client.IsAvailable(context.Background()))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// Mismatched lengths use the shorter prefix rather than panicking.
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0, 0}, []float32{1}), 1e-9)
}
