package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/birchwood/ethnograph/internal/logger"
	"github.com/birchwood/ethnograph/internal/telemetry"
	"go.uber.org/zap"
)

// Client talks to the text-analysis service over HTTP. It implements both
// Embedder and EmotionClassifier.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type embedRequest struct {
	Texts []string `json:"texts"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

type emotionsRequest struct {
	Texts []string `json:"texts"`
}

type emotionsResponse struct {
	Results []map[string]float64 `json:"results"`
}

// HealthResponse contains the health check response.
type HealthResponse struct {
	Status        string  `json:"status"`
	ModelName     string  `json:"model_name"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// NewClient creates a new text-analysis client. Requests made with the
// client are traced when telemetry is enabled.
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 120*time.Second)
}

// NewClientWithTimeout creates a new text-analysis client with a custom
// timeout. Embedding large batches can take a while, so the default is
// generous.
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: telemetry.NewInstrumentedHTTPClient(telemetry.HTTPClientConfig{
			ServiceName: "text-analysis",
			Timeout:     timeout,
		}),
	}
}

// Embed requests unit-normalized embeddings for a batch of texts.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	ctx, span := telemetry.TraceNLPCall(ctx, "embed", len(texts))
	defer span.End()

	var resp embedResponse
	if err := c.post(ctx, "/api/v1/embeddings", embedRequest{Texts: texts}, &resp); err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		err := fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(resp.Embeddings))
		telemetry.RecordSpanError(span, err)
		return nil, err
	}
	return resp.Embeddings, nil
}

// Classify requests emotion scores for a batch of texts.
func (c *Client) Classify(ctx context.Context, texts []string) ([]map[string]float64, error) {
	ctx, span := telemetry.TraceNLPCall(ctx, "classify", len(texts))
	defer span.End()

	var resp emotionsResponse
	if err := c.post(ctx, "/api/v1/emotions", emotionsRequest{Texts: texts}, &resp); err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}
	if len(resp.Results) != len(texts) {
		err := fmt.Errorf("emotion result count mismatch: sent %d texts, got %d results", len(texts), len(resp.Results))
		telemetry.RecordSpanError(span, err)
		return nil, err
	}
	return resp.Results, nil
}

// Health checks if the text-analysis service is healthy.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("health check returned %d: %s", resp.StatusCode, string(body))
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	return &health, nil
}

// IsAvailable checks if the text-analysis service is available and healthy.
func (c *Client) IsAvailable(ctx context.Context) bool {
	health, err := c.Health(ctx)
	if err != nil {
		return false
	}
	return health.Status == "healthy"
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("text-analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusRequestEntityTooLarge, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		logger.Log.Warn("Text-analysis service rejected batch",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.Duration("duration", time.Since(startTime)),
		)
		return fmt.Errorf("%w: status %d", ErrResourceExhausted, resp.StatusCode)
	default:
		logger.Log.Warn("Text-analysis request failed",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)),
			zap.Duration("duration", time.Since(startTime)),
		)
		return fmt.Errorf("text-analysis request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode text-analysis response: %w", err)
	}

	logger.Log.Debug("Text-analysis call completed",
		zap.String("path", path),
		zap.Duration("duration", time.Since(startTime)),
	)
	return nil
}
