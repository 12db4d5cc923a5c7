// Package embedding converts review text into fixed-dimension vectors. The
// real embedder calls an OpenAI-compatible inference API; the placeholder
// embedder fabricates random vectors for ingestion throughput testing.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/stayfinder/hotelsearch/internal/domain"
	"github.com/stayfinder/hotelsearch/internal/metrics"
)

// OpenAIEmbedder produces vectors through an OpenAI-compatible embeddings
// endpoint. Safe for concurrent use.
type OpenAIEmbedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	logger     *zap.Logger
}

// OpenAIConfig holds the embedding provider settings.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
	Logger     *zap.Logger
}

// NewOpenAIEmbedder creates a real-mode embedder.
func NewOpenAIEmbedder(cfg OpenAIConfig) *OpenAIEmbedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIEmbedder{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: cfg.Dimensions,
		logger:     logger,
	}
}

// EmbedBatch implements domain.Embedder. The response is reordered by the
// provider-reported index so output position i always corresponds to texts[i].
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	req := openai.EmbeddingRequest{
		Input:          texts,
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.dimensions > 0 {
		req.Dimensions = e.dimensions
	}

	start := time.Now()
	resp, err := e.client.CreateEmbeddings(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(string(e.model), "error").Inc()
		return nil, parseAPIError(err)
	}
	if len(resp.Data) != len(texts) {
		metrics.EmbeddingRequestsTotal.WithLabelValues(string(e.model), "error").Inc()
		return nil, fmt.Errorf("%w: got %d vectors for %d texts",
			domain.ErrEmbeddingFailure, len(resp.Data), len(texts))
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(string(e.model), "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(string(e.model)).Observe(duration.Seconds())
	metrics.EmbeddingTextsTotal.WithLabelValues(string(e.model)).Add(float64(len(texts)))

	sort.Slice(resp.Data, func(i, j int) bool { return resp.Data[i].Index < resp.Data[j].Index })

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		if e.dimensions > 0 && len(d.Embedding) != e.dimensions {
			return nil, fmt.Errorf("%w: provider returned dimension %d, want %d",
				domain.ErrEmbeddingFailure, len(d.Embedding), e.dimensions)
		}
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

// Dimensions implements domain.Embedder.
func (e *OpenAIEmbedder) Dimensions() int { return e.dimensions }

// Mode implements domain.Embedder.
func (e *OpenAIEmbedder) Mode() domain.EmbeddingMode { return domain.EmbeddingModeReal }

// parseAPIError extracts a readable message from the provider response and
// wraps it in domain.ErrEmbeddingFailure for classification upstream.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("embedding API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), domain.ErrEmbeddingFailure)
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("embedding API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, domain.ErrEmbeddingFailure)
	}
	return fmt.Errorf("embedding request failed: %v: %w", err, domain.ErrEmbeddingFailure)
}
