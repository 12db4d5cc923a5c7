package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CrossEncoderClient scores query/passage pairs against an HTTP cross-encoder
// inference service (POST /score with {"query": ..., "texts": [...]}).
type CrossEncoderClient struct {
	baseURL string
	client  *http.Client
}

// NewCrossEncoderClient creates the client and probes the service once; an
// unreachable service returns an error so the caller can stay on the lexical
// reranker for the process lifetime.
func NewCrossEncoderClient(ctx context.Context, baseURL string, timeout time.Duration) (*CrossEncoderClient, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c := &CrossEncoderClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", nil)
	if err != nil {
		return nil, fmt.Errorf("build cross-encoder probe: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cross-encoder unavailable: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cross-encoder probe: status %d", resp.StatusCode)
	}
	return c, nil
}

// Score implements Scorer.
func (c *CrossEncoderClient) Score(ctx context.Context, query string, texts []string) ([]float64, error) {
	body, err := json.Marshal(struct {
		Query string   `json:"query"`
		Texts []string `json:"texts"`
	}{Query: query, Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("encode score request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/score", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cross-encoder score: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cross-encoder score: status %d", resp.StatusCode)
	}

	var parsed struct {
		Scores []float64 `json:"scores"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode score response: %w", err)
	}
	if len(parsed.Scores) != len(texts) {
		return nil, fmt.Errorf("cross-encoder returned %d scores for %d texts",
			len(parsed.Scores), len(texts))
	}
	return parsed.Scores, nil
}
