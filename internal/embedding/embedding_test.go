package embedding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stayfinder/hotelsearch/internal/domain"
)

func TestPlaceholderEmbedderShape(t *testing.T) {
	e := NewPlaceholderEmbedder(4, 1)

	vecs, err := e.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("EmbedBatch: %v", err)
	}
	if len(vecs) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vecs))
	}
	for _, v := range vecs {
		if len(v) != 4 {
			t.Errorf("vector dims = %d, want 4", len(v))
		}
		for _, x := range v {
			if x < 0 || x >= 1 {
				t.Errorf("component %v outside [0,1)", x)
			}
		}
	}
	if e.Mode() != domain.EmbeddingModePlaceholder {
		t.Errorf("mode = %s", e.Mode())
	}
}

func TestPlaceholderEmbedderSeedReproducible(t *testing.T) {
	a, _ := NewPlaceholderEmbedder(3, 42).EmbedBatch(context.Background(), []string{"x"})
	b, _ := NewPlaceholderEmbedder(3, 42).EmbedBatch(context.Background(), []string{"x"})

	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatalf("same seed produced different vectors: %v vs %v", a[0], b[0])
		}
	}
}

func newFakeProvider(t *testing.T, response string, status int) *OpenAIEmbedder {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	return NewOpenAIEmbedder(OpenAIConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		Model:      "text-embedding-3-small",
		Dimensions: 2,
	})
}

func TestOpenAIEmbedderReordersByIndex(t *testing.T) {
	// Provider returns data out of order; the embedder restores input order.
	e := newFakeProvider(t, `{
	  "object": "list",
	  "data": [
	    {"object": "embedding", "index": 1, "embedding": [0.3, 0.4]},
	    {"object": "embedding", "index": 0, "embedding": [0.1, 0.2]}
	  ],
	  "model": "text-embedding-3-small"
	}`, http.StatusOK)

	vecs, err := e.EmbedBatch(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("EmbedBatch: %v", err)
	}
	if vecs[0][0] != 0.1 || vecs[1][0] != 0.3 {
		t.Errorf("vectors not reordered by index: %v", vecs)
	}
}

func TestOpenAIEmbedderCountMismatch(t *testing.T) {
	e := newFakeProvider(t, `{
	  "object": "list",
	  "data": [{"object": "embedding", "index": 0, "embedding": [0.1, 0.2]}],
	  "model": "text-embedding-3-small"
	}`, http.StatusOK)

	_, err := e.EmbedBatch(context.Background(), []string{"a", "b"})
	if !errors.Is(err, domain.ErrEmbeddingFailure) {
		t.Fatalf("got %v, want ErrEmbeddingFailure", err)
	}
}

func TestOpenAIEmbedderDimensionMismatch(t *testing.T) {
	e := newFakeProvider(t, `{
	  "object": "list",
	  "data": [{"object": "embedding", "index": 0, "embedding": [0.1, 0.2, 0.3]}],
	  "model": "text-embedding-3-small"
	}`, http.StatusOK)

	_, err := e.EmbedBatch(context.Background(), []string{"a"})
	if !errors.Is(err, domain.ErrEmbeddingFailure) {
		t.Fatalf("got %v, want ErrEmbeddingFailure", err)
	}
}

func TestOpenAIEmbedderProviderError(t *testing.T) {
	e := newFakeProvider(t, `{"error": {"message": "rate limited", "type": "rate_limit_error"}}`,
		http.StatusTooManyRequests)

	_, err := e.EmbedBatch(context.Background(), []string{"a"})
	if !errors.Is(err, domain.ErrEmbeddingFailure) {
		t.Fatalf("got %v, want ErrEmbeddingFailure", err)
	}
}

func TestOpenAIEmbedderEmptyInput(t *testing.T) {
	e := NewOpenAIEmbedder(OpenAIConfig{APIKey: "k", Model: "m"})

	vecs, err := e.EmbedBatch(context.Background(), nil)
	if err != nil || vecs != nil {
		t.Errorf("EmbedBatch(nil) = %v, %v, want nil, nil", vecs, err)
	}
}
