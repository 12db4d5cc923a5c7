package search

import (
	"context"

	"github.com/stayfinder/hotelsearch/internal/domain"
)

// mockStore implements the Store interface for tests.
type mockStore struct {
	lexicalFn func(ctx context.Context, query string, f domain.SearchFilter, limit int) ([]domain.ScoredCandidate, error)
	vectorFn  func(ctx context.Context, vector []float32, f domain.SearchFilter, limit int) ([]domain.ScoredCandidate, error)
}

func (m *mockStore) LexicalSearch(ctx context.Context, query string, f domain.SearchFilter, limit int) ([]domain.ScoredCandidate, error) {
	if m.lexicalFn != nil {
		return m.lexicalFn(ctx, query, f, limit)
	}
	return nil, nil
}

func (m *mockStore) VectorSearch(ctx context.Context, vector []float32, f domain.SearchFilter, limit int) ([]domain.ScoredCandidate, error) {
	if m.vectorFn != nil {
		return m.vectorFn(ctx, vector, f, limit)
	}
	return nil, nil
}

// mockEmbedder implements domain.Embedder for tests.
type mockEmbedder struct {
	embedFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, texts)
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int { return 3 }

func (m *mockEmbedder) Mode() domain.EmbeddingMode { return domain.EmbeddingModeReal }

// passthroughReranker returns candidates unchanged.
type passthroughReranker struct {
	calls int
}

func (r *passthroughReranker) Rerank(_ context.Context, cands []domain.ScoredCandidate, _ string) []domain.ScoredCandidate {
	r.calls++
	return cands
}

func lexCand(id string, score float64) domain.ScoredCandidate {
	return domain.ScoredCandidate{DocID: id, HotelName: "Hotel " + id, BM25Score: score}
}

func semCand(id string, score float64) domain.ScoredCandidate {
	return domain.ScoredCandidate{DocID: id, HotelName: "Hotel " + id, SemanticScore: score}
}
