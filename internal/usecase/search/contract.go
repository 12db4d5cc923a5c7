package search

import (
	"context"

	"github.com/stayfinder/hotelsearch/internal/domain"
)

// Store issues the two primitive query capabilities of the document store.
type Store interface {
	LexicalSearch(
		ctx context.Context, query string, filters domain.SearchFilter, limit int,
	) ([]domain.ScoredCandidate, error)

	VectorSearch(
		ctx context.Context, vector []float32, filters domain.SearchFilter, limit int,
	) ([]domain.ScoredCandidate, error)
}

// Reranker reorders fused candidates. Implementations must never drop or
// duplicate candidates and must degrade internally instead of failing.
type Reranker interface {
	Rerank(
		ctx context.Context, candidates []domain.ScoredCandidate, query string,
	) []domain.ScoredCandidate
}
