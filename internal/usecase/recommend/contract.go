package recommend

import (
	"context"

	"github.com/stayfinder/hotelsearch/internal/domain"
)

// Engine runs one hybrid search. Implemented by usecase/search.Service.
type Engine interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.ScoredCandidate, error)
}

// VectorStore supplies the store primitives behind similar-hotel lookups and
// per-hotel review analysis.
type VectorStore interface {
	HotelVector(ctx context.Context, hotelName string) ([]float32, error)
	VectorSearch(
		ctx context.Context, vector []float32, filters domain.SearchFilter, limit int,
	) ([]domain.ScoredCandidate, error)
	ReviewAnalysis(ctx context.Context, hotelName string) (domain.HotelAnalysis, error)
}
