package recommend

import (
	"context"

	"github.com/stayfinder/hotelsearch/internal/domain"
)

// mockEngine implements Engine for tests.
type mockEngine struct {
	searchFn func(ctx context.Context, req domain.SearchRequest) ([]domain.ScoredCandidate, error)
	requests []domain.SearchRequest
}

func (m *mockEngine) Search(ctx context.Context, req domain.SearchRequest) ([]domain.ScoredCandidate, error) {
	m.requests = append(m.requests, req)
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return nil, nil
}

// mockVectorStore implements VectorStore for tests.
type mockVectorStore struct {
	hotelVectorFn    func(ctx context.Context, hotelName string) ([]float32, error)
	vectorSearchFn   func(ctx context.Context, vector []float32, f domain.SearchFilter, limit int) ([]domain.ScoredCandidate, error)
	reviewAnalysisFn func(ctx context.Context, hotelName string) (domain.HotelAnalysis, error)
}

func (m *mockVectorStore) HotelVector(ctx context.Context, hotelName string) ([]float32, error) {
	if m.hotelVectorFn != nil {
		return m.hotelVectorFn(ctx, hotelName)
	}
	return []float32{0.1, 0.2}, nil
}

func (m *mockVectorStore) VectorSearch(ctx context.Context, vector []float32, f domain.SearchFilter, limit int) ([]domain.ScoredCandidate, error) {
	if m.vectorSearchFn != nil {
		return m.vectorSearchFn(ctx, vector, f, limit)
	}
	return nil, nil
}

func (m *mockVectorStore) ReviewAnalysis(ctx context.Context, hotelName string) (domain.HotelAnalysis, error) {
	if m.reviewAnalysisFn != nil {
		return m.reviewAnalysisFn(ctx, hotelName)
	}
	return domain.HotelAnalysis{HotelName: hotelName, TotalReviews: 1, AvgRating: 4.0}, nil
}

func reviewCand(hotel, text string, rating float64) domain.ScoredCandidate {
	return domain.ScoredCandidate{
		DocID:      "doc_" + hotel,
		HotelName:  hotel,
		Location:   "Testville",
		ReviewText: text,
		Rating:     rating,
	}
}

func nCandidates(n int) []domain.ScoredCandidate {
	out := make([]domain.ScoredCandidate, n)
	for i := range out {
		out[i] = reviewCand(string(rune('A'+i)), "comfortable and clean", 4.2)
		out[i].DocID = out[i].DocID + string(rune('0'+i))
	}
	return out
}
