package httpapi

import (
	"context"

	"go.uber.org/zap"

	"github.com/stayfinder/hotelsearch/internal/domain"
	"github.com/stayfinder/hotelsearch/internal/usecase/recommend"
)

// mockEngine implements Engine for tests.
type mockEngine struct {
	searchFn func(ctx context.Context, req domain.SearchRequest) ([]domain.ScoredCandidate, error)
}

func (m *mockEngine) Search(ctx context.Context, req domain.SearchRequest) ([]domain.ScoredCandidate, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return nil, nil
}

// mockRecommender implements Recommender for tests.
type mockRecommender struct {
	searchFn   func(ctx context.Context, p recommend.SearchParams) (recommend.Result, error)
	fallbackFn func(ctx context.Context, p recommend.SearchParams) (recommend.Result, error)
	similarFn  func(ctx context.Context, hotelName string, topK int) ([]recommend.HotelOption, error)
	detailsFn  func(ctx context.Context, hotelName string) (recommend.HotelDetails, error)
}

func (m *mockRecommender) Search(ctx context.Context, p recommend.SearchParams) (recommend.Result, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, p)
	}
	return recommend.Result{}, nil
}

func (m *mockRecommender) SearchWithFallback(ctx context.Context, p recommend.SearchParams) (recommend.Result, error) {
	if m.fallbackFn != nil {
		return m.fallbackFn(ctx, p)
	}
	return recommend.Result{}, nil
}

func (m *mockRecommender) SimilarHotels(ctx context.Context, hotelName string, topK int) ([]recommend.HotelOption, error) {
	if m.similarFn != nil {
		return m.similarFn(ctx, hotelName, topK)
	}
	return nil, nil
}

func (m *mockRecommender) HotelDetails(ctx context.Context, hotelName string) (recommend.HotelDetails, error) {
	if m.detailsFn != nil {
		return m.detailsFn(ctx, hotelName)
	}
	return recommend.HotelDetails{}, nil
}

// mockHealth implements HealthChecker for tests.
type mockHealth struct {
	err error
}

func (m *mockHealth) Healthy(context.Context) error { return m.err }

func newTestServer(engine Engine, rec Recommender, health HealthChecker) *Server {
	if engine == nil {
		engine = &mockEngine{}
	}
	if rec == nil {
		rec = &mockRecommender{}
	}
	if health == nil {
		health = &mockHealth{}
	}
	return NewServer(engine, rec, health, zap.NewNop())
}
