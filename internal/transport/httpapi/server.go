// Package httpapi exposes the search engine to the agent-orchestration layer
// over HTTP. Plain synchronous request/response, no streaming.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stayfinder/hotelsearch/internal/domain"
	"github.com/stayfinder/hotelsearch/internal/metrics"
	"github.com/stayfinder/hotelsearch/internal/usecase/recommend"
)

// Engine runs raw hybrid searches.
type Engine interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.ScoredCandidate, error)
}

// Recommender runs caller-facing searches with the fallback policy.
type Recommender interface {
	Search(ctx context.Context, p recommend.SearchParams) (recommend.Result, error)
	SearchWithFallback(ctx context.Context, p recommend.SearchParams) (recommend.Result, error)
	SimilarHotels(ctx context.Context, hotelName string, topK int) ([]recommend.HotelOption, error)
	HotelDetails(ctx context.Context, hotelName string) (recommend.HotelDetails, error)
}

// HealthChecker probes the document store.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

// Server wires the HTTP handlers.
type Server struct {
	engine Engine
	rec    Recommender
	health HealthChecker
	logger *zap.Logger
}

// NewServer creates the API server.
func NewServer(engine Engine, rec Recommender, health HealthChecker, logger *zap.Logger) *Server {
	return &Server{engine: engine, rec: rec, health: health, logger: logger}
}

// Router builds the chi router with the standard middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEvent(s.logger))
	r.Use(metrics.Middleware())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/recommendations", s.handleRecommendations)
		r.Post("/recommendations/fallback", s.handleRecommendationsFallback)
		r.Get("/hotels/similar", s.handleSimilarHotels)
		r.Get("/hotels/details", s.handleHotelDetails)
	})
	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}
