// Package recommend is the caller-facing layer over the hybrid engine: it
// turns destination/preference parameters into search requests and applies
// the tiered fallback policy when recall is insufficient.
package recommend

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/stayfinder/hotelsearch/internal/domain"
	"github.com/stayfinder/hotelsearch/internal/logger"
	"github.com/stayfinder/hotelsearch/internal/metrics"
)

const (
	// minResults is the recall threshold below which the next tier fires.
	minResults = 3
	// ratingFloor is the default minimum rating applied to every tier.
	ratingFloor = 3.5
	// defaultTopK is the recommendation count when the caller does not ask.
	defaultTopK = 5
)

// defaultQuery backs searches with no usable preference terms.
var defaultQuery = []string{"good hotel", "comfortable", "clean"}

// Service orchestrates recommendation searches. Stateless across calls.
type Service struct {
	engine Engine
	store  VectorStore
}

// New creates a recommendation service.
func New(engine Engine, store VectorStore) *Service {
	return &Service{engine: engine, store: store}
}

// Search runs a single full-constraint search (tier 1 only).
func (s *Service) Search(ctx context.Context, p SearchParams) (Result, error) {
	hotels, err := s.tierSearch(ctx, p)
	if err != nil {
		return Result{}, err
	}
	return Result{Hotels: hotels}, nil
}

// SearchWithFallback applies the tiered retry policy:
// tier 1 with all constraints, tier 2 with preference terms and tag filters
// dropped, tier 3 an empty result with the exhausted flag set.
func (s *Service) SearchWithFallback(ctx context.Context, p SearchParams) (Result, error) {
	log := logger.FromContext(ctx)

	hotels, err := s.tierSearch(ctx, p)
	if err != nil {
		return Result{}, err
	}
	if len(hotels) >= minResults {
		metrics.FallbackTierTotal.WithLabelValues("full").Inc()
		return Result{Hotels: hotels}, nil
	}

	log.Warn("full search under-returned, relaxing constraints",
		zap.Int("results", len(hotels)),
		zap.String("destination", p.Destination),
	)

	relaxed := SearchParams{
		Destination: p.Destination,
		Budget:      p.Budget,
		TopK:        p.TopK,
	}
	hotels, err = s.tierSearch(ctx, relaxed)
	if err != nil {
		return Result{}, err
	}
	if len(hotels) >= minResults {
		metrics.FallbackTierTotal.WithLabelValues("relaxed").Inc()
		return Result{Hotels: hotels, Relaxed: true}, nil
	}

	log.Warn("relaxed search under-returned, giving up",
		zap.Int("results", len(hotels)),
		zap.String("destination", p.Destination),
	)
	metrics.FallbackTierTotal.WithLabelValues("empty").Inc()
	return Result{Exhausted: true}, nil
}

// SimilarHotels finds venues whose review vectors sit closest to the named
// hotel's, deduplicated by hotel name.
func (s *Service) SimilarHotels(ctx context.Context, hotelName string, topK int) ([]HotelOption, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	vector, err := s.store.HotelVector(ctx, hotelName)
	if err != nil {
		return nil, fmt.Errorf("similar hotels: %w", err)
	}

	// Over-fetch: many reviews share a hotel, and the seed hotel itself ranks first.
	cands, err := s.store.VectorSearch(ctx, vector, domain.SearchFilter{}, topK*4)
	if err != nil {
		return nil, fmt.Errorf("similar hotels: %w", err)
	}

	seen := map[string]bool{hotelName: true}
	var out []HotelOption
	for i := range cands {
		c := &cands[i]
		if seen[c.HotelName] {
			continue
		}
		seen[c.HotelName] = true
		out = append(out, shapeOption(c))
		if len(out) == topK {
			break
		}
	}
	return out, nil
}

// HotelDetails returns the review analysis for one hotel together with its
// three closest neighbours.
func (s *Service) HotelDetails(ctx context.Context, hotelName string) (HotelDetails, error) {
	analysis, err := s.store.ReviewAnalysis(ctx, hotelName)
	if err != nil {
		return HotelDetails{}, fmt.Errorf("hotel details: %w", err)
	}

	similar, err := s.SimilarHotels(ctx, hotelName, 3)
	if err != nil {
		return HotelDetails{}, fmt.Errorf("hotel details: %w", err)
	}

	return HotelDetails{
		HotelName:     hotelName,
		Analysis:      analysis,
		SimilarHotels: similar,
	}, nil
}

// tierSearch runs one engine search for the given params and shapes the output.
func (s *Service) tierSearch(ctx context.Context, p SearchParams) ([]HotelOption, error) {
	topK := p.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	req := domain.SearchRequest{
		Query: buildQuery(p),
		Filters: domain.SearchFilter{
			Location:  p.Destination,
			MinRating: ratingFloor,
			Tags:      preferenceTags(p.Preferences),
		},
		TopK: 2 * topK,
	}

	cands, err := s.engine.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	hotels := make([]HotelOption, 0, len(cands))
	for i := range cands {
		hotels = append(hotels, shapeOption(&cands[i]))
	}
	hotels = filterByBudget(hotels, p.Budget)
	if len(hotels) > topK {
		hotels = hotels[:topK]
	}
	return hotels, nil
}

// buildQuery assembles free text from destination and preference terms.
func buildQuery(p SearchParams) string {
	var parts []string
	if p.Destination != "" {
		parts = append(parts, p.Destination)
	}
	parts = append(parts, p.Preferences.Atmosphere...)
	if p.Preferences.AccommodationType != "" {
		parts = append(parts, p.Preferences.AccommodationType)
	}
	if p.Preferences.SpecialRequirements != "" {
		parts = append(parts, p.Preferences.SpecialRequirements)
	}
	if len(parts) == 0 {
		parts = defaultQuery
	}
	return strings.Join(parts, " ")
}

// preferenceTags maps preferences onto index tag values.
func preferenceTags(prefs Preferences) []string {
	var tags []string
	tags = append(tags, prefs.Amenities...)
	for _, atm := range prefs.Atmosphere {
		switch atm {
		case "family", "romantic", "business":
			tags = append(tags, atm)
		}
	}
	return tags
}
