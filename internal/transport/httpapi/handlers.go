package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/stayfinder/hotelsearch/internal/domain"
	"github.com/stayfinder/hotelsearch/internal/repository/review"
	"github.com/stayfinder/hotelsearch/internal/usecase/recommend"
)

// searchRequest is the raw hybrid search payload.
type searchRequest struct {
	Query     string   `json:"query"`
	Location  string   `json:"location,omitempty"`
	MinRating float64  `json:"min_rating,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	TopK      int      `json:"top_k,omitempty"`
	Alpha     *float64 `json:"alpha,omitempty"`
}

// candidateDTO is the wire form of a scored candidate.
type candidateDTO struct {
	DocID         string   `json:"doc_id"`
	HotelName     string   `json:"hotel_name"`
	Location      string   `json:"location"`
	Rating        float64  `json:"rating"`
	Tags          []string `json:"tags,omitempty"`
	ReviewSnippet string   `json:"review_snippet"`
	BM25Score     float64  `json:"bm25_score"`
	SemanticScore float64  `json:"semantic_score"`
	CombinedScore float64  `json:"combined_score"`
	RerankScore   float64  `json:"rerank_score"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := domain.SearchRequest{
		Query: body.Query,
		Filters: domain.SearchFilter{
			Location:  body.Location,
			MinRating: body.MinRating,
			Tags:      body.Tags,
		},
		TopK:  body.TopK,
		Alpha: body.Alpha,
	}

	cands, err := s.engine.Search(r.Context(), req)
	if err != nil {
		s.writeFailure(w, r, "search", err)
		return
	}

	dtos := make([]candidateDTO, len(cands))
	for i := range cands {
		dtos[i] = toCandidateDTO(&cands[i])
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": dtos})
}

// recommendRequest is the caller-facing recommendation payload.
type recommendRequest struct {
	Destination string                 `json:"destination"`
	Preferences recommend.Preferences  `json:"preferences"`
	Budget      *recommend.BudgetRange `json:"budget,omitempty"`
	TopK        int                    `json:"top_k,omitempty"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	s.recommendWith(w, r, s.rec.Search)
}

func (s *Server) handleRecommendationsFallback(w http.ResponseWriter, r *http.Request) {
	s.recommendWith(w, r, s.rec.SearchWithFallback)
}

func (s *Server) recommendWith(
	w http.ResponseWriter, r *http.Request,
	run func(ctx context.Context, p recommend.SearchParams) (recommend.Result, error),
) {
	var body recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := run(r.Context(), recommend.SearchParams{
		Destination: body.Destination,
		Preferences: body.Preferences,
		Budget:      body.Budget,
		TopK:        body.TopK,
	})
	if err != nil {
		s.writeFailure(w, r, "recommendation", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSimilarHotels(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}
	topK, _ := strconv.Atoi(r.URL.Query().Get("top_k"))

	hotels, err := s.rec.SimilarHotels(r.Context(), name, topK)
	if err != nil {
		s.writeFailure(w, r, "similar hotels", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"hotels": hotels})
}

func (s *Server) handleHotelDetails(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	details, err := s.rec.HotelDetails(r.Context(), name)
	if err != nil {
		s.writeFailure(w, r, "hotel details", err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Healthy(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeFailure maps domain errors onto HTTP statuses.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error(op+" failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, review.ErrHotelNotFound):
		writeError(w, http.StatusNotFound, "hotel not found")
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "document store unavailable")
	case errors.Is(err, domain.ErrEmbeddingFailure):
		writeError(w, http.StatusBadGateway, "embedding provider unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toCandidateDTO(c *domain.ScoredCandidate) candidateDTO {
	snippet := domain.Snippet(c.ReviewText, 200)
	return candidateDTO{
		DocID:         c.DocID,
		HotelName:     c.HotelName,
		Location:      c.Location,
		Rating:        c.Rating,
		Tags:          c.Tags,
		ReviewSnippet: snippet,
		BM25Score:     c.BM25Score,
		SemanticScore: c.SemanticScore,
		CombinedScore: c.CombinedScore,
		RerankScore:   c.RerankScore,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
