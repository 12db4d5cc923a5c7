package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stayfinder/hotelsearch/internal/domain"
	"github.com/stayfinder/hotelsearch/internal/repository/review"
	"github.com/stayfinder/hotelsearch/internal/usecase/recommend"
)

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleSearch(t *testing.T) {
	engine := &mockEngine{
		searchFn: func(_ context.Context, req domain.SearchRequest) ([]domain.ScoredCandidate, error) {
			if req.Query != "quiet pool" || req.Filters.Location != "Oslo" || req.TopK != 3 {
				t.Errorf("request = %+v", req)
			}
			return []domain.ScoredCandidate{{
				DocID: "review_0", HotelName: "Grand", Location: "Oslo",
				ReviewText: "quiet rooms", Rating: 4.5, CombinedScore: 0.9,
			}}, nil
		},
	}
	srv := newTestServer(engine, nil, nil)

	rec := doJSON(t, srv, http.MethodPost, "/v1/search",
		`{"query":"quiet pool","location":"Oslo","top_k":3}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Results []candidateDTO `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].HotelName != "Grand" {
		t.Errorf("results = %+v", resp.Results)
	}
}

func TestHandleSearchStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty query", domain.ErrEmptyQuery, http.StatusBadRequest},
		{"store down", domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"embedding down", domain.ErrEmbeddingFailure, http.StatusBadGateway},
		{"unknown", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockEngine{
				searchFn: func(context.Context, domain.SearchRequest) ([]domain.ScoredCandidate, error) {
					return nil, tt.err
				},
			}
			srv := newTestServer(engine, nil, nil)

			rec := doJSON(t, srv, http.MethodPost, "/v1/search", `{"query":"q"}`)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandleSearchMalformedBody(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	rec := doJSON(t, srv, http.MethodPost, "/v1/search", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleRecommendationsFallback(t *testing.T) {
	recommender := &mockRecommender{
		fallbackFn: func(_ context.Context, p recommend.SearchParams) (recommend.Result, error) {
			if p.Destination != "Rome" || p.Budget == nil || p.Budget.Max != 200 {
				t.Errorf("params = %+v", p)
			}
			return recommend.Result{
				Hotels:  []recommend.HotelOption{{Name: "Trattoria Inn"}},
				Relaxed: true,
			}, nil
		},
	}
	srv := newTestServer(nil, recommender, nil)

	rec := doJSON(t, srv, http.MethodPost, "/v1/recommendations/fallback",
		`{"destination":"Rome","budget":{"min":50,"max":200}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp recommend.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Relaxed || len(resp.Hotels) != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestHandleSimilarHotels(t *testing.T) {
	recommender := &mockRecommender{
		similarFn: func(_ context.Context, name string, topK int) ([]recommend.HotelOption, error) {
			if name != "Grand Oslo" || topK != 3 {
				t.Errorf("name = %q, topK = %d", name, topK)
			}
			return []recommend.HotelOption{{Name: "Plaza"}}, nil
		},
	}
	srv := newTestServer(nil, recommender, nil)

	rec := doJSON(t, srv, http.MethodGet, "/v1/hotels/similar?name=Grand+Oslo&top_k=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestHandleSimilarHotelsMissingName(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	rec := doJSON(t, srv, http.MethodGet, "/v1/hotels/similar", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSimilarHotelsNotFound(t *testing.T) {
	recommender := &mockRecommender{
		similarFn: func(context.Context, string, int) ([]recommend.HotelOption, error) {
			return nil, review.ErrHotelNotFound
		},
	}
	srv := newTestServer(nil, recommender, nil)

	rec := doJSON(t, srv, http.MethodGet, "/v1/hotels/similar?name=Ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleHotelDetails(t *testing.T) {
	recommender := &mockRecommender{
		detailsFn: func(_ context.Context, name string) (recommend.HotelDetails, error) {
			if name != "Grand Oslo" {
				t.Errorf("name = %q", name)
			}
			return recommend.HotelDetails{
				HotelName: name,
				Analysis:  domain.HotelAnalysis{TotalReviews: 12, AvgRating: 4.25},
			}, nil
		},
	}
	srv := newTestServer(nil, recommender, nil)

	rec := doJSON(t, srv, http.MethodGet, "/v1/hotels/details?name=Grand+Oslo", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var details recommend.HotelDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &details); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if details.Analysis.TotalReviews != 12 {
		t.Errorf("total reviews = %d, want 12", details.Analysis.TotalReviews)
	}
}

func TestHandleHotelDetailsMissingName(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	rec := doJSON(t, srv, http.MethodGet, "/v1/hotels/details", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleHotelDetailsNotFound(t *testing.T) {
	recommender := &mockRecommender{
		detailsFn: func(context.Context, string) (recommend.HotelDetails, error) {
			return recommend.HotelDetails{}, review.ErrHotelNotFound
		},
	}
	srv := newTestServer(nil, recommender, nil)

	rec := doJSON(t, srv, http.MethodGet, "/v1/hotels/details?name=Ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleHealthz(t *testing.T) {
	srv := newTestServer(nil, nil, &mockHealth{})
	rec := doJSON(t, srv, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	srv = newTestServer(nil, nil, &mockHealth{err: domain.ErrStoreUnavailable})
	rec = doJSON(t, srv, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestSnippetTruncation(t *testing.T) {
	c := domain.ScoredCandidate{ReviewText: strings.Repeat("x", 300)}
	dto := toCandidateDTO(&c)
	if len(dto.ReviewSnippet) != 203 {
		t.Errorf("snippet length = %d, want 203", len(dto.ReviewSnippet))
	}

	// A two-byte rune straddling the 200-byte cut must not be split.
	c = domain.ScoredCandidate{ReviewText: "a" + strings.Repeat("é", 150)}
	dto = toCandidateDTO(&c)
	if !utf8.ValidString(dto.ReviewSnippet) {
		t.Errorf("snippet is not valid UTF-8: %q", dto.ReviewSnippet)
	}
	if !strings.HasSuffix(dto.ReviewSnippet, "...") {
		t.Error("truncated snippet missing ellipsis")
	}
}
