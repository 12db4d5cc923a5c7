package domain

import "fmt"

// DefaultTopK is the result count when a request does not specify one.
const DefaultTopK = 10

// SearchFilter narrows a search to a location, a minimum rating, and a set of
// tags. Tags are any-of: a record matches when it carries at least one.
type SearchFilter struct {
	Location  string
	MinRating float64
	Tags      []string
}

// IsZero reports whether the filter constrains nothing.
func (f SearchFilter) IsZero() bool {
	return f.Location == "" && f.MinRating == 0 && len(f.Tags) == 0
}

// SearchRequest is one hybrid search invocation.
type SearchRequest struct {
	Query   string
	Filters SearchFilter
	TopK    int
	// Alpha is the fusion weight (0 = pure lexical, 1 = pure semantic).
	// When nil the engine derives one from the query text.
	Alpha *float64
}

// Validate checks the request and fills defaults.
func (r *SearchRequest) Validate() error {
	if r.Query == "" {
		return ErrEmptyQuery
	}
	if r.TopK <= 0 {
		r.TopK = DefaultTopK
	}
	if r.Alpha != nil && (*r.Alpha < 0 || *r.Alpha > 1) {
		return fmt.Errorf("alpha %.2f outside [0,1]", *r.Alpha)
	}
	return nil
}

// ScoredCandidate is one retrieved review with its per-branch and fused
// scores. Candidates live for the duration of a single search call and are
// never persisted.
type ScoredCandidate struct {
	DocID      string
	HotelName  string
	Location   string
	ReviewText string
	Rating     float64
	Tags       []string

	// BM25Score and SemanticScore are raw branch scores before fusion and
	// normalized branch scores after it.
	BM25Score     float64
	SemanticScore float64
	// CombinedScore is the fused score in [0,1].
	CombinedScore float64
	// RerankScore is set by the rerank pass.
	RerankScore float64
}
