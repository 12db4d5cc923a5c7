package sdk

// SearchRequest is the raw hybrid search input.
type SearchRequest struct {
	Query     string   `json:"query"`
	Location  string   `json:"location,omitempty"`
	MinRating float64  `json:"min_rating,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	TopK      int      `json:"top_k,omitempty"`
	// Alpha overrides the adaptive lexical/semantic blend. nil lets the
	// server pick one from the query wording.
	Alpha *float64 `json:"alpha,omitempty"`
}

// Candidate is one scored search hit.
type Candidate struct {
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

// SearchResponse wraps the ranked hits.
type SearchResponse struct {
	Results []Candidate `json:"results"`
}

// Preferences captures the traveler's soft constraints.
type Preferences struct {
	Atmosphere          []string `json:"atmosphere,omitempty"`
	Amenities           []string `json:"amenities,omitempty"`
	AccommodationType   string   `json:"accommodation_type,omitempty"`
	SpecialRequirements string   `json:"special_requirements,omitempty"`
}

// BudgetRange is a nightly price band.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RecommendRequest is the caller-facing recommendation input.
type RecommendRequest struct {
	Destination string       `json:"destination"`
	Preferences Preferences  `json:"preferences"`
	Budget      *BudgetRange `json:"budget,omitempty"`
	TopK        int          `json:"top_k,omitempty"`
}

// HotelOption is one ranked recommendation.
type HotelOption struct {
	Name          string   `json:"hotel_name"`
	Location      string   `json:"location"`
	Rating        float64  `json:"rating"`
	PriceRange    string   `json:"price_range"`
	Amenities     []string `json:"amenities,omitempty"`
	ReviewSnippet string   `json:"review_snippet"`
	Highlights    []string `json:"highlights"`
	BM25Score     float64  `json:"bm25_score"`
	SemanticScore float64  `json:"semantic_score"`
	CombinedScore float64  `json:"combined_score"`
}

// RatingBucket is one bar of a hotel's rating histogram.
type RatingBucket struct {
	Rating float64 `json:"rating"`
	Count  int64   `json:"count"`
}

// TagCount is one tag with its occurrence count.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// SampleReview is a short excerpt shown alongside an analysis.
type SampleReview struct {
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
}

// HotelAnalysis aggregates one hotel's reviews.
type HotelAnalysis struct {
	HotelName          string         `json:"hotel_name"`
	TotalReviews       int64          `json:"total_reviews"`
	AvgRating          float64        `json:"avg_rating"`
	RatingDistribution []RatingBucket `json:"rating_distribution"`
	CommonTags         []TagCount     `json:"common_tags"`
	SampleReviews      []SampleReview `json:"sample_reviews"`
}

// HotelDetails combines a hotel's review analysis with its nearest
// neighbours.
type HotelDetails struct {
	HotelName     string        `json:"hotel_name"`
	Analysis      HotelAnalysis `json:"analysis"`
	SimilarHotels []HotelOption `json:"similar_hotels"`
}

// RecommendResponse is a ranked recommendation list with fallback annotations.
type RecommendResponse struct {
	Hotels []HotelOption `json:"hotels"`
	// Relaxed marks results found only after preference constraints were
	// loosened.
	Relaxed bool `json:"relaxed"`
	// Exhausted marks a search that ran out of fallback tiers.
	Exhausted bool `json:"exhausted"`
}
