package recommend

import "github.com/stayfinder/hotelsearch/internal/domain"

// Preferences captures the traveler's soft constraints, already parsed by the
// conversational layer upstream.
type Preferences struct {
	Atmosphere          []string `json:"atmosphere,omitempty"`
	Amenities           []string `json:"amenities,omitempty"`
	AccommodationType   string   `json:"accommodation_type,omitempty"`
	SpecialRequirements string   `json:"special_requirements,omitempty"`
}

// BudgetRange is a nightly price band in the caller's currency.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SearchParams is the caller-facing search input.
type SearchParams struct {
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

// HotelDetails combines a hotel's review analysis with its nearest
// neighbours, for a drill-down view on one recommendation.
type HotelDetails struct {
	HotelName     string               `json:"hotel_name"`
	Analysis      domain.HotelAnalysis `json:"analysis"`
	SimilarHotels []HotelOption        `json:"similar_hotels"`
}

// Result is a ranked recommendation list with fallback annotations.
type Result struct {
	Hotels []HotelOption `json:"hotels"`
	// Relaxed marks results found only after preference constraints were
	// loosened, so presentation can disclose it.
	Relaxed bool `json:"relaxed"`
	// Exhausted marks a search that ran out of fallback tiers. The caller
	// renders a "no matches" message; this is never an error.
	Exhausted bool `json:"exhausted"`
}
