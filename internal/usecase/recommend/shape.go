package recommend

import (
	"strings"

	"github.com/stayfinder/hotelsearch/internal/domain"
)

const snippetLen = 200

// priceEstimate maps a price band to a representative nightly rate for
// budget filtering. Rough by design: the index stores no prices, only what
// reviewers say about them.
var priceEstimate = map[string]float64{
	"$":     50,
	"$$":    100,
	"$$$":   200,
	"$$$$":  400,
	"$$$$$": 800,
}

var priceSignals = []struct {
	band  string
	words []string
}{
	{"$$$$$", []string{"luxury", "expensive", "premium", "high-end"}},
	{"$$$$", []string{"upscale", "pricey"}},
	{"$$$", []string{"reasonable", "moderate", "fair price"}},
	{"$$", []string{"budget", "cheap", "affordable"}},
}

var highlightSignals = []struct {
	keyword   string
	highlight string
}{
	{"excellent", "excellent service"},
	{"amazing", "memorable experience"},
	{"clean", "clean facilities"},
	{"friendly", "friendly staff"},
	{"comfortable", "comfortable rooms"},
	{"great location", "great location"},
	{"good breakfast", "good breakfast"},
	{"spacious", "spacious rooms"},
	{"quiet", "quiet surroundings"},
	{"modern", "modern facilities"},
}

// shapeOption converts an engine candidate into a presentable recommendation.
func shapeOption(c *domain.ScoredCandidate) HotelOption {
	snippet := domain.Snippet(c.ReviewText, snippetLen)
	return HotelOption{
		Name:          c.HotelName,
		Location:      c.Location,
		Rating:        c.Rating,
		PriceRange:    estimatePriceRange(c.ReviewText),
		Amenities:     c.Tags,
		ReviewSnippet: snippet,
		Highlights:    extractHighlights(snippet),
		BM25Score:     c.BM25Score,
		SemanticScore: c.SemanticScore,
		CombinedScore: c.CombinedScore,
	}
}

// estimatePriceRange infers a price band from price sentiment in the review.
func estimatePriceRange(reviewText string) string {
	text := strings.ToLower(reviewText)
	for _, sig := range priceSignals {
		for _, w := range sig.words {
			if strings.Contains(text, w) {
				return sig.band
			}
		}
	}
	return "$$$"
}

// extractHighlights pulls up to three positive signals out of the snippet.
func extractHighlights(snippet string) []string {
	text := strings.ToLower(snippet)
	var out []string
	for _, sig := range highlightSignals {
		if strings.Contains(text, sig.keyword) {
			out = append(out, sig.highlight)
			if len(out) == 3 {
				return out
			}
		}
	}
	if len(out) == 0 {
		return []string{"highly rated by guests"}
	}
	return out
}

// filterByBudget keeps hotels whose estimated rate falls inside the range.
// When the filter empties the list the top two unfiltered hotels survive,
// since a weak match beats no recommendation.
func filterByBudget(hotels []HotelOption, budget *BudgetRange) []HotelOption {
	if budget == nil {
		return hotels
	}

	filtered := make([]HotelOption, 0, len(hotels))
	for _, h := range hotels {
		rate, ok := priceEstimate[h.PriceRange]
		if !ok {
			rate = priceEstimate["$$$"]
		}
		if rate >= budget.Min && rate <= budget.Max {
			filtered = append(filtered, h)
		}
	}
	if len(filtered) == 0 && len(hotels) > 0 {
		if len(hotels) > 2 {
			return hotels[:2]
		}
		return hotels
	}
	return filtered
}
