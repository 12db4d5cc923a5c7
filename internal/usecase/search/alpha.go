package search

import "strings"

// Fusion weight bounds and pivot points for the adaptive estimate.
const (
	alphaMin      = 0.1
	alphaMax      = 0.9
	alphaNeutral  = 0.5
	alphaSemBase  = 0.6
	alphaLexBase  = 0.4
	alphaStepSize = 0.1
)

// ambienceTerms signal abstract, mood-driven intent where embedding similarity
// outperforms keyword matching.
var ambienceTerms = []string{
	"romantic", "quiet", "cozy", "intimate", "relax", "luxury", "scenic",
}

// concreteTerms signal explicit attribute intent where lexical relevance wins.
var concreteTerms = []string{
	"near", "nearby", "center", "close", "breakfast", "parking", "pool",
}

// AdaptiveAlpha derives a fusion weight from the query text. Pure and
// deterministic: it scans the lowercased query for the two keyword sets and
// shifts the weight toward the dominant side, one step per surplus match.
func AdaptiveAlpha(query string) float64 {
	q := strings.ToLower(query)

	s := countMatches(q, ambienceTerms)
	k := countMatches(q, concreteTerms)

	switch {
	case s > k:
		return min(alphaMax, alphaSemBase+alphaStepSize*float64(s-k))
	case k > s:
		return max(alphaMin, alphaLexBase-alphaStepSize*float64(k-s))
	default:
		return alphaNeutral
	}
}

func countMatches(q string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(q, t) {
			n++
		}
	}
	return n
}
