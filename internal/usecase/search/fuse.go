package search

import (
	"sort"

	"github.com/stayfinder/hotelsearch/internal/domain"
)

// fuse merges the lexical and vector branches into one ranked list. Each
// branch is normalized by its own maximum raw score, then blended per
// document: combined = (1-alpha)*lexical + alpha*semantic. A document seen by
// only one branch contributes 0 for the other component; that is the whole
// penalty. Output ordering is deterministic: combined desc, lexical desc,
// doc_id asc.
func fuse(lexical, semantic []domain.ScoredCandidate, alpha float64) []domain.ScoredCandidate {
	maxLex := maxScore(lexical, func(c *domain.ScoredCandidate) float64 { return c.BM25Score })
	maxSem := maxScore(semantic, func(c *domain.ScoredCandidate) float64 { return c.SemanticScore })

	merged := make(map[string]*domain.ScoredCandidate, len(lexical)+len(semantic))
	order := make([]string, 0, len(lexical)+len(semantic))

	for i := range lexical {
		c := lexical[i]
		c.BM25Score /= maxLex
		c.SemanticScore = 0
		merged[c.DocID] = &c
		order = append(order, c.DocID)
	}
	for i := range semantic {
		c := semantic[i]
		norm := c.SemanticScore / maxSem
		if existing, ok := merged[c.DocID]; ok {
			existing.SemanticScore = norm
			continue
		}
		c.SemanticScore = norm
		c.BM25Score = 0
		merged[c.DocID] = &c
		order = append(order, c.DocID)
	}

	out := make([]domain.ScoredCandidate, 0, len(merged))
	for _, id := range order {
		c := merged[id]
		c.CombinedScore = (1-alpha)*c.BM25Score + alpha*c.SemanticScore
		out = append(out, *c)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CombinedScore != out[j].CombinedScore {
			return out[i].CombinedScore > out[j].CombinedScore
		}
		if out[i].BM25Score != out[j].BM25Score {
			return out[i].BM25Score > out[j].BM25Score
		}
		return out[i].DocID < out[j].DocID
	})
	return out
}

// maxScore returns the branch maximum, or 1 for an empty branch so
// normalization never divides by zero.
func maxScore(cands []domain.ScoredCandidate, score func(*domain.ScoredCandidate) float64) float64 {
	maxVal := 0.0
	for i := range cands {
		if s := score(&cands[i]); s > maxVal {
			maxVal = s
		}
	}
	if maxVal == 0 {
		return 1
	}
	return maxVal
}
