// Package rerank reorders fused candidates with a second-pass signal. The
// default signal is cheap lexical overlap; a learned cross-encoder can be
// swapped in at startup and silently degrades back to lexical on failure.
package rerank

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/stayfinder/hotelsearch/internal/domain"
)

const (
	overlapWeight  = 0.6
	combinedWeight = 0.4
)

// Lexical reranks by token overlap between the query and each candidate's
// review text. Deterministic and dependency-free.
type Lexical struct{}

// NewLexical creates the default reranker.
func NewLexical() *Lexical { return &Lexical{} }

// Rerank attaches a rerank score to every candidate and re-sorts descending.
// Candidates are never dropped or duplicated; ties keep their incoming order,
// which makes a second pass over an already ranked list a no-op.
func (l *Lexical) Rerank(
	_ context.Context, candidates []domain.ScoredCandidate, query string,
) []domain.ScoredCandidate {
	out := make([]domain.ScoredCandidate, len(candidates))
	copy(out, candidates)

	queryTokens := tokenize(query)
	for i := range out {
		overlap := overlapRatio(queryTokens, tokenize(out[i].ReviewText))
		out[i].RerankScore = overlapWeight*overlap + combinedWeight*out[i].CombinedScore
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RerankScore > out[j].RerankScore
	})
	return out
}

// tokenize splits on whitespace and lowercases, returning a token set.
func tokenize(s string) map[string]bool {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return nil
	}
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// overlapRatio is |query ∩ text| / |query|, 0 when either set is empty.
func overlapRatio(query, text map[string]bool) float64 {
	if len(query) == 0 || len(text) == 0 {
		return 0
	}
	n := 0
	for tok := range query {
		if text[tok] {
			n++
		}
	}
	return float64(n) / float64(len(query))
}

// Scorer scores (query, text) pairs with a learned model. Higher is more relevant.
type Scorer interface {
	Score(ctx context.Context, query string, texts []string) ([]float64, error)
}

// Model reranks with a learned scorer and falls back to lexical reranking
// whenever the scorer fails. Scorer failure is never fatal to a search.
type Model struct {
	scorer   Scorer
	fallback *Lexical
	logger   *zap.Logger
}

// NewModel wraps a learned scorer around the lexical fallback.
func NewModel(scorer Scorer, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{scorer: scorer, fallback: NewLexical(), logger: logger}
}

// Rerank scores every candidate's review text against the query.
func (m *Model) Rerank(
	ctx context.Context, candidates []domain.ScoredCandidate, query string,
) []domain.ScoredCandidate {
	if len(candidates) == 0 {
		return candidates
	}

	texts := make([]string, len(candidates))
	for i := range candidates {
		texts[i] = candidates[i].ReviewText
	}

	scores, err := m.scorer.Score(ctx, query, texts)
	if err != nil || len(scores) != len(candidates) {
		m.logger.Warn("model reranker unavailable, using lexical fallback", zap.Error(err))
		return m.fallback.Rerank(ctx, candidates, query)
	}

	out := make([]domain.ScoredCandidate, len(candidates))
	copy(out, candidates)
	for i := range out {
		out[i].RerankScore = scores[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RerankScore > out[j].RerankScore
	})
	return out
}
