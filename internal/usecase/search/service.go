// Package search implements the hybrid retrieval engine: it issues lexical
// and vector queries in parallel, normalizes and fuses their scores, and runs
// the rerank pass over the fused candidates.
package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stayfinder/hotelsearch/internal/domain"
	"github.com/stayfinder/hotelsearch/internal/logger"
	"github.com/stayfinder/hotelsearch/internal/metrics"
)

// Service is the hybrid search engine. Stateless between requests; concurrent
// calls share only the store's connection pool.
type Service struct {
	store  Store
	embed  domain.Embedder
	rerank Reranker
}

// New creates a hybrid search service.
func New(store Store, embed domain.Embedder, rerank Reranker) *Service {
	return &Service{store: store, embed: embed, rerank: rerank}
}

// Search runs one hybrid query and returns up to TopK ranked candidates.
// A query-time embedding failure fails the whole request; branch failures
// propagate to the caller, which owns retry policy.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) ([]domain.ScoredCandidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	alpha := AdaptiveAlpha(req.Query)
	if req.Alpha != nil {
		alpha = *req.Alpha
	}

	start := time.Now()
	defer func() {
		metrics.SearchDuration.WithLabelValues("total").Observe(time.Since(start).Seconds())
	}()

	vectors, err := s.embed.EmbedBatch(ctx, []string{req.Query})
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("embed query: %w", err)
	}

	// Both branches fetch twice the requested size so fusion has enough
	// candidates to reorder without truncation bias.
	fetch := 2 * req.TopK

	var (
		wg       sync.WaitGroup
		lexical  []domain.ScoredCandidate
		semantic []domain.ScoredCandidate
		lexErr   error
		semErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		branchStart := time.Now()
		lexical, lexErr = s.store.LexicalSearch(ctx, req.Query, req.Filters, fetch)
		metrics.SearchDuration.WithLabelValues("lexical").Observe(time.Since(branchStart).Seconds())
	}()
	go func() {
		defer wg.Done()
		branchStart := time.Now()
		semantic, semErr = s.store.VectorSearch(ctx, vectors[0], req.Filters, fetch)
		metrics.SearchDuration.WithLabelValues("vector").Observe(time.Since(branchStart).Seconds())
	}()
	wg.Wait()

	if lexErr != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("lexical branch: %w", lexErr)
	}
	if semErr != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("vector branch: %w", semErr)
	}

	fused := fuse(lexical, semantic, alpha)
	fused = s.rerank.Rerank(ctx, fused, req.Query)

	if len(fused) > req.TopK {
		fused = fused[:req.TopK]
	}

	logger.FromContext(ctx).Debug("hybrid search",
		zap.String("query", req.Query),
		zap.Float64("alpha", alpha),
		zap.Int("lexical_hits", len(lexical)),
		zap.Int("vector_hits", len(semantic)),
		zap.Int("returned", len(fused)),
	)
	metrics.SearchRequestsTotal.WithLabelValues("success").Inc()
	return fused, nil
}
