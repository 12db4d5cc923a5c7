// Package ingest bulk-loads review documents: it batches them, generates
// embeddings on a worker pool, and writes through the store adapter with
// best-effort per-record error reporting.
package ingest

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/stayfinder/hotelsearch/internal/domain"
	"github.com/stayfinder/hotelsearch/internal/metrics"
)

// Store is the write side of the document store adapter.
type Store interface {
	BulkWrite(ctx context.Context, records []domain.IndexedRecord) (int, []domain.RecordError, error)
	Refresh(ctx context.Context) error
}

// BatchError describes one batch that failed, fully or partially.
type BatchError struct {
	Batch int
	// Err is set when the whole batch failed (embedding or store call).
	Err error
	// Records holds per-record rejections of a partially failed batch.
	Records []domain.RecordError
}

// Report summarizes one ingestion run.
type Report struct {
	TotalDocs    int
	TotalSuccess int
	TotalFailed  int
	Batches      int
	BatchErrors  []BatchError
	Elapsed      time.Duration
}

// Pipeline is the bulk ingestion pipeline. Embedding runs on a bounded worker
// pool; bulk writes are serialized through a single aggregation stage that
// consumes encoded batches in input order.
type Pipeline struct {
	store   Store
	embed   domain.Embedder
	pool    *ants.Pool
	workers int
	logger  *zap.Logger
}

// NewPipeline creates a pipeline with the given worker count. workers <= 0
// selects available cores minus one, minimum one.
func NewPipeline(store Store, embed domain.Embedder, workers int, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU() - 1
	}
	if workers < 1 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	return &Pipeline{
		store:   store,
		embed:   embed,
		pool:    pool,
		workers: workers,
		logger:  logger,
	}, nil
}

// Release frees the worker pool. The pipeline must not be used afterwards.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// encodedBatch is one index-tagged unit of work after the embedding stage.
type encodedBatch struct {
	idx     int
	size    int
	records []domain.IndexedRecord
	err     error
}

// Ingest writes documents in batches of batchSize. Invalid documents and
// failed batches are reported and skipped; the run never aborts early. After
// the last write the index is refreshed so the new records are searchable.
func (p *Pipeline) Ingest(ctx context.Context, docs []domain.ReviewDocument, batchSize int) (Report, error) {
	if batchSize <= 0 {
		return Report{}, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	start := time.Now()
	report := Report{TotalDocs: len(docs)}

	valid := make([]domain.ReviewDocument, 0, len(docs))
	for i := range docs {
		if err := docs[i].Validate(); err != nil {
			p.logger.Warn("skipping malformed document", zap.Error(err))
			report.TotalFailed++
			metrics.IngestedDocumentsTotal.WithLabelValues("failed").Inc()
			continue
		}
		valid = append(valid, docs[i])
	}

	batches := partition(valid, batchSize)
	report.Batches = len(batches)
	p.logger.Info("ingestion started",
		zap.Int("documents", len(valid)),
		zap.Int("batches", len(batches)),
		zap.Int("batch_size", batchSize),
		zap.Int("workers", p.workers),
		zap.String("embedding_mode", string(p.embed.Mode())),
	)

	// Submission runs on its own goroutine so the drain stage below consumes
	// results while batches are still being queued. Submitting and draining
	// from the same goroutine would wedge once the results buffer fills up
	// with every worker blocked on it.
	results := make(chan encodedBatch, p.workers)
	go func() {
		var wg sync.WaitGroup
		for i := range batches {
			idx, batch := i, batches[i]
			wg.Add(1)
			if err := p.pool.Submit(func() {
				defer wg.Done()
				results <- p.encodeBatch(ctx, idx, batch)
			}); err != nil {
				wg.Done()
				results <- encodedBatch{idx: idx, size: len(batch), err: fmt.Errorf("submit batch: %w", err)}
			}
		}
		wg.Wait()
		close(results)
	}()

	// Single-writer stage: buffer out-of-order batches and write them in
	// input order so bulk writes never race and doc ordering is stable.
	pending := make(map[int]encodedBatch, p.workers)
	next := 0
	for eb := range results {
		pending[eb.idx] = eb
		for {
			cur, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			p.writeBatch(ctx, cur, &report)
			next++
		}
	}

	if err := p.store.Refresh(ctx); err != nil {
		return report, fmt.Errorf("refresh after ingest: %w", err)
	}

	report.Elapsed = time.Since(start)
	p.logger.Info("ingestion finished",
		zap.Int("success", report.TotalSuccess),
		zap.Int("failed", report.TotalFailed),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// encodeBatch embeds a batch's review texts and attaches the vectors.
func (p *Pipeline) encodeBatch(ctx context.Context, idx int, batch []domain.ReviewDocument) encodedBatch {
	texts := make([]string, len(batch))
	for i := range batch {
		texts[i] = batch[i].ReviewText
	}

	vectors, err := p.embed.EmbedBatch(ctx, texts)
	if err != nil {
		return encodedBatch{idx: idx, size: len(batch), err: fmt.Errorf("embed batch %d: %w", idx, err)}
	}
	if len(vectors) != len(batch) {
		return encodedBatch{idx: idx, size: len(batch), err: fmt.Errorf(
			"embed batch %d: got %d vectors for %d documents: %w",
			idx, len(vectors), len(batch), domain.ErrEmbeddingFailure)}
	}

	now := time.Now().UTC()
	records := make([]domain.IndexedRecord, len(batch))
	for i := range batch {
		records[i] = domain.IndexedRecord{
			ReviewDocument: batch[i],
			ReviewVector:   vectors[i],
			EmbeddingMode:  p.embed.Mode(),
			IndexedAt:      now,
		}
	}
	return encodedBatch{idx: idx, size: len(batch), records: records}
}

// writeBatch pushes one encoded batch through the store and folds the outcome
// into the report. Failures never abort the remaining batches.
func (p *Pipeline) writeBatch(ctx context.Context, eb encodedBatch, report *Report) {
	if eb.err != nil {
		p.logger.Error("batch failed", zap.Int("batch", eb.idx), zap.Error(eb.err))
		report.TotalFailed += eb.size
		report.BatchErrors = append(report.BatchErrors, BatchError{Batch: eb.idx, Err: eb.err})
		metrics.IngestedDocumentsTotal.WithLabelValues("failed").Add(float64(eb.size))
		return
	}

	success, recErrs, err := p.store.BulkWrite(ctx, eb.records)
	if err != nil {
		p.logger.Error("bulk write failed", zap.Int("batch", eb.idx), zap.Error(err))
		report.TotalFailed += eb.size
		report.BatchErrors = append(report.BatchErrors, BatchError{Batch: eb.idx, Err: err})
		metrics.IngestedDocumentsTotal.WithLabelValues("failed").Add(float64(eb.size))
		return
	}

	report.TotalSuccess += success
	report.TotalFailed += len(recErrs)
	metrics.IngestedDocumentsTotal.WithLabelValues("success").Add(float64(success))
	metrics.IngestedDocumentsTotal.WithLabelValues("failed").Add(float64(len(recErrs)))

	if len(recErrs) > 0 {
		for _, re := range recErrs {
			p.logger.Warn("record rejected",
				zap.Int("batch", eb.idx),
				zap.String("doc_id", re.DocID),
				zap.Error(re.Err),
			)
		}
		report.BatchErrors = append(report.BatchErrors, BatchError{Batch: eb.idx, Records: recErrs})
	}
}

// partition splits docs into slices of at most batchSize, preserving order.
func partition(docs []domain.ReviewDocument, batchSize int) [][]domain.ReviewDocument {
	var batches [][]domain.ReviewDocument
	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batches = append(batches, docs[start:end])
	}
	return batches
}
