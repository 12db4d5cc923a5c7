package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/stayfinder/hotelsearch/internal/domain"
)

// mockWriteStore implements the Store interface for tests. It records every
// bulk write in arrival order.
type mockWriteStore struct {
	mu        sync.Mutex
	writes    [][]domain.IndexedRecord
	writeFn   func(batch int, records []domain.IndexedRecord) (int, []domain.RecordError, error)
	refreshed int
}

func (m *mockWriteStore) BulkWrite(_ context.Context, records []domain.IndexedRecord) (int, []domain.RecordError, error) {
	m.mu.Lock()
	batch := len(m.writes)
	m.writes = append(m.writes, records)
	m.mu.Unlock()

	if m.writeFn != nil {
		return m.writeFn(batch, records)
	}
	return len(records), nil, nil
}

func (m *mockWriteStore) Refresh(context.Context) error {
	m.mu.Lock()
	m.refreshed++
	m.mu.Unlock()
	return nil
}

// stubEmbedder produces constant vectors, optionally failing chosen batches.
type stubEmbedder struct {
	mu      sync.Mutex
	calls   int
	embedFn func(call int, texts []string) ([][]float32, error)
}

func (e *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	call := e.calls
	e.calls++
	e.mu.Unlock()

	if e.embedFn != nil {
		return e.embedFn(call, texts)
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{0.5, 0.5}
	}
	return out, nil
}

func (e *stubEmbedder) Dimensions() int { return 2 }

func (e *stubEmbedder) Mode() domain.EmbeddingMode { return domain.EmbeddingModePlaceholder }

func makeDocs(n int) []domain.ReviewDocument {
	docs := make([]domain.ReviewDocument, n)
	for i := range docs {
		docs[i] = domain.ReviewDocument{
			DocID:      fmt.Sprintf("review_%d", i),
			HotelName:  "Hotel Test",
			ReviewText: fmt.Sprintf("review number %d", i),
			Rating:     4.0,
		}
	}
	return docs
}
