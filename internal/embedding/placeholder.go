package embedding

import (
	"context"
	"math/rand"
	"sync"

	"github.com/stayfinder/hotelsearch/internal/domain"
)

// PlaceholderEmbedder returns uniform-random vectors in [0,1). It exists to
// exercise the ingestion plumbing at full throughput without model inference.
// Random components stay positive so cosine similarity never sees a zero vector.
type PlaceholderEmbedder struct {
	dimensions int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlaceholderEmbedder creates a placeholder embedder with the given
// dimension and seed. A fixed seed makes test fixtures reproducible.
func NewPlaceholderEmbedder(dimensions int, seed int64) *PlaceholderEmbedder {
	return &PlaceholderEmbedder{
		dimensions: dimensions,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// EmbedBatch implements domain.Embedder.
func (e *PlaceholderEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	vectors := make([][]float32, len(texts))
	for i := range texts {
		vec := make([]float32, e.dimensions)
		for j := range vec {
			vec[j] = e.rng.Float32()
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// Dimensions implements domain.Embedder.
func (e *PlaceholderEmbedder) Dimensions() int { return e.dimensions }

// Mode implements domain.Embedder.
func (e *PlaceholderEmbedder) Mode() domain.EmbeddingMode { return domain.EmbeddingModePlaceholder }
