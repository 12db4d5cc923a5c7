package domain

import "context"

// EmbeddingMode records how a batch of vectors was produced. It is persisted
// per record so operators can audit which fraction of an index carries
// semantically meaningful vectors.
type EmbeddingMode string

const (
	// EmbeddingModeReal means vectors came from model inference.
	EmbeddingModeReal EmbeddingMode = "real"
	// EmbeddingModePlaceholder means vectors are uniform random. They validate
	// ingestion plumbing at high throughput; semantic scores computed from them
	// are meaningless and must never back a production search.
	EmbeddingModePlaceholder EmbeddingMode = "placeholder"
)

// Embedder converts review text into fixed-dimension vectors. Implementations
// must preserve input order and be safe for concurrent use.
type Embedder interface {
	// EmbedBatch returns one vector per input text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions is the fixed vector dimension, constant for the process lifetime.
	Dimensions() int
	// Mode reports how this embedder produces vectors.
	Mode() EmbeddingMode
}
