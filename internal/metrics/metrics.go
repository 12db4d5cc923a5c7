package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search, embedding, and ingestion Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelsearch",
			Name:      "search_requests_total",
			Help:      "Total number of hybrid search requests",
		},
		[]string{"status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotelsearch",
			Name:      "search_duration_seconds",
			Help:      "Hybrid search duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"branch"}, // "lexical", "vector", "total"
	)

	FallbackTierTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelsearch",
			Name:      "fallback_tier_total",
			Help:      "Searches resolved at each fallback tier",
		},
		[]string{"tier"}, // "full", "relaxed", "empty"
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelsearch",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotelsearch",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	EmbeddingTextsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelsearch",
			Name:      "embedding_texts_total",
			Help:      "Total texts embedded",
		},
		[]string{"model"},
	)

	IngestedDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelsearch",
			Name:      "ingested_documents_total",
			Help:      "Documents written during bulk ingestion",
		},
		[]string{"result"}, // "success" / "failed"
	)
)

var registered bool

// Register registers all hotelsearch metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(FallbackTierTotal)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTextsTotal)
	prometheus.MustRegister(IngestedDocumentsTotal)
	registered = true
}
