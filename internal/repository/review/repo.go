// Package review is the document-store adapter: it issues lexical and vector
// queries against an Elasticsearch-compatible endpoint and bulk-writes
// indexed records. It owns no ranking logic, and the store's query DSL never
// leaks past this package.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"time"

	elastic "github.com/olivere/elastic/v7"
	"go.uber.org/zap"

	"github.com/stayfinder/hotelsearch/internal/domain"
)

// ErrHotelNotFound signals that no review exists for the requested hotel.
var ErrHotelNotFound = errors.New("hotel not found")

// Config holds construction-time store settings.
type Config struct {
	Addrs      []string
	Username   string
	Password   string
	Index      string
	VectorDims int
	// Timeout bounds every store call. Defaults to 10s.
	Timeout time.Duration
}

// Repo is the store adapter. The underlying client keeps its own connection
// pool and is safe for concurrent use by in-flight requests.
type Repo struct {
	es      *elastic.Client
	index   string
	dims    int
	timeout time.Duration
	logger  *zap.Logger
}

// New connects to the store and returns the adapter.
func New(cfg Config, logger *zap.Logger) (*Repo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(cfg.Addrs...),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	}
	if cfg.Username != "" {
		opts = append(opts, elastic.SetBasicAuth(cfg.Username, cfg.Password))
	}

	es, err := elastic.NewClient(opts...)
	if err != nil {
		return nil, storeErr("connect", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Repo{
		es:      es,
		index:   cfg.Index,
		dims:    cfg.VectorDims,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// LexicalSearch runs a BM25-relevance query over review text, title, and
// hotel name, constrained by the filter.
func (r *Repo) LexicalSearch(
	ctx context.Context, query string, f domain.SearchFilter, limit int,
) ([]domain.ScoredCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q := elastic.NewBoolQuery().
		Must(elastic.NewMultiMatchQuery(query, "review_text^2", "review_title", "hotel_name").
			Type("best_fields")).
		Filter(filterQueries(f)...)

	res, err := r.es.Search(r.index).Query(q).Size(limit).Do(ctx)
	if err != nil {
		return nil, storeErr("lexical search", err)
	}
	return parseHits(res, func(c *domain.ScoredCandidate, score float64) {
		c.BM25Score = score
	})
}

// VectorSearch runs a cosine-similarity query against the review vectors,
// constrained by the filter. Scores are shifted by +1 so they stay
// non-negative.
func (r *Repo) VectorSearch(
	ctx context.Context, vector []float32, f domain.SearchFilter, limit int,
) ([]domain.ScoredCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	script := elastic.NewScript(
		"cosineSimilarity(params.query_vector, 'review_vector') + 1.0",
	).Param("query_vector", vector)
	q := elastic.NewScriptScoreQuery(
		elastic.NewBoolQuery().Filter(filterQueries(f)...), script,
	)

	res, err := r.es.Search(r.index).Query(q).Size(limit).Do(ctx)
	if err != nil {
		return nil, storeErr("vector search", err)
	}
	return parseHits(res, func(c *domain.ScoredCandidate, score float64) {
		c.SemanticScore = score
	})
}

// BulkWrite indexes records through the store's bulk API. Records whose
// vector dimension does not match the index are rejected locally; store-side
// failures are reported per document. A non-nil error means the whole call
// failed and nothing is known about individual records.
func (r *Repo) BulkWrite(
	ctx context.Context, records []domain.IndexedRecord,
) (int, []domain.RecordError, error) {
	if len(records) == 0 {
		return 0, nil, nil
	}

	var failed []domain.RecordError
	bulk := r.es.Bulk().Index(r.index)
	queued := 0
	for i := range records {
		rec := &records[i]
		if len(rec.ReviewVector) != r.dims {
			failed = append(failed, domain.RecordError{
				DocID: rec.DocID,
				Err: fmt.Errorf("%w: got %d, index has %d",
					domain.ErrVectorDimMismatch, len(rec.ReviewVector), r.dims),
			})
			continue
		}
		bulk.Add(elastic.NewBulkIndexRequest().Id(rec.DocID).Doc(rec))
		queued++
	}
	if queued == 0 {
		return 0, failed, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := bulk.Do(ctx)
	if err != nil {
		return 0, nil, storeErr("bulk write", err)
	}

	success := queued
	for _, item := range res.Failed() {
		reason := "unknown"
		if item.Error != nil {
			reason = item.Error.Reason
		}
		failed = append(failed, domain.RecordError{
			DocID: item.Id,
			Err:   fmt.Errorf("store rejected document: %s", reason),
		})
		success--
	}
	return success, failed, nil
}

// HotelVector returns the stored review vector of the first record matching
// the exact hotel name. Used to seed similar-hotel lookups.
func (r *Repo) HotelVector(ctx context.Context, hotelName string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.es.Search(r.index).
		Query(elastic.NewTermQuery("hotel_name.keyword", hotelName)).
		Size(1).Do(ctx)
	if err != nil {
		return nil, storeErr("hotel vector", err)
	}
	if res.Hits == nil || len(res.Hits.Hits) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrHotelNotFound, hotelName)
	}

	var src struct {
		ReviewVector []float32 `json:"review_vector"`
	}
	if err := json.Unmarshal(res.Hits.Hits[0].Source, &src); err != nil {
		return nil, fmt.Errorf("decode hotel vector: %w", err)
	}
	return src.ReviewVector, nil
}

// ReviewAnalysis aggregates one hotel's reviews: count, average rating,
// rating histogram, most common tags, and up to three sample excerpts. The
// aggregations run over every matching review regardless of the hit size.
func (r *Repo) ReviewAnalysis(ctx context.Context, hotelName string) (domain.HotelAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.es.Search(r.index).
		Query(elastic.NewMatchQuery("hotel_name", hotelName)).
		Size(3).
		TrackTotalHits(true).
		Aggregation("avg_rating", elastic.NewAvgAggregation().Field("rating")).
		Aggregation("rating_distribution", elastic.NewHistogramAggregation().Field("rating").Interval(1)).
		Aggregation("common_tags", elastic.NewTermsAggregation().Field("tags").Size(10)).
		Do(ctx)
	if err != nil {
		return domain.HotelAnalysis{}, storeErr("review analysis", err)
	}
	if res.TotalHits() == 0 {
		return domain.HotelAnalysis{}, fmt.Errorf("%w: %s", ErrHotelNotFound, hotelName)
	}

	analysis := domain.HotelAnalysis{
		HotelName:    hotelName,
		TotalReviews: res.TotalHits(),
	}
	if avg, ok := res.Aggregations.Avg("avg_rating"); ok && avg.Value != nil {
		analysis.AvgRating = *avg.Value
	}
	if hist, ok := res.Aggregations.Histogram("rating_distribution"); ok {
		for _, b := range hist.Buckets {
			analysis.RatingDistribution = append(analysis.RatingDistribution,
				domain.RatingBucket{Rating: b.Key, Count: b.DocCount})
		}
	}
	if terms, ok := res.Aggregations.Terms("common_tags"); ok {
		for _, b := range terms.Buckets {
			tag, ok := b.Key.(string)
			if !ok {
				continue
			}
			analysis.CommonTags = append(analysis.CommonTags,
				domain.TagCount{Tag: tag, Count: b.DocCount})
		}
	}
	for _, hit := range res.Hits.Hits {
		var src domain.ReviewDocument
		if err := json.Unmarshal(hit.Source, &src); err != nil {
			return domain.HotelAnalysis{}, fmt.Errorf("decode sample review %s: %w", hit.Id, err)
		}
		analysis.SampleReviews = append(analysis.SampleReviews, domain.SampleReview{
			Rating: src.Rating,
			Text:   domain.Snippet(src.ReviewText, 200),
		})
	}
	return analysis, nil
}

// Refresh makes newly written records immediately searchable.
func (r *Repo) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if _, err := r.es.Refresh(r.index).Do(ctx); err != nil {
		return storeErr("refresh", err)
	}
	return nil
}

// Count returns the number of indexed records.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	n, err := r.es.Count(r.index).Do(ctx)
	if err != nil {
		return 0, storeErr("count", err)
	}
	return n, nil
}

// Healthy reports whether the store answers cluster-health probes.
func (r *Repo) Healthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if _, err := r.es.ClusterHealth().Do(ctx); err != nil {
		return storeErr("health", err)
	}
	return nil
}

// filterQueries translates the domain filter into store filter clauses.
func filterQueries(f domain.SearchFilter) []elastic.Query {
	var qs []elastic.Query
	if f.Location != "" {
		qs = append(qs, elastic.NewMatchQuery("location", f.Location))
	}
	if f.MinRating > 0 {
		qs = append(qs, elastic.NewRangeQuery("rating").Gte(f.MinRating))
	}
	if len(f.Tags) > 0 {
		tags := make([]interface{}, len(f.Tags))
		for i, t := range f.Tags {
			tags[i] = t
		}
		qs = append(qs, elastic.NewTermsQuery("tags", tags...))
	}
	return qs
}

// parseHits converts store hits into candidates, assigning the raw score via
// setScore so lexical and vector branches share one decode path.
func parseHits(
	res *elastic.SearchResult, setScore func(*domain.ScoredCandidate, float64),
) ([]domain.ScoredCandidate, error) {
	if res.Hits == nil || len(res.Hits.Hits) == 0 {
		return nil, nil
	}

	out := make([]domain.ScoredCandidate, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var src domain.ReviewDocument
		if err := json.Unmarshal(hit.Source, &src); err != nil {
			return nil, fmt.Errorf("decode hit %s: %w", hit.Id, err)
		}
		c := domain.ScoredCandidate{
			DocID:      hit.Id,
			HotelName:  src.HotelName,
			Location:   src.Location,
			ReviewText: src.ReviewText,
			Rating:     src.Rating,
			Tags:       src.Tags,
		}
		if hit.Score != nil {
			setScore(&c, *hit.Score)
		}
		out = append(out, c)
	}
	return out, nil
}

// storeErr classifies transport-level failures as ErrStoreUnavailable so
// callers can apply their retry policy.
func storeErr(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUnavailable matches connection-level failures. With healthchecks off the
// client hands back the raw *url.Error/*net.OpError from the transport
// instead of ErrNoClient, so those are matched explicitly.
func isUnavailable(err error) bool {
	if elastic.IsConnErr(err) || elastic.IsTimeout(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout() || urlErr.Temporary()
	}
	return false
}
