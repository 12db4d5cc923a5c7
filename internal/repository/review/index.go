package review

import (
	"context"

	"go.uber.org/zap"
)

// CreateIndex creates the review index with its mapping and synonym-filtered
// analyzer. groups is the taxonomy from the synonyms package, supplied once at
// index-creation time. With force the existing index is deleted first.
func (r *Repo) CreateIndex(ctx context.Context, groups []string, force bool) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	exists, err := r.es.IndexExists(r.index).Do(ctx)
	if err != nil {
		return storeErr("index exists", err)
	}
	if exists {
		if !force {
			r.logger.Info("index already exists", zap.String("index", r.index))
			return nil
		}
		r.logger.Warn("deleting existing index", zap.String("index", r.index))
		if _, err := r.es.DeleteIndex(r.index).Do(ctx); err != nil {
			return storeErr("delete index", err)
		}
	}

	if _, err := r.es.CreateIndex(r.index).BodyJson(r.indexBody(groups)).Do(ctx); err != nil {
		return storeErr("create index", err)
	}
	r.logger.Info("index created",
		zap.String("index", r.index),
		zap.Int("vector_dims", r.dims),
		zap.Int("synonym_groups", len(groups)),
	)
	return nil
}

func (r *Repo) indexBody(groups []string) map[string]interface{} {
	return map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"doc_id": map[string]interface{}{"type": "keyword"},
				"hotel_name": map[string]interface{}{
					"type": "text",
					"fields": map[string]interface{}{
						"keyword": map[string]interface{}{"type": "keyword"},
					},
				},
				"location": map[string]interface{}{
					"type": "text",
					"fields": map[string]interface{}{
						"keyword": map[string]interface{}{"type": "keyword"},
					},
				},
				"review_text": map[string]interface{}{
					"type":     "text",
					"analyzer": "review_analyzer",
				},
				"review_title":      map[string]interface{}{"type": "text"},
				"reviewer_location": map[string]interface{}{"type": "keyword"},
				"rating":            map[string]interface{}{"type": "float"},
				"tags":              map[string]interface{}{"type": "keyword"},
				"review_vector": map[string]interface{}{
					"type":       "dense_vector",
					"dims":       r.dims,
					"index":      true,
					"similarity": "cosine",
				},
				"embedding_mode": map[string]interface{}{"type": "keyword"},
				"indexed_at":     map[string]interface{}{"type": "date"},
			},
		},
		"settings": map[string]interface{}{
			"number_of_shards":   2,
			"number_of_replicas": 1,
			"analysis": map[string]interface{}{
				"analyzer": map[string]interface{}{
					"review_analyzer": map[string]interface{}{
						"type":      "custom",
						"tokenizer": "standard",
						"filter":    []string{"lowercase", "stop", "synonym_filter", "stemmer"},
					},
				},
				"filter": map[string]interface{}{
					"synonym_filter": map[string]interface{}{
						"type":     "synonym",
						"synonyms": groups,
					},
				},
			},
		},
	}
}
