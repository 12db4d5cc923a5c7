package domain

import (
	"fmt"
	"time"
)

// ReviewDocument is one user review tied to a venue. It is owned by the
// ingestion pipeline until written to the store; after that the store owns it
// and it is superseded only by a full reindex.
type ReviewDocument struct {
	DocID            string   `json:"doc_id"`
	HotelName        string   `json:"hotel_name"`
	Location         string   `json:"location"`
	ReviewText       string   `json:"review_text"`
	Rating           float64  `json:"rating"`
	ReviewTitle      string   `json:"review_title,omitempty"`
	ReviewerLocation string   `json:"reviewer_location,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

// Validate checks the required fields. Errors wrap ErrMalformedDocument so the
// ingestion pipeline can skip the record and continue the batch.
func (d *ReviewDocument) Validate() error {
	switch {
	case d.DocID == "":
		return fmt.Errorf("%w: missing doc_id", ErrMalformedDocument)
	case d.HotelName == "":
		return fmt.Errorf("%w: doc %s missing hotel_name", ErrMalformedDocument, d.DocID)
	case d.ReviewText == "":
		return fmt.Errorf("%w: doc %s missing review_text", ErrMalformedDocument, d.DocID)
	case d.Rating < 0 || d.Rating > 5:
		return fmt.Errorf("%w: doc %s rating %.2f outside [0,5]", ErrMalformedDocument, d.DocID, d.Rating)
	}
	return nil
}

// RecordError reports one document rejected during a bulk write.
type RecordError struct {
	DocID string
	Err   error
}

// IndexedRecord is the persisted form of a review: the document plus its
// embedding vector and indexing metadata.
type IndexedRecord struct {
	ReviewDocument
	ReviewVector  []float32     `json:"review_vector"`
	EmbeddingMode EmbeddingMode `json:"embedding_mode"`
	IndexedAt     time.Time     `json:"indexed_at"`
}
