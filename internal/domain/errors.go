package domain

import "errors"

var (
	// ErrStoreUnavailable signals a connection or timeout failure against the
	// document store. Callers decide retry policy; the engine never retries silently.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrEmbeddingFailure signals a failed embedding model call.
	ErrEmbeddingFailure = errors.New("embedding failure")
	// ErrMalformedDocument signals a document missing required fields.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrVectorDimMismatch signals a vector whose dimension does not match the index.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmptyQuery signals a search request with no query text.
	ErrEmptyQuery = errors.New("empty query")
)
