package sdk

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped from HTTP statuses. Use errors.Is() to check.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUpstreamFailure  = errors.New("upstream failure")
)

// APIError carries the server's error message alongside the sentinel.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hotelsearch: %s (status %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() error { return e.kind }

func apiError(status int, message string) error {
	var kind error
	switch status {
	case 400:
		kind = ErrBadRequest
	case 404:
		kind = ErrNotFound
	case 503:
		kind = ErrStoreUnavailable
	case 502:
		kind = ErrUpstreamFailure
	}
	return &APIError{Status: status, Message: message, kind: kind}
}
