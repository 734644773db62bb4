package domain

import "errors"

var (
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidWeights signals a negative or all-zero similarity weight pair.
	ErrInvalidWeights = errors.New("invalid similarity weights")
	// ErrInvalidQuery signals a query rejected at the normalization boundary.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmbeddingUnavailable signals a query-time embedding generation failure.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrVectorDimMismatch signals an embedding dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
)
