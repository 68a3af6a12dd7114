package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrParseDocument means the uploaded file cannot be parsed as a
	// PDF. Fatal to indexing; no partial index is kept.
	ErrParseDocument = errors.New("document cannot be parsed as a PDF")

	// ErrEmbeddingUnavailable means no credential is configured or the
	// provider failed while building vectors. Never surfaced to the
	// user: it is the signal to fall back to lexical indexing.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

	// ErrNoRelevantContent means retrieval or page-direct lookup
	// yielded no usable text. Recovered locally, no completion call is
	// made.
	ErrNoRelevantContent = errors.New("no relevant content found")

	// ErrCompletion wraps failures of the completion service.
	ErrCompletion = errors.New("completion service failure")
)

// PageOutOfRangeError means a resolved page request falls outside
// [0, Total). Page is 0-based; Total is the document page count.
type PageOutOfRangeError struct {
	Page  int
	Total int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page %d does not exist: document has %d pages", e.Page+1, e.Total)
}
