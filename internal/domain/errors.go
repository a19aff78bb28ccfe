package domain

import "errors"

var (
	// ErrUnsupportedFileType is returned for uploads with an extension the
	// active chat mode does not accept.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrParseFailure is returned when text extraction fails. Extraction
	// fails closed: no partial text is ever returned alongside it.
	ErrParseFailure = errors.New("failed to parse document")

	// ErrInvalidConfig is returned for invalid chunking or retrieval
	// parameters.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmbeddingUnavailable is returned when both the primary and the
	// fallback embedding models fail.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrModelUnavailable is returned when the language model backend cannot
	// be reached or answers with a non-OK status.
	ErrModelUnavailable = errors.New("language model unavailable")

	// ErrIndexNotFound is returned when adding to a collection that was
	// never created.
	ErrIndexNotFound = errors.New("collection not found")
)
