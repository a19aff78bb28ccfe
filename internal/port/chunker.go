package port

import "docchat/internal/domain"

// Chunker splits plain text into overlapping fixed-size segments.
// Chunking is deterministic: the same text always yields the same chunks.
type Chunker interface {
	Chunk(text string) ([]domain.Chunk, error)
}
