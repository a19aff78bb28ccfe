package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"docchat/internal/domain"
)

// WordChunker splits text into windows of a fixed number of
// whitespace-delimited words, advancing by size-overlap words per step.
type WordChunker struct {
	size    int
	overlap int
}

func NewWordChunker(size, overlap int) (*WordChunker, error) {
	if err := validate(size, overlap); err != nil {
		return nil, err
	}
	return &WordChunker{size: size, overlap: overlap}, nil
}

func (c *WordChunker) Chunk(text string) ([]domain.Chunk, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	stride := c.size - c.overlap
	var chunks []domain.Chunk
	for start := 0; start < len(words); start += stride {
		end := start + c.size
		if end > len(words) {
			end = len(words)
		}
		t := strings.Join(words[start:end], " ")
		chunks = append(chunks, domain.Chunk{
			ID:        len(chunks),
			Text:      t,
			WordCount: end - start,
			CharCount: utf8.RuneCountInString(t),
		})
		if end == len(words) {
			break
		}
	}
	return chunks, nil
}

func validate(size, overlap int) error {
	if size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, size)
	}
	if overlap < 0 || overlap >= size {
		return fmt.Errorf("%w: overlap must satisfy 0 <= overlap < size, got %d", domain.ErrInvalidConfig, overlap)
	}
	return nil
}
