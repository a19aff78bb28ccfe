package chunker

import (
	"strings"

	"docchat/internal/domain"
)

// CharChunker splits text into windows of a fixed number of characters
// (runes), advancing by size-overlap characters per step. This is the unit
// used by the retrieval pipeline; the analysis pipeline uses words. The two
// units are separate implementations so a deployment cannot conflate them.
type CharChunker struct {
	size    int
	overlap int
}

func NewCharChunker(size, overlap int) (*CharChunker, error) {
	if err := validate(size, overlap); err != nil {
		return nil, err
	}
	return &CharChunker{size: size, overlap: overlap}, nil
}

func (c *CharChunker) Chunk(text string) ([]domain.Chunk, error) {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	stride := c.size - c.overlap
	var chunks []domain.Chunk
	for start := 0; start < len(runes); start += stride {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		t := string(runes[start:end])
		chunks = append(chunks, domain.Chunk{
			ID:        len(chunks),
			Text:      t,
			WordCount: len(strings.Fields(t)),
			CharCount: end - start,
		})
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}
