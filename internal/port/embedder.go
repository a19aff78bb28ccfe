package port

import "context"

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedAll embeds each text in order. onProgress, if non-nil, is called
	// after each text with the number embedded so far and the total.
	EmbedAll(ctx context.Context, texts []string, onProgress func(done, total int)) ([][]float32, error)
}
