package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"docchat/internal/domain"
)

const DefaultEmbedModel = "nomic-embed-text"

// Embedder calls the Ollama embeddings API. Every call re-embeds; there is no
// caching. On failure of the primary model it retries once with the fallback
// model before giving up.
type Embedder struct {
	baseURL  string
	model    string
	fallback string
	client   *http.Client
}

func NewEmbedder(baseURL, model, fallback string, timeout time.Duration) *Embedder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultEmbedModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Embedder{
		baseURL:  baseURL,
		model:    model,
		fallback: fallback,
		client:   &http.Client{Timeout: timeout},
	}
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, primaryErr := e.embedWith(ctx, e.model, text)
	if primaryErr == nil {
		return vec, nil
	}

	if e.fallback != "" && e.fallback != e.model {
		vec, fallbackErr := e.embedWith(ctx, e.fallback, text)
		if fallbackErr == nil {
			return vec, nil
		}
		return nil, fmt.Errorf("%w: %s: %v; fallback %s: %v",
			domain.ErrEmbeddingUnavailable, e.model, primaryErr, e.fallback, fallbackErr)
	}

	return nil, fmt.Errorf("%w: %s: %v", domain.ErrEmbeddingUnavailable, e.model, primaryErr)
}

// EmbedAll embeds texts one at a time, in order. Blocking and sequential:
// the session processes one action to completion at a time.
func (e *Embedder) EmbedAll(ctx context.Context, texts []string, onProgress func(done, total int)) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		vectors[i] = vec
		if onProgress != nil {
			onProgress(i+1, len(texts))
		}
	}
	return vectors, nil
}

func (e *Embedder) embedWith(ctx context.Context, model, text string) ([]float32, error) {
	reqBody := embedRequest{
		Model:  model,
		Prompt: text,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embeddings", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var embResp embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(embResp.Embedding) == 0 {
		return nil, fmt.Errorf("server returned empty embedding")
	}
	return embResp.Embedding, nil
}
