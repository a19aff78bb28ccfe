package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"docchat/internal/domain"
)

func TestEmbedderEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float32{0.1, 0.2, 0.3},
		})
	}))
	defer server.Close()

	e := NewEmbedder(server.URL, "test-model", "", 0)
	vec, err := e.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("expected 3 dims, got %d", len(vec))
	}
}

func TestEmbedderFallback(t *testing.T) {
	var models []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)
		if req.Model == "primary" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float32{1, 2},
		})
	}))
	defer server.Close()

	e := NewEmbedder(server.URL, "primary", "backup", 0)
	vec, err := e.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	if len(vec) != 2 {
		t.Errorf("expected 2 dims, got %d", len(vec))
	}
	if len(models) != 2 || models[0] != "primary" || models[1] != "backup" {
		t.Errorf("expected primary then backup, got %v", models)
	}
}

func TestEmbedderBothModelsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	e := NewEmbedder(server.URL, "primary", "backup", 0)
	_, err := e.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestEmbedderNoFallbackConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	e := NewEmbedder(server.URL, "primary", "", 0)
	_, err := e.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestEmbedderEmbedAll(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float32{float32(calls)},
		})
	}))
	defer server.Close()

	var progress []int
	e := NewEmbedder(server.URL, "test", "", 0)
	vectors, err := e.EmbedAll(context.Background(), []string{"a", "b", "c"}, func(done, total int) {
		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}
		progress = append(progress, done)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vectors))
	}
	if len(progress) != 3 || progress[2] != 3 {
		t.Errorf("unexpected progress callbacks: %v", progress)
	}
}
