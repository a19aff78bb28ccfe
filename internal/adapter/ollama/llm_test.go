package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docchat/internal/domain"
)

func TestLLMGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Stream {
			t.Error("stream must be false")
		}
		if req.Model != "test-model" {
			t.Errorf("unexpected model: %s", req.Model)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"response": "Hello there!",
			"done":     true,
		})
	}))
	defer server.Close()

	llm := NewLLM(server.URL, "test-model", 0)
	resp, err := llm.Generate(context.Background(), "Hi")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if resp != "Hello there!" {
		t.Errorf("unexpected response: %s", resp)
	}
}

func TestLLMGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`model "missing" not found`))
	}))
	defer server.Close()

	llm := NewLLM(server.URL, "missing", 0)
	_, err := llm.Generate(context.Background(), "test")
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	// Status and body are surfaced verbatim.
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "not found") {
		t.Errorf("error should carry status and body: %v", err)
	}
}

func TestLLMGenerateConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	llm := NewLLM(server.URL, "test", 0)
	_, err := llm.Generate(context.Background(), "test")
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestLLMDefaults(t *testing.T) {
	llm := NewLLM("", "", 0)
	if llm.baseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %s", llm.baseURL)
	}
	if llm.ModelName() != DefaultModel {
		t.Errorf("expected default model, got %s", llm.ModelName())
	}
}

func TestLLMListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"llama3.2"},{"name":"nomic-embed-text"}]}`))
	}))
	defer server.Close()

	llm := NewLLM(server.URL, "test", 0)
	models, err := llm.ListModels(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 2 || models[0] != "llama3.2" {
		t.Errorf("unexpected models: %v", models)
	}
}
