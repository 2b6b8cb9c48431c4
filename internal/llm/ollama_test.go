package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaProvider_Reason_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var apiReq ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&apiReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if apiReq.Stream {
			t.Error("streaming must be disabled")
		}
		if apiReq.Model != "llama3.2" {
			t.Errorf("Expected default model llama3.2, got %s", apiReq.Model)
		}

		resp := ollamaResponse{
			Model:           "llama3.2",
			Response:        "The supporting sources state one figure; the contradicting sources state another.",
			Done:            true,
			PromptEvalCount: 40,
			EvalCount:       30,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Reason(context.Background(), ReasonRequest{
		Partition:  partitionFixture(),
		SourceURLs: []string{"https://example.com/1"},
	})
	if err != nil {
		t.Fatalf("Reason failed: %v", err)
	}

	if !strings.Contains(resp.Text, "supporting sources") {
		t.Errorf("Unexpected text: %s", resp.Text)
	}
	if resp.TokensUsed != 70 {
		t.Errorf("Unexpected token usage: %d", resp.TokensUsed)
	}
}

func TestOllamaProvider_Reason_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(ollamaError{Error: "model not found"})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Reason(context.Background(), ReasonRequest{Partition: partitionFixture()})
	if err == nil {
		t.Fatal("expected API error")
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error should carry the API message: %v", err)
	}
}

func TestOllamaProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("Expected path /api/tags, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	if !provider.IsAvailable(context.Background()) {
		t.Error("expected provider to be available")
	}

	server.Close()
	if provider.IsAvailable(context.Background()) {
		t.Error("expected provider to be unavailable after server shutdown")
	}
}
