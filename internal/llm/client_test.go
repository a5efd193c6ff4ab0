package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSummarizeConversation_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("expected x-api-key test-key, got %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != "2023-06-01" {
			t.Errorf("anthropic-version = %q", r.Header.Get("anthropic-version"))
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q", req.Model)
		}
		if req.MaxTokens != 150 {
			t.Errorf("max_tokens = %d", req.MaxTokens)
		}
		if len(req.Messages) != 1 {
			t.Fatalf("messages = %d", len(req.Messages))
		}
		if !strings.Contains(req.Messages[0].Content, "USER: Explain quantum computing") {
			t.Errorf("prompt missing transcript:\n%s", req.Messages[0].Content)
		}
		if !strings.Contains(req.Messages[0].Content, "ASSISTANT: Quantum computing uses qubits") {
			t.Errorf("prompt missing assistant turn:\n%s", req.Messages[0].Content)
		}

		resp := response{Model: "test-model"}
		resp.Content = append(resp.Content, struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{Type: "text", Text: "User asked about quantum computing."})
		resp.Usage.InputTokens = 200
		resp.Usage.OutputTokens = 34
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model")
	c.SetBaseURL(server.URL)

	sum, err := c.SummarizeConversation(context.Background(), []Turn{
		{Role: "user", Content: "Explain quantum computing"},
		{Role: "assistant", Content: "Quantum computing uses qubits"},
	}, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Text != "User asked about quantum computing." {
		t.Errorf("summary = %q", sum.Text)
	}
	if sum.TokensUsed != 234 {
		t.Errorf("tokens used = %d, want 234", sum.TokensUsed)
	}
	if sum.Model != "test-model" {
		t.Errorf("model = %q", sum.Model)
	}
}

func TestSummarizeConversation_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "invalid_request_error",
				"message": "max_tokens is too large",
			},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model")
	c.SetBaseURL(server.URL)

	_, err := c.SummarizeConversation(context.Background(), []Turn{{Role: "user", Content: "hi"}}, 150)
	if err == nil {
		t.Fatal("expected error for API error response")
	}
	if !strings.Contains(err.Error(), "max_tokens is too large") {
		t.Errorf("error should carry the API detail: %v", err)
	}
}

func TestSummarizeConversation_NotConfigured(t *testing.T) {
	c := NewClient("", "test-model")
	if c.Available() {
		t.Error("Available() = true without a key")
	}
	if _, err := c.SummarizeConversation(context.Background(), nil, 150); err == nil {
		t.Fatal("expected error without an API key")
	}
}

func TestSummarizeConversation_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(response{})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model")
	c.SetBaseURL(server.URL)

	if _, err := c.SummarizeConversation(context.Background(), []Turn{{Role: "user", Content: "hi"}}, 150); err == nil {
		t.Fatal("expected error for empty content response")
	}
}
