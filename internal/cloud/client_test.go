package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSaveContext_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/contexts" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}

		var req SaveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Platform != "claude" {
			t.Errorf("platform = %q", req.Platform)
		}
		if len(req.Messages) != 2 {
			t.Errorf("messages = %d", len(req.Messages))
		}
		if !req.GenerateAISummary {
			t.Error("expected generate_ai_summary true")
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SaveResult{
			Success:      true,
			ContextID:    "550e8400-e29b-41d4-a716-446655440000",
			MessageCount: 2,
			AISummary:    "Greeting exchange",
			URL:          "/api/v1/contexts/550e8400-e29b-41d4-a716-446655440000",
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	res, err := c.SaveContext(context.Background(), SaveRequest{
		Platform: "claude",
		Messages: []Message{
			{Role: "user", Content: "Hello", Timestamp: time.Now()},
			{Role: "assistant", Content: "Hi", Timestamp: time.Now()},
		},
		Formatted:         "## Full Conversation\n\n**USER**: Hello",
		GenerateAISummary: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ContextID != "550e8400-e29b-41d4-a716-446655440000" {
		t.Errorf("context id = %q", res.ContextID)
	}
	if res.AISummary != "Greeting exchange" {
		t.Errorf("ai summary = %q", res.AISummary)
	}
}

func TestGetContext_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Context not found"})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.GetContext(context.Background(), "missing-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDo_ServerDetailPropagated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Maximum 500 messages per context"})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.SaveContext(context.Background(), SaveRequest{Platform: "chatgpt"})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Detail != "Maximum 500 messages per context" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestDo_GenericStatusMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream blew up"))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.ListContexts(context.Background(), "", 0, 0)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Detail != http.StatusText(http.StatusBadGateway) {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestListContexts_Query(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("platform") != "gemini" || q.Get("limit") != "5" || q.Get("offset") != "10" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(ListResult{Total: 12, Limit: 5, Offset: 10, HasMore: false})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	res, err := c.ListContexts(context.Background(), "gemini", 5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 12 {
		t.Errorf("total = %d", res.Total)
	}
}

func TestDeleteContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	if err := c.DeleteContext(context.Background(), "some-id"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
