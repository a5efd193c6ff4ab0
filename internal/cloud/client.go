// Package cloud is the HTTP client for the context store service. One
// attempt per call, no automatic retries; failures carry the server's detail
// text when it supplies one.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotFound is returned when the requested context does not exist.
var ErrNotFound = errors.New("context not found")

// APIError is a non-2xx response from the store service.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Message is one conversation turn on the wire.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// SaveRequest is the payload for storing a context.
type SaveRequest struct {
	Platform          string            `json:"platform"`
	Messages          []Message         `json:"messages"`
	Formatted         string            `json:"formatted"`
	Summary           string            `json:"summary,omitempty"`
	GenerateAISummary bool              `json:"generate_ai_summary"`
	SourceMetadata    map[string]string `json:"source_metadata,omitempty"`
}

type SaveResult struct {
	Success      bool      `json:"success"`
	ContextID    string    `json:"context_id"`
	MessageCount int       `json:"message_count"`
	AISummary    string    `json:"ai_summary"`
	CreatedAt    time.Time `json:"created_at"`
	URL          string    `json:"url"`
}

type StoredMessage struct {
	ID            string    `json:"id"`
	Role          string    `json:"role"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
	SequenceOrder int       `json:"sequence_order"`
}

type StoredContext struct {
	ID           string          `json:"id"`
	Platform     string          `json:"platform"`
	MessageCount int             `json:"message_count"`
	Messages     []StoredMessage `json:"messages"`
	Formatted    string          `json:"formatted"`
	Summary      string          `json:"summary"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ListItem struct {
	ID           string    `json:"id"`
	Platform     string    `json:"platform"`
	MessageCount int       `json:"message_count"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListResult struct {
	Contexts []ListItem `json:"contexts"`
	Total    int        `json:"total"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
	HasMore  bool       `json:"has_more"`
}

type SummarizeResult struct {
	Summary    string `json:"summary"`
	TokensUsed int    `json:"tokens_used"`
	Model      string `json:"model"`
}

// SaveContext stores a formatted context and its messages.
func (c *Client) SaveContext(ctx context.Context, req SaveRequest) (SaveResult, error) {
	var res SaveResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/contexts", req, &res); err != nil {
		return SaveResult{}, err
	}
	return res, nil
}

// GetContext retrieves a stored context by id.
func (c *Client) GetContext(ctx context.Context, id string) (StoredContext, error) {
	var res StoredContext
	if err := c.do(ctx, http.MethodGet, "/api/v1/contexts/"+url.PathEscape(id), nil, &res); err != nil {
		return StoredContext{}, err
	}
	return res, nil
}

// ListContexts pages through stored contexts, optionally filtered by platform.
func (c *Client) ListContexts(ctx context.Context, platform string, limit, offset int) (ListResult, error) {
	q := url.Values{}
	if platform != "" {
		q.Set("platform", platform)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := "/api/v1/contexts"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var res ListResult
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return ListResult{}, err
	}
	return res, nil
}

// DeleteContext removes a stored context.
func (c *Client) DeleteContext(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/contexts/"+url.PathEscape(id), nil, nil)
}

// Summarize requests a model-generated summary without storing anything.
func (c *Client) Summarize(ctx context.Context, msgs []Message, maxTokens int) (SummarizeResult, error) {
	payload := struct {
		Messages  []Message `json:"messages"`
		MaxTokens int       `json:"max_tokens,omitempty"`
	}{Messages: msgs, MaxTokens: maxTokens}

	var res SummarizeResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/summarize", payload, &res); err != nil {
		return SummarizeResult{}, err
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("store call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &detail) == nil && detail.Detail != "" {
			return &APIError{Status: resp.StatusCode, Detail: detail.Detail}
		}
		return &APIError{Status: resp.StatusCode, Detail: http.StatusText(resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
