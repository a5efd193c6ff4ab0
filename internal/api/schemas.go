package api

import (
	"fmt"
	"time"

	"github.com/contextbridge/bridge/internal/platform"
)

const (
	maxMessagesPerContext = 500
	maxMessageContent     = 100000
	minSummaryTokens      = 50
	maxSummaryTokens      = 500
	defaultSummaryTokens  = 150
	defaultListLimit      = 20
	maxListLimit          = 100
)

// MessageIn is one conversation turn in a create or summarize request.
type MessageIn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ContextCreateRequest is the POST /contexts payload.
type ContextCreateRequest struct {
	Platform          string            `json:"platform"`
	Messages          []MessageIn       `json:"messages"`
	Formatted         string            `json:"formatted"`
	Summary           string            `json:"summary"`
	GenerateAISummary bool              `json:"generate_ai_summary"`
	SourceMetadata    map[string]string `json:"source_metadata"`
}

// Validate mirrors the constraints the clients rely on: a known platform,
// 1..500 non-empty messages with sane roles, and a non-empty formatted blob.
func (r *ContextCreateRequest) Validate() error {
	if !platform.Known(platform.Platform(r.Platform)) {
		return fmt.Errorf("platform must be one of chatgpt, claude, gemini, poe")
	}
	if len(r.Messages) == 0 {
		return fmt.Errorf("at least one message is required")
	}
	if len(r.Messages) > maxMessagesPerContext {
		return fmt.Errorf("maximum %d messages per context", maxMessagesPerContext)
	}
	for i, m := range r.Messages {
		if m.Role != "user" && m.Role != "assistant" {
			return fmt.Errorf("message %d: role must be user or assistant", i)
		}
		if m.Content == "" {
			return fmt.Errorf("message %d: content must not be empty", i)
		}
		if len(m.Content) > maxMessageContent {
			return fmt.Errorf("message %d: content exceeds %d characters", i, maxMessageContent)
		}
	}
	if r.Formatted == "" {
		return fmt.Errorf("formatted must not be empty")
	}
	return nil
}

// ContextCreateResponse is the 201 body for POST /contexts.
type ContextCreateResponse struct {
	Success      bool      `json:"success"`
	ContextID    string    `json:"context_id"`
	MessageCount int       `json:"message_count"`
	AISummary    string    `json:"ai_summary,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	URL          string    `json:"url"`
}

// MessageOut is one stored turn in a context response.
type MessageOut struct {
	ID            string    `json:"id"`
	Role          string    `json:"role"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
	SequenceOrder int       `json:"sequence_order"`
}

// ContextResponse is the GET /contexts/{id} body.
type ContextResponse struct {
	ID           string       `json:"id"`
	Platform     string       `json:"platform"`
	MessageCount int          `json:"message_count"`
	Messages     []MessageOut `json:"messages"`
	Formatted    string       `json:"formatted"`
	Summary      string       `json:"summary"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ContextListItem is one row in the list response.
type ContextListItem struct {
	ID           string    `json:"id"`
	Platform     string    `json:"platform"`
	MessageCount int       `json:"message_count"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"created_at"`
}

// ContextListResponse is the GET /contexts body.
type ContextListResponse struct {
	Contexts []ContextListItem `json:"contexts"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	HasMore  bool              `json:"has_more"`
}

// SummarizeRequest is the POST /summarize payload.
type SummarizeRequest struct {
	Messages  []MessageIn `json:"messages"`
	MaxTokens int         `json:"max_tokens"`
}

// SummarizeResponse is the POST /summarize body.
type SummarizeResponse struct {
	Summary    string `json:"summary"`
	TokensUsed int    `json:"tokens_used"`
	Model      string `json:"model"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Anthropic string    `json:"anthropic"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
}
