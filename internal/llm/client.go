// Package llm generates model-backed conversation summaries via the
// Anthropic messages API. The service runs fine without it; callers fall
// back to client-supplied or heuristic summaries when no key is configured.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.anthropic.com"

const systemPrompt = "You are a helpful assistant that creates concise summaries of AI conversations."

type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint; tests point this at a local server.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Available reports whether an API key is configured.
func (c *Client) Available() bool {
	return c != nil && c.apiKey != ""
}

// Turn is one conversation turn handed to the summarizer.
type Turn struct {
	Role    string
	Content string
}

// Summary is a model-generated conversation digest.
type Summary struct {
	Text       string
	TokensUsed int
	Model      string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type response struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// SummarizeConversation asks the model for a 2-3 sentence digest of the
// conversation: main topics, key questions, conclusions.
func (c *Client) SummarizeConversation(ctx context.Context, turns []Turn, maxTokens int) (Summary, error) {
	if !c.Available() {
		return Summary{}, fmt.Errorf("anthropic api key not configured")
	}

	var transcript strings.Builder
	for i, t := range turns {
		if i > 0 {
			transcript.WriteString("\n\n")
		}
		fmt.Fprintf(&transcript, "%s: %s", strings.ToUpper(t.Role), t.Content)
	}

	prompt := fmt.Sprintf(`Summarize the following conversation concisely. Focus on:
1. Main topics discussed
2. Key questions asked
3. Important conclusions or decisions
4. Overall context and purpose

Conversation:
%s

Provide a summary in 2-3 sentences that captures the essence of this conversation.`, transcript.String())

	reqBody := request{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return Summary{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return Summary{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return Summary{}, fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Summary{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return Summary{}, fmt.Errorf("api error %d: %s — %s", resp.StatusCode, errResp.Error.Type, errResp.Error.Message)
		}
		return Summary{}, fmt.Errorf("api error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return Summary{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(apiResp.Content) == 0 {
		return Summary{}, fmt.Errorf("empty response content")
	}

	return Summary{
		Text:       apiResp.Content[0].Text,
		TokensUsed: apiResp.Usage.InputTokens + apiResp.Usage.OutputTokens,
		Model:      apiResp.Model,
	}, nil
}
