package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/contextbridge/bridge/internal/llm"
)

// summarize generates a model summary for the provided messages without
// storing anything.
func (s *Server) summarize(w http.ResponseWriter, r *http.Request) {
	if s.summarizer == nil || !s.summarizer.Available() {
		respondError(w, http.StatusServiceUnavailable,
			"Anthropic API is not configured. Please set ANTHROPIC_API_KEY environment variable.")
		return
	}

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if len(req.Messages) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "at least one message is required")
		return
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultSummaryTokens
	}
	if maxTokens < minSummaryTokens || maxTokens > maxSummaryTokens {
		respondError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("max_tokens must be between %d and %d", minSummaryTokens, maxSummaryTokens))
		return
	}

	turns := make([]llm.Turn, len(req.Messages))
	for i, m := range req.Messages {
		turns[i] = llm.Turn{Role: m.Role, Content: m.Content}
	}

	sum, err := s.summarizer.SummarizeConversation(r.Context(), turns, maxTokens)
	if err != nil {
		slog.Error("failed to generate summary", "error", err)
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "quota") || strings.Contains(msg, "payment") || strings.Contains(msg, "billing") {
			respondError(w, http.StatusPaymentRequired, "API quota exceeded or payment required")
			return
		}
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to generate summary: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, SummarizeResponse{
		Summary:    sum.Text,
		TokensUsed: sum.TokensUsed,
		Model:      sum.Model,
	})
}
