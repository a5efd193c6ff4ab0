package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/contextbridge/bridge/internal/events"
	"github.com/contextbridge/bridge/internal/llm"
	"github.com/contextbridge/bridge/internal/platform"
	"github.com/contextbridge/bridge/internal/store"
)

func (s *Server) createContext(w http.ResponseWriter, r *http.Request) {
	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	var req ContextCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
			return
		}
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	summary := req.Summary
	var aiMeta map[string]any
	if req.GenerateAISummary {
		sum, err := s.aiSummary(r.Context(), req.Messages)
		if err != nil {
			// Fall back to the client summary; never fail the save over a
			// summarization error or a missing API key.
			slog.Error("ai summary failed, using client summary", "error", err)
			if summary == "" {
				summary = fmt.Sprintf("Conversation with %d messages", len(req.Messages))
			}
		} else {
			summary = sum.Text
			aiMeta = map[string]any{
				"tokens_used":  sum.TokensUsed,
				"model":        sum.Model,
				"generated_at": time.Now().UTC().Format(time.RFC3339),
			}
		}
	}

	srcMeta := make(map[string]any, len(req.SourceMetadata))
	for k, v := range req.SourceMetadata {
		srcMeta[k] = v
	}

	msgs := make([]store.NewMessage, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = store.NewMessage{Role: m.Role, Content: m.Content, Timestamp: m.Timestamp}
	}

	rec, err := s.db.CreateContext(r.Context(), store.NewContext{
		Platform:       req.Platform,
		Messages:       msgs,
		Formatted:      req.Formatted,
		Summary:        summary,
		AISummaryMeta:  aiMeta,
		SourceMetadata: srcMeta,
		Retention:      s.cfg.Retention,
	})
	if err != nil {
		slog.Error("failed to create context", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create context")
		return
	}

	slog.Info("context created", "context_id", rec.ID, "platform", rec.Platform, "messages", rec.MessageCount)
	s.publish(events.SubjectContextStored, events.StoredEvent{
		ContextID:    rec.ID.String(),
		Platform:     rec.Platform,
		MessageCount: rec.MessageCount,
		Timestamp:    events.Now(),
	})

	respondJSON(w, http.StatusCreated, ContextCreateResponse{
		Success:      true,
		ContextID:    rec.ID.String(),
		MessageCount: rec.MessageCount,
		AISummary:    rec.Summary,
		CreatedAt:    rec.CreatedAt,
		URL:          "/api/v1/contexts/" + rec.ID.String(),
	})
}

// aiSummary generates a model summary for the incoming turns. An
// unconfigured summarizer is an error here so the caller's fallback chain
// runs for it the same as for a model failure.
func (s *Server) aiSummary(ctx context.Context, msgs []MessageIn) (llm.Summary, error) {
	if s.summarizer == nil || !s.summarizer.Available() {
		return llm.Summary{}, fmt.Errorf("anthropic api key not configured")
	}
	turns := make([]llm.Turn, len(msgs))
	for i, m := range msgs {
		turns[i] = llm.Turn{Role: m.Role, Content: m.Content}
	}
	return s.summarizer.SummarizeConversation(ctx, turns, s.cfg.SummaryMaxTokens)
}

func (s *Server) getContext(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Context not found")
		return
	}

	rec, err := s.db.GetContext(r.Context(), id)
	if err != nil {
		slog.Error("failed to get context", "context_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to retrieve context")
		return
	}
	if rec == nil {
		respondError(w, http.StatusNotFound, "Context not found")
		return
	}

	msgs := make([]MessageOut, len(rec.Messages))
	for i, m := range rec.Messages {
		msgs[i] = MessageOut{
			ID:            m.ID.String(),
			Role:          m.Role,
			Content:       m.Content,
			Timestamp:     m.Timestamp,
			SequenceOrder: m.SequenceOrder,
		}
	}

	respondJSON(w, http.StatusOK, ContextResponse{
		ID:           rec.ID.String(),
		Platform:     rec.Platform,
		MessageCount: rec.MessageCount,
		Messages:     msgs,
		Formatted:    rec.Formatted,
		Summary:      rec.Summary,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	})
}

func (s *Server) listContexts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	platformFilter := q.Get("platform")
	if platformFilter != "" && !platform.Known(platform.Platform(platformFilter)) {
		respondError(w, http.StatusUnprocessableEntity, "platform must be one of chatgpt, claude, gemini, poe")
		return
	}

	limit := defaultListLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("limit must be between 1 and %d", maxListLimit))
			return
		}
		limit = n
	}

	offset := 0
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusUnprocessableEntity, "offset must be non-negative")
			return
		}
		offset = n
	}

	items, total, err := s.db.ListContexts(r.Context(), platformFilter, limit, offset)
	if err != nil {
		slog.Error("failed to list contexts", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list contexts")
		return
	}

	out := make([]ContextListItem, len(items))
	for i, it := range items {
		out[i] = ContextListItem{
			ID:           it.ID.String(),
			Platform:     it.Platform,
			MessageCount: it.MessageCount,
			Summary:      it.Summary,
			CreatedAt:    it.CreatedAt,
		}
	}

	respondJSON(w, http.StatusOK, ContextListResponse{
		Contexts: out,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
		HasMore:  offset+limit < total,
	})
}

func (s *Server) deleteContext(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Context not found")
		return
	}

	deleted, err := s.db.DeleteContext(r.Context(), id)
	if err != nil {
		slog.Error("failed to delete context", "context_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete context")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Context not found")
		return
	}

	slog.Info("context deleted", "context_id", id)
	s.publish(events.SubjectContextDeleted, events.DeletedEvent{
		ContextID: id.String(),
		Timestamp: events.Now(),
	})

	w.WriteHeader(http.StatusNoContent)
}

// publish sends a lifecycle event when a publisher is configured. Event
// failures are logged, never surfaced to the API caller.
func (s *Server) publish(subject string, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, data); err != nil {
		slog.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
