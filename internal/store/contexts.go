package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// NewMessage is one turn to persist.
type NewMessage struct {
	Role      string
	Content   string
	Timestamp time.Time
}

// NewContext is the input for CreateContext.
type NewContext struct {
	Platform       string
	Messages       []NewMessage
	Formatted      string
	Summary        string
	AISummaryMeta  map[string]any
	SourceMetadata map[string]any
	Retention      time.Duration
}

// MessageRecord is a persisted turn.
type MessageRecord struct {
	ID            uuid.UUID
	Role          string
	Content       string
	Timestamp     time.Time
	SequenceOrder int
}

// ContextRecord is a persisted context with its messages.
type ContextRecord struct {
	ID           uuid.UUID
	Platform     string
	MessageCount int
	Formatted    string
	Summary      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ExpiresAt    time.Time
	Messages     []MessageRecord
}

// ListItem is the lightweight shape returned by ListContexts.
type ListItem struct {
	ID           uuid.UUID
	Platform     string
	MessageCount int
	Summary      string
	CreatedAt    time.Time
}

// CreateContext writes a context and its messages in one transaction.
// Sequence order follows the input message order.
func (s *Store) CreateContext(ctx context.Context, nc NewContext) (ContextRecord, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ContextRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	aiMeta, err := marshalMeta(nc.AISummaryMeta)
	if err != nil {
		return ContextRecord{}, fmt.Errorf("marshal ai summary metadata: %w", err)
	}
	srcMeta, err := marshalMeta(nc.SourceMetadata)
	if err != nil {
		return ContextRecord{}, fmt.Errorf("marshal source metadata: %w", err)
	}

	contextID := uuid.New()
	expiresAt := time.Now().UTC().Add(nc.Retention)

	var createdAt, updatedAt time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO contexts (id, platform, message_count, formatted_text, summary, ai_summary_metadata, source_metadata, expires_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		RETURNING created_at, updated_at`,
		contextID, nc.Platform, len(nc.Messages), nc.Formatted, nc.Summary, aiMeta, srcMeta, expiresAt,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return ContextRecord{}, fmt.Errorf("insert context: %w", err)
	}

	for i, m := range nc.Messages {
		_, err = tx.Exec(ctx, `
			INSERT INTO messages (id, context_id, role, content, message_timestamp, sequence_order)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), contextID, m.Role, m.Content, m.Timestamp.UTC(), i,
		)
		if err != nil {
			return ContextRecord{}, fmt.Errorf("insert message %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return ContextRecord{}, fmt.Errorf("commit: %w", err)
	}

	return ContextRecord{
		ID:           contextID,
		Platform:     nc.Platform,
		MessageCount: len(nc.Messages),
		Formatted:    nc.Formatted,
		Summary:      nc.Summary,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		ExpiresAt:    expiresAt,
	}, nil
}

// GetContext fetches a context and its messages ordered by sequence. Returns
// nil when the id is unknown.
func (s *Store) GetContext(ctx context.Context, id uuid.UUID) (*ContextRecord, error) {
	var rec ContextRecord
	err := s.pool.QueryRow(ctx, `
		SELECT id, platform, message_count, formatted_text, COALESCE(summary, ''), created_at, updated_at, expires_at
		FROM contexts WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.Platform, &rec.MessageCount, &rec.Formatted, &rec.Summary, &rec.CreatedAt, &rec.UpdatedAt, &rec.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select context: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, role, content, message_timestamp, sequence_order
		FROM messages WHERE context_id = $1 ORDER BY sequence_order`, id)
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m MessageRecord
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.Timestamp, &m.SequenceOrder); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		rec.Messages = append(rec.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return &rec, nil
}

// ListContexts pages through contexts newest-first, optionally filtered by
// platform. Returns the page and the total matching count.
func (s *Store) ListContexts(ctx context.Context, platform string, limit, offset int) ([]ListItem, int, error) {
	var total int
	if platform != "" {
		if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM contexts WHERE platform = $1`, platform).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count contexts: %w", err)
		}
	} else {
		if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM contexts`).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count contexts: %w", err)
		}
	}

	query := `
		SELECT id, platform, message_count, COALESCE(summary, ''), created_at
		FROM contexts`
	args := []any{}
	if platform != "" {
		query += ` WHERE platform = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, platform, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select contexts: %w", err)
	}
	defer rows.Close()

	var items []ListItem
	for rows.Next() {
		var it ListItem
		if err := rows.Scan(&it.ID, &it.Platform, &it.MessageCount, &it.Summary, &it.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan context: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contexts: %w", err)
	}

	return items, total, nil
}

// DeleteContext removes a context; messages cascade. Reports whether a row
// was deleted.
func (s *Store) DeleteContext(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM contexts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete context: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CleanupExpired deletes contexts past their retention window and returns
// how many were removed.
func (s *Store) CleanupExpired(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM contexts WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("cleanup expired: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func marshalMeta(m map[string]any) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}
