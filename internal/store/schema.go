package store

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS contexts (
	id                  UUID PRIMARY KEY,
	platform            TEXT NOT NULL,
	message_count       INTEGER NOT NULL,
	formatted_text      TEXT NOT NULL,
	summary             TEXT,
	ai_summary_metadata JSONB,
	source_metadata     JSONB,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at          TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contexts_platform ON contexts (platform);
CREATE INDEX IF NOT EXISTS idx_contexts_created_at ON contexts (created_at);
CREATE INDEX IF NOT EXISTS idx_contexts_expires_at ON contexts (expires_at);

CREATE TABLE IF NOT EXISTS messages (
	id                UUID PRIMARY KEY,
	context_id        UUID NOT NULL REFERENCES contexts(id) ON DELETE CASCADE,
	role              TEXT NOT NULL,
	content           TEXT NOT NULL,
	message_timestamp TIMESTAMPTZ NOT NULL,
	sequence_order    INTEGER NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (context_id, sequence_order)
);
CREATE INDEX IF NOT EXISTS idx_messages_context_id ON messages (context_id);

CREATE TABLE IF NOT EXISTS api_usage (
	id                 BIGSERIAL PRIMARY KEY,
	endpoint           TEXT NOT NULL,
	ip_address         TEXT,
	user_agent         TEXT,
	request_timestamp  TIMESTAMPTZ NOT NULL DEFAULT now(),
	response_status    INTEGER,
	processing_time_ms INTEGER
);
CREATE INDEX IF NOT EXISTS idx_api_usage_endpoint ON api_usage (endpoint);
CREATE INDEX IF NOT EXISTS idx_api_usage_ip ON api_usage (ip_address, request_timestamp);
`

// EnsureSchema creates the tables on startup when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
