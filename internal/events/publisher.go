// Package events publishes context lifecycle notifications over NATS so
// other tools can react to stored conversations. The publisher is optional:
// the service runs without it.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectContextStored  = "contextbridge.context.stored"
	SubjectContextDeleted = "contextbridge.context.deleted"
)

// StoredEvent announces a newly persisted context.
type StoredEvent struct {
	ContextID    string `json:"context_id"`
	Platform     string `json:"platform"`
	MessageCount int    `json:"message_count"`
	Timestamp    string `json:"timestamp"`
}

// DeletedEvent announces a removed context.
type DeletedEvent struct {
	ContextID string `json:"context_id"`
	Timestamp string `json:"timestamp"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

func (p *Publisher) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return p.conn.Publish(subject, payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}

// Now returns the event timestamp format used on the wire.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
