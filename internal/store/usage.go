package store

import (
	"context"
	"fmt"
	"time"
)

// Usage is one API request record, kept for rate-limit forensics.
type Usage struct {
	Endpoint   string
	IPAddress  string
	UserAgent  string
	Status     int
	Processing time.Duration
}

func (s *Store) RecordUsage(ctx context.Context, u Usage) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO api_usage (endpoint, ip_address, user_agent, response_status, processing_time_ms)
		VALUES ($1, $2, $3, $4, $5)`,
		u.Endpoint, u.IPAddress, u.UserAgent, u.Status, u.Processing.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert api usage: %w", err)
	}
	return nil
}
