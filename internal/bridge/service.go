// Package bridge orchestrates the capture pipeline: detect the platform,
// extract the turns, format a transfer context, and move it between pages
// directly or through the remote store.
package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/contextbridge/bridge/internal/cloud"
	"github.com/contextbridge/bridge/internal/extract"
	"github.com/contextbridge/bridge/internal/format"
	"github.com/contextbridge/bridge/internal/inject"
	"github.com/contextbridge/bridge/internal/platform"
)

var (
	// ErrUnsupportedPlatform is returned when the origin does not map to a
	// platform with an extractor.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoMessages is returned by Push when extraction yields nothing; the
	// remote store rejects empty contexts.
	ErrNoMessages = errors.New("no messages extracted")

	// ErrNoRemoteStore is returned by the remote operations when the service
	// was built without a cloud client.
	ErrNoRemoteStore = errors.New("remote store not configured")

	// ErrNoInputField is returned by Inject when none of the platform's
	// input selectors match.
	ErrNoInputField = errors.New("no input field found")
)

// Session holds per-conversation state between operations. Each Extract or
// Pull overwrites the previous context; the last write wins.
type Session struct {
	LastContext *format.Context
	LastCloudID string
}

// ExtractResult pairs the raw turns with the rendered context so callers can
// republish either form.
type ExtractResult struct {
	Platform platform.Platform
	Messages []extract.Message
	Context  format.Context
}

// Service is safe for concurrent use as long as each goroutine works on its
// own Session.
type Service struct {
	cloud *cloud.Client
}

// New builds a Service. The cloud client may be nil, which disables the
// remote store operations.
func New(cloudClient *cloud.Client) *Service {
	return &Service{cloud: cloudClient}
}

// Detect maps a page origin to its platform.
func (s *Service) Detect(origin string) platform.Platform {
	return platform.Detect(origin)
}

// Extract pulls the conversation out of a parsed page and renders it per
// opts. The session, when non-nil, records the result as the current
// context.
func (s *Service) Extract(doc *goquery.Document, origin string, opts format.Options, sess *Session) (ExtractResult, error) {
	p := platform.Detect(origin)
	ex, ok := extract.ForPlatform(p)
	if !ok {
		return ExtractResult{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p)
	}

	msgs := ex.Extract(doc)
	fc := format.Format(msgs, opts)
	fc.Platform = p

	if sess != nil {
		sess.LastContext = &fc
	}
	return ExtractResult{Platform: p, Messages: msgs, Context: fc}, nil
}

// Inject writes text into the target page's input field.
func (s *Service) Inject(doc *goquery.Document, p platform.Platform, text string) error {
	if !platform.Known(p) {
		return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p)
	}
	if !inject.Inject(doc, p, text) {
		return fmt.Errorf("%w for %s", ErrNoInputField, p)
	}
	return nil
}

// Push extracts the page and saves the context to the remote store. The
// session records both the rendered context and the stored id.
func (s *Service) Push(ctx context.Context, doc *goquery.Document, origin string, opts format.Options, aiSummary bool, sess *Session) (cloud.SaveResult, error) {
	if s.cloud == nil {
		return cloud.SaveResult{}, ErrNoRemoteStore
	}

	res, err := s.Extract(doc, origin, opts, sess)
	if err != nil {
		return cloud.SaveResult{}, err
	}
	if len(res.Messages) == 0 {
		return cloud.SaveResult{}, ErrNoMessages
	}

	msgs := make([]cloud.Message, len(res.Messages))
	for i, m := range res.Messages {
		msgs[i] = cloud.Message{Role: string(m.Role), Content: m.Content, Timestamp: m.Timestamp}
	}

	saved, err := s.cloud.SaveContext(ctx, cloud.SaveRequest{
		Platform:          string(res.Platform),
		Messages:          msgs,
		Formatted:         res.Context.Formatted,
		Summary:           res.Context.Summary,
		GenerateAISummary: aiSummary,
		SourceMetadata:    map[string]string{"origin": origin},
	})
	if err != nil {
		return cloud.SaveResult{}, fmt.Errorf("save context: %w", err)
	}

	if sess != nil {
		sess.LastCloudID = saved.ContextID
	}
	return saved, nil
}

// Pull fetches a stored context and rehydrates it as the session's current
// context, ready for injection.
func (s *Service) Pull(ctx context.Context, id string, sess *Session) (format.Context, error) {
	if s.cloud == nil {
		return format.Context{}, ErrNoRemoteStore
	}

	stored, err := s.cloud.GetContext(ctx, id)
	if err != nil {
		return format.Context{}, fmt.Errorf("get context: %w", err)
	}

	fc := format.Context{
		Formatted: stored.Formatted,
		Summary:   stored.Summary,
		Count:     stored.MessageCount,
		Platform:  platform.Platform(stored.Platform),
	}
	if sess != nil {
		sess.LastContext = &fc
		sess.LastCloudID = stored.ID
	}
	return fc, nil
}
