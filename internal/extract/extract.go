// Package extract scans rendered chat pages into normalized conversation
// turns. Each supported platform has its own extractor variant; all of them
// share the same soft-failure contract: a page with no recognizable
// conversation structure yields an empty sequence, never an error. Callers
// cannot distinguish "empty conversation" from "stale selectors" — that is a
// deliberate property of best-effort scraping.
package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/contextbridge/bridge/internal/platform"
)

// Extractor scans a parsed chat page for conversation turns. Implementations
// read the document only and never mutate it.
type Extractor interface {
	Extract(doc *goquery.Document) []Message
}

// ForPlatform returns the extractor variant for a platform. The second
// return is false when the platform has no registered variant.
func ForPlatform(p platform.Platform) (Extractor, bool) {
	switch p {
	case platform.ChatGPT:
		return chatgptExtractor{}, true
	case platform.Claude:
		return claudeExtractor{}, true
	case platform.Gemini:
		return geminiExtractor{}, true
	case platform.Poe:
		return poeExtractor{}, true
	default:
		return nil, false
	}
}

// firstMatch tries candidate selectors in order and returns the selection of
// the first one matching at least one element. The cascade tolerates minor
// markup drift in the source pages without code changes. Returns nil when
// every candidate is stale.
func firstMatch(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if s := doc.Find(sel); s.Length() > 0 {
			return s
		}
	}
	return nil
}

// appendTurn trims content and drops empty turns before appending.
func appendTurn(msgs []Message, role Role, content string) []Message {
	content = strings.TrimSpace(content)
	if content == "" {
		return msgs
	}
	return append(msgs, Message{Role: role, Content: content, Timestamp: time.Now().UTC()})
}
