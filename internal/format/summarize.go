package format

import (
	"fmt"
	"strings"

	"github.com/contextbridge/bridge/internal/extract"
)

const (
	maxTopics      = 10
	maxQuestions   = 3
	questionLength = 100
	minTokenLength = 6
)

// Summarize produces a deterministic heuristic digest of a message window:
// a topic list built from distinctive tokens plus the user's questions. It
// never calls out to a model.
//
// Topics are whitespace-delimited tokens, lower-cased, at least six
// characters long and not URL-shaped, deduplicated in first-seen order
// across the scan. Questions are the leading characters of user turns that
// contain a question mark; assistant questions are ignored.
func Summarize(msgs []extract.Message) string {
	seen := make(map[string]struct{})
	var topics []string
	var questions []string

	for _, m := range msgs {
		for _, tok := range strings.Fields(strings.ToLower(m.Content)) {
			if len(tok) < minTokenLength || strings.HasPrefix(tok, "http") {
				continue
			}
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			topics = append(topics, tok)
		}

		if m.Role == extract.RoleUser && strings.Contains(m.Content, "?") {
			questions = append(questions, truncateRunes(m.Content, questionLength))
		}
	}

	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}

	return fmt.Sprintf("Discussed %d messages covering topics like: %s. Key questions included: %s",
		len(msgs), strings.Join(topics, ", "), strings.Join(questions, "; "))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
