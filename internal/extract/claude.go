package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// claudeSelectors is the candidate cascade for Claude conversation turns.
var claudeSelectors = []string{
	"div[data-testid='chat-message']",
	"div[class*='font-user-message'], div[class*='font-claude-message']",
	"div[class*='message']",
}

type claudeExtractor struct{}

func (claudeExtractor) Extract(doc *goquery.Document) []Message {
	sel := firstMatch(doc, claudeSelectors)
	if sel == nil {
		return nil
	}

	var msgs []Message
	sel.Each(func(_ int, s *goquery.Selection) {
		msgs = appendTurn(msgs, claudeRole(s), s.Text())
	})
	return msgs
}

// claudeRole infers the turn author: the human avatar icon, then a "human"
// class fragment, then the "H:" transcript prefix. Anything else is the
// assistant.
func claudeRole(s *goquery.Selection) Role {
	if s.Find("[data-testid='human-icon']").Length() > 0 {
		return RoleUser
	}
	if cls, ok := s.Attr("class"); ok && strings.Contains(cls, "human") {
		return RoleUser
	}
	if strings.HasPrefix(strings.TrimSpace(s.Text()), "H:") {
		return RoleUser
	}
	return RoleAssistant
}
