package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// poeSelectors is the candidate cascade for Poe conversation turns.
var poeSelectors = []string{
	"div[class*='Message_row']",
	"div[class*='ChatMessage_chatMessage']",
	"div[class*='Message']",
}

type poeExtractor struct{}

func (poeExtractor) Extract(doc *goquery.Document) []Message {
	sel := firstMatch(doc, poeSelectors)
	if sel == nil {
		return nil
	}

	var msgs []Message
	sel.Each(func(_ int, s *goquery.Selection) {
		msgs = appendTurn(msgs, poeRole(s), s.Text())
	})
	return msgs
}

// poeRole infers the turn author from a "human" class fragment on the row
// itself or a nested user-message marker.
func poeRole(s *goquery.Selection) Role {
	if cls, ok := s.Attr("class"); ok && strings.Contains(cls, "human") {
		return RoleUser
	}
	if s.Find("[class*='humanMessage'], [data-testid='user-message']").Length() > 0 {
		return RoleUser
	}
	return RoleAssistant
}
