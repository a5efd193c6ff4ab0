package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// chatgptSelectors is the candidate cascade for ChatGPT conversation turns,
// current markup first.
var chatgptSelectors = []string{
	"[data-message-author-role]",
	"div[class*='group/conversation-turn']",
	"div[class*='text-base']",
}

type chatgptExtractor struct{}

func (chatgptExtractor) Extract(doc *goquery.Document) []Message {
	sel := firstMatch(doc, chatgptSelectors)
	if sel == nil {
		return nil
	}

	var msgs []Message
	sel.Each(func(_ int, s *goquery.Selection) {
		msgs = appendTurn(msgs, chatgptRole(s), s.Text())
	})
	return msgs
}

// chatgptRole infers the turn author. The author-role attribute is
// authoritative when present; older layouts fall back to the "You" label or
// the gray user-bubble background.
func chatgptRole(s *goquery.Selection) Role {
	if role, ok := s.Attr("data-message-author-role"); ok {
		if role == "user" {
			return RoleUser
		}
		return RoleAssistant
	}
	if label := s.Find("[class*='font-semibold']").First().Text(); strings.Contains(label, "You") {
		return RoleUser
	}
	if cls, ok := s.Attr("class"); ok && strings.Contains(cls, "bg-gray-50") {
		return RoleUser
	}
	return RoleAssistant
}
