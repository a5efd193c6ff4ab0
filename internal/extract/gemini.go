package extract

import "github.com/PuerkitoBio/goquery"

// geminiSelectors is the candidate cascade for Gemini conversation turns.
var geminiSelectors = []string{
	"message-content",
	"div[class*='conversation-container'] > div",
	"div[class*='query-content'], div[class*='response-content']",
}

type geminiExtractor struct{}

// Extract assigns roles purely by positional parity: Gemini's markup carries
// no usable role signal, so the 1st, 3rd, 5th ... matched element is treated
// as the user and the rest as the assistant. This assumes strict alternation
// starting with a user turn; a missing or extra element misaligns every
// role after it.
func (geminiExtractor) Extract(doc *goquery.Document) []Message {
	sel := firstMatch(doc, geminiSelectors)
	if sel == nil {
		return nil
	}

	var msgs []Message
	sel.Each(func(i int, s *goquery.Selection) {
		role := RoleAssistant
		if i%2 == 0 {
			role = RoleUser
		}
		msgs = appendTurn(msgs, role, s.Text())
	})
	return msgs
}
