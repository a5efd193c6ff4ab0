// Package inject writes a formatted context string into the input surface of
// a chat page.
package inject

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/contextbridge/bridge/internal/platform"
)

// inputSelectors lists each platform's input-surface candidates in fallback
// order: the dedicated prompt control first, generic editable regions last.
var inputSelectors = map[platform.Platform][]string{
	platform.ChatGPT: {
		"#prompt-textarea",
		"textarea[data-id]",
		"div[contenteditable='true']",
	},
	platform.Claude: {
		"div[contenteditable='true']",
		"textarea",
	},
	platform.Gemini: {
		"div[contenteditable='true'][role='textbox']",
		"rich-textarea div[contenteditable='true']",
		"textarea",
	},
	platform.Poe: {
		"textarea[class*='GrowingTextArea']",
		"textarea",
		"div[contenteditable='true']",
	},
}

// Inject writes text into the first matching input surface for the platform,
// modifying the document in place. It reports whether a target was found; a
// platform without a defined input-surface rule always fails.
func Inject(doc *goquery.Document, p platform.Platform, text string) bool {
	selectors, ok := inputSelectors[p]
	if !ok {
		return false
	}

	for _, sel := range selectors {
		s := doc.Find(sel).First()
		if s.Length() == 0 {
			continue
		}
		s.SetText(text)
		if goquery.NodeName(s) == "textarea" {
			// Mirror into the value attribute so reactive frameworks reading
			// the property see the new content after rehydration.
			s.SetAttr("value", text)
		}
		return true
	}
	return false
}
