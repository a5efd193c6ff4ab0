package inject

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/contextbridge/bridge/internal/platform"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

func TestInject_ChatGPTTextarea(t *testing.T) {
	doc := parseDoc(t, `<body><textarea id="prompt-textarea"></textarea></body>`)

	if !Inject(doc, platform.ChatGPT, "hello from the bridge") {
		t.Fatal("expected injection to succeed")
	}
	if got := doc.Find("#prompt-textarea").Text(); got != "hello from the bridge" {
		t.Errorf("textarea text = %q", got)
	}
	if v, _ := doc.Find("#prompt-textarea").Attr("value"); v != "hello from the bridge" {
		t.Errorf("textarea value attr = %q", v)
	}
}

func TestInject_FallbackOrder(t *testing.T) {
	// No dedicated prompt control; the contenteditable fallback is used.
	doc := parseDoc(t, `<body><div contenteditable="true" class="editor"></div></body>`)

	if !Inject(doc, platform.ChatGPT, "fallback text") {
		t.Fatal("expected fallback injection to succeed")
	}
	if got := doc.Find("div.editor").Text(); got != "fallback text" {
		t.Errorf("editor text = %q", got)
	}
}

func TestInject_ClaudeContentEditable(t *testing.T) {
	doc := parseDoc(t, `<body><div contenteditable="true"></div><textarea></textarea></body>`)

	if !Inject(doc, platform.Claude, "resumed context") {
		t.Fatal("expected injection to succeed")
	}
	if got := doc.Find("div[contenteditable='true']").Text(); got != "resumed context" {
		t.Errorf("contenteditable text = %q", got)
	}
	// The lower-priority textarea stays untouched.
	if got := doc.Find("textarea").Text(); got != "" {
		t.Errorf("textarea should be untouched, got %q", got)
	}
}

func TestInject_NoTarget(t *testing.T) {
	doc := parseDoc(t, `<body><p>read-only page</p></body>`)

	if Inject(doc, platform.Gemini, "anything") {
		t.Error("expected failure when no input surface exists")
	}
}

func TestInject_UnknownPlatform(t *testing.T) {
	doc := parseDoc(t, `<body><textarea></textarea></body>`)

	if Inject(doc, platform.Unknown, "anything") {
		t.Error("expected failure for a platform without an input-surface rule")
	}
}
