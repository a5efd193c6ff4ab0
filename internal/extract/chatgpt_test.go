package extract

import (
	"testing"

	"github.com/contextbridge/bridge/internal/platform"
)

func TestChatGPT_AuthorRoleAttr(t *testing.T) {
	doc := parseDoc(t, `<body>
		<div data-message-author-role="user">Deploy the auth service</div>
		<div data-message-author-role="assistant">Deploying now.</div>
	</body>`)

	ex, _ := ForPlatform(platform.ChatGPT)
	msgs := ex.Extract(doc)

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleUser {
		t.Errorf("msg 0 role = %q, want user", msgs[0].Role)
	}
	if msgs[0].Content != "Deploy the auth service" {
		t.Errorf("msg 0 content = %q", msgs[0].Content)
	}
	if msgs[1].Role != RoleAssistant {
		t.Errorf("msg 1 role = %q, want assistant", msgs[1].Role)
	}
}

func TestChatGPT_FallbackYouLabel(t *testing.T) {
	// Older markup: no author-role attribute, turns carry a "You" heading.
	doc := parseDoc(t, `<body>
		<div class="group/conversation-turn"><span class="font-semibold">You</span> Is this right?</div>
		<div class="group/conversation-turn"><span class="font-semibold">ChatGPT</span> Yes it is.</div>
	</body>`)

	ex, _ := ForPlatform(platform.ChatGPT)
	msgs := ex.Extract(doc)

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleUser {
		t.Errorf("msg 0 role = %q, want user", msgs[0].Role)
	}
	if msgs[1].Role != RoleAssistant {
		t.Errorf("msg 1 role = %q, want assistant", msgs[1].Role)
	}
}

func TestChatGPT_FallbackYouLabelVariants(t *testing.T) {
	// The label is a substring match: "You said" style headings still mark
	// the user turn.
	doc := parseDoc(t, `<body>
		<div class="group/conversation-turn"><span class="font-semibold">You said</span> What about retries?</div>
		<div class="group/conversation-turn"><span class="font-semibold">ChatGPT said</span> Use backoff.</div>
	</body>`)

	ex, _ := ForPlatform(platform.ChatGPT)
	msgs := ex.Extract(doc)

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleUser {
		t.Errorf("msg 0 role = %q, want user", msgs[0].Role)
	}
	if msgs[1].Role != RoleAssistant {
		t.Errorf("msg 1 role = %q, want assistant", msgs[1].Role)
	}
}

func TestChatGPT_FallbackBackgroundClass(t *testing.T) {
	doc := parseDoc(t, `<body>
		<div class="text-base bg-gray-50">user styled turn</div>
		<div class="text-base">assistant turn</div>
	</body>`)

	ex, _ := ForPlatform(platform.ChatGPT)
	msgs := ex.Extract(doc)

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleUser {
		t.Errorf("msg 0 role = %q, want user", msgs[0].Role)
	}
	if msgs[1].Role != RoleAssistant {
		t.Errorf("msg 1 role = %q, want assistant", msgs[1].Role)
	}
}

func TestChatGPT_AttrBeatsHeuristics(t *testing.T) {
	// The explicit attribute wins even when the content mentions "You".
	doc := parseDoc(t, `<body>
		<div data-message-author-role="assistant"><span class="font-semibold">You</span> should run the tests.</div>
	</body>`)

	ex, _ := ForPlatform(platform.ChatGPT)
	msgs := ex.Extract(doc)

	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != RoleAssistant {
		t.Errorf("role = %q, want assistant", msgs[0].Role)
	}
}
