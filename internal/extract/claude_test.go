package extract

import (
	"testing"

	"github.com/contextbridge/bridge/internal/platform"
)

func TestClaude_HumanIconMarker(t *testing.T) {
	doc := parseDoc(t, `<body>
		<div data-testid="chat-message"><span data-testid="human-icon"></span>What does this error mean?</div>
		<div data-testid="chat-message">It means the pointer is nil.</div>
	</body>`)

	ex, _ := ForPlatform(platform.Claude)
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

func TestClaude_HumanClassFragment(t *testing.T) {
	doc := parseDoc(t, `<body>
		<div data-testid="chat-message" class="flex human-turn">Hello there</div>
		<div data-testid="chat-message" class="flex">Hi, how can I help?</div>
	</body>`)

	ex, _ := ForPlatform(platform.Claude)
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

func TestClaude_TranscriptPrefix(t *testing.T) {
	doc := parseDoc(t, `<body>
		<div data-testid="chat-message">H: please summarize this file</div>
		<div data-testid="chat-message">Here is the summary.</div>
	</body>`)

	ex, _ := ForPlatform(platform.Claude)
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

func TestClaude_FallbackSelectors(t *testing.T) {
	doc := parseDoc(t, `<body>
		<div class="font-user-message">H: hello</div>
		<div class="font-claude-message">hello back</div>
	</body>`)

	ex, _ := ForPlatform(platform.Claude)
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
