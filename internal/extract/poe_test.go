package extract

import (
	"testing"

	"github.com/contextbridge/bridge/internal/platform"
)

func TestPoe_HumanClassOnRow(t *testing.T) {
	doc := parseDoc(t, `<body>
		<div class="Message_row Message_humanRow">what model are you</div>
		<div class="Message_row">I'm an assistant on Poe.</div>
	</body>`)

	ex, _ := ForPlatform(platform.Poe)
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

func TestPoe_NestedUserMarker(t *testing.T) {
	doc := parseDoc(t, `<body>
		<div class="Message_row"><div class="Message_humanMessageBubble">hello bot</div></div>
		<div class="Message_row"><div class="Message_botMessageBubble">hello user</div></div>
	</body>`)

	ex, _ := ForPlatform(platform.Poe)
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
