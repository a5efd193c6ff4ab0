package extract

import "time"

// Role classifies a conversation turn. Roles are inferred from page
// structure and styling, not from authoritative data, so misclassification
// is possible when a platform changes its markup.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single normalized conversation turn. Content is always
// non-empty and trimmed. The timestamp is assigned at extraction time —
// chat pages do not expose true send times — so it records extraction
// order, not conversation timing.
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time
}
