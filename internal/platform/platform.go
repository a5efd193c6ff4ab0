package platform

import "strings"

// Platform identifies a supported AI chat web property.
type Platform string

const (
	ChatGPT Platform = "chatgpt"
	Claude  Platform = "claude"
	Gemini  Platform = "gemini"
	Poe     Platform = "poe"
	Unknown Platform = "unknown"
)

// hostTable maps hostname fragments to platforms. First match wins.
var hostTable = []struct {
	fragment string
	platform Platform
}{
	{"chat.openai.com", ChatGPT},
	{"chatgpt.com", ChatGPT},
	{"claude.ai", Claude},
	{"gemini.google.com", Gemini},
	{"poe.com", Poe},
}

// Detect maps a page origin to a platform identifier. Matching is a
// case-sensitive substring check against known hostnames; anything
// unrecognized comes back Unknown. Detect never fails.
func Detect(origin string) Platform {
	for _, e := range hostTable {
		if strings.Contains(origin, e.fragment) {
			return e.platform
		}
	}
	return Unknown
}

// Known reports whether p is one of the four supported platforms.
func Known(p Platform) bool {
	switch p {
	case ChatGPT, Claude, Gemini, Poe:
		return true
	}
	return false
}
