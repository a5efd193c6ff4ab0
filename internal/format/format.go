// Package format renders a normalized message sequence into a transferable
// text blob, optionally compacting older turns into a heuristic summary to
// bound output size.
package format

import (
	"fmt"
	"strings"

	"github.com/contextbridge/bridge/internal/extract"
	"github.com/contextbridge/bridge/internal/platform"
)

// Options controls compaction.
type Options struct {
	// IncludeSystem is accepted for interface compatibility but currently
	// gates nothing: extractors never emit a system role.
	IncludeSystem bool
	// CompressOlder replaces older turns with a heuristic summary, keeping
	// the last RecentCount turns verbatim.
	CompressOlder bool
	RecentCount   int
}

// Context is the transfer unit produced by Format. Formatted is always
// derivable from the input messages and options; it is regenerated, never
// edited.
type Context struct {
	Formatted string
	Summary   string
	Count     int
	Platform  platform.Platform
}

// noMessagesSummary is returned for an empty extraction.
const noMessagesSummary = "No messages to transfer"

// Format renders messages per the compaction options. Compaction only
// triggers when there are strictly more messages than RecentCount; at
// exactly RecentCount the whole conversation is rendered verbatim.
func Format(msgs []extract.Message, opts Options) Context {
	if len(msgs) == 0 {
		return Context{Summary: noMessagesSummary}
	}

	if opts.CompressOlder && len(msgs) > opts.RecentCount {
		older := msgs[:len(msgs)-opts.RecentCount]
		recent := msgs[len(msgs)-opts.RecentCount:]
		summary := Summarize(older)

		var sb strings.Builder
		sb.WriteString("## Previous Context Summary\n\n")
		sb.WriteString(summary)
		sb.WriteString("\n\n## Recent Conversation\n\n")
		writeTurns(&sb, recent)

		return Context{Formatted: sb.String(), Summary: summary, Count: len(msgs)}
	}

	var sb strings.Builder
	sb.WriteString("## Full Conversation\n\n")
	writeTurns(&sb, msgs)

	return Context{Formatted: sb.String(), Count: len(msgs)}
}

func writeTurns(sb *strings.Builder, msgs []extract.Message) {
	for i, m := range msgs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(sb, "**%s**: %s", strings.ToUpper(string(m.Role)), m.Content)
	}
}
