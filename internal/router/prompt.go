package router

import (
	"strings"

	"github.com/momo-sh/mom/internal/output"
)

// promptIndicators are substrings that, found anywhere in a chunk of
// subprocess output, mark it as a likely interactive prompt (spec.md
// §4.5 / §9).
var promptIndicators = []string{
	"?", "(y/n)", "(yes/no)", "enter", "input", "select", "choose",
	"continue?", "proceed?", "ok?",
}

// isInteractivePrompt mirrors the heuristic in spec.md: any known
// indicator anywhere in the text, or the last non-empty line ending in
// ":", "?", or "> ". ANSI escapes and trailing whitespace are stripped
// first so a colorized prompt's suffix survives the check; a "> "
// prompt is therefore matched by its remaining ">".
func isInteractivePrompt(raw string) bool {
	trimmed := strings.TrimSpace(output.StripANSI(raw))
	if trimmed == "" {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, indicator := range promptIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}

	lines := strings.Split(trimmed, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	return strings.HasSuffix(last, ":") || strings.HasSuffix(last, "?") || strings.HasSuffix(last, ">")
}
