package agent

import "strings"

// EmergencyDefault is the last-resort response the router writes when
// the selected agent panics while answering a prompt (spec.md §4.5's
// emergency fallback). It is deliberately conservative about
// destructive operations.
func EmergencyDefault(prompt string) string {
	lower := strings.ToLower(prompt)
	if containsAny(lower, "delete", "remove", "destroy") {
		return "n"
	}
	if strings.Contains(lower, "(y/n)") {
		return "y"
	}
	return ""
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// recentHistory returns at most the last n entries of history.
func recentHistory(history []string, n int) []string {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
