package agent

import "strings"

var gitTriggerCommands = []string{"git commit", "git config", "git init", "git clone", "git merge", "git rebase"}

// GitAgent answers prompts raised by git's own interactive commands
// (spec.md §4.5, specialized tier, priority 70).
type GitAgent struct {
	base
}

// NewGitAgent returns a GitAgent.
func NewGitAgent() *GitAgent {
	return &GitAgent{base: base{name: "GitAgent", priority: 70}}
}

func (a *GitAgent) CanHandle(command string, _ ExecutionContext) bool {
	lower := strings.ToLower(command)
	return containsAny(lower, gitTriggerCommands...)
}

func (a *GitAgent) HandlePrompt(prompt, _ string, ctx ExecutionContext) string {
	response := gitResponse(prompt, ctx)
	a.RecordUsage(true)
	return response
}

func gitResponse(prompt string, ctx ExecutionContext) string {
	lower := strings.ToLower(prompt)

	switch {
	case containsAny(lower, "commit message", "enter message"):
		if ctx.CurrentTask != "" {
			return "feat: " + ctx.CurrentTask
		}
		return "chore: update files"
	case containsAny(lower, "user.name", "username"):
		return withDefault(ctx.UserPreferences["git_username"], "Developer")
	case containsAny(lower, "user.email", "email"):
		return withDefault(ctx.UserPreferences["git_email"], "dev@example.com")
	case strings.Contains(lower, "editor"):
		return withDefault(ctx.UserPreferences["editor"], "nano")
	case strings.Contains(lower, "merge") && strings.Contains(lower, "conflict"):
		return "abort"
	case strings.Contains(lower, "continue"):
		return "y"
	case strings.Contains(lower, "abort"):
		return "n"
	case strings.Contains(lower, "branch name"):
		task := "feature"
		if ctx.CurrentTask != "" {
			task = strings.ReplaceAll(strings.ToLower(ctx.CurrentTask), " ", "-")
		}
		return "feature/" + task
	default:
		return gitSafeDefault(prompt)
	}
}

func gitSafeDefault(prompt string) string {
	lower := strings.ToLower(prompt)
	if containsAny(lower, "delete", "remove", "force", "reset --hard") {
		return "n"
	}
	if containsAny(lower, "continue", "proceed") {
		return "y"
	}
	return ""
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
