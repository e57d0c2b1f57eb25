package agent

import (
	"fmt"
	"strings"
)

var npmTriggerCommands = []string{"npm init", "npm create", "yarn create", "yarn init"}

// NpmAgent answers prompts raised by npm/yarn's interactive init flows
// (spec.md §4.5, specialized tier, priority 70).
type NpmAgent struct {
	base
}

// NewNpmAgent returns an NpmAgent.
func NewNpmAgent() *NpmAgent {
	return &NpmAgent{base: base{name: "NpmAgent", priority: 70}}
}

func (a *NpmAgent) CanHandle(command string, _ ExecutionContext) bool {
	lower := strings.ToLower(command)
	return containsAny(lower, npmTriggerCommands...)
}

func (a *NpmAgent) HandlePrompt(prompt, _ string, ctx ExecutionContext) string {
	response := npmResponse(prompt, ctx)
	a.RecordUsage(true)
	return response
}

func npmResponse(prompt string, ctx ExecutionContext) string {
	lower := strings.ToLower(prompt)
	projectType := stringField(ctx.ProjectInfo, "type", "library")

	switch {
	case containsAny(lower, "package name", "name:"):
		return stringField(ctx.ProjectInfo, "name", "my-project")
	case strings.Contains(lower, "version"):
		return stringField(ctx.ProjectInfo, "version", "1.0.0")
	case strings.Contains(lower, "description"):
		name := stringField(ctx.ProjectInfo, "name", "project")
		return fmt.Sprintf("A %s project: %s", projectType, name)
	case containsAny(lower, "entry point", "main"):
		if projectType == "application" {
			return "src/index.js"
		}
		return "lib/index.js"
	case strings.Contains(lower, "test command"):
		return "npm test"
	case containsAny(lower, "git repository", "repository url"):
		if remote, ok := ctx.SessionMetadata["git_remote"].(string); ok {
			return remote
		}
		return ""
	case strings.Contains(lower, "keywords"):
		if rawType, ok := ctx.ProjectInfo["type"].(string); ok {
			return rawType
		}
		return ""
	case strings.Contains(lower, "author"):
		author := ctx.UserPreferences["author"]
		email := ctx.UserPreferences["email"]
		if author != "" && email != "" {
			return fmt.Sprintf("%s <%s>", author, email)
		}
		return withDefault(author, "Developer")
	case strings.Contains(lower, "license"):
		return withDefault(ctx.UserPreferences["license"], "MIT")
	case containsAny(lower, "is this ok", "is this okay"):
		return "yes"
	default:
		return npmSafeDefault(prompt)
	}
}

func npmSafeDefault(prompt string) string {
	lower := strings.ToLower(prompt)
	if containsAny(lower, "ok?", "okay?", "(yes)") {
		return "yes"
	}
	if strings.Contains(lower, "(y/n)") {
		return "y"
	}
	return ""
}
