package agent

import (
	"regexp"
	"strings"

	"github.com/momo-sh/mom/internal/substitute"
)

// generalPattern is one entry of GeneralAgent's built-in knowledge: a
// prompt-matching regex and the {placeholder}-bearing response
// template to use when it matches.
type generalPattern struct {
	re       *regexp.Regexp
	template string
}

// generalPatterns is deliberately a slice, not a map: patterns are
// tried in order and the first match wins (spec.md §4.5).
var generalPatterns = []generalPattern{
	{regexp.MustCompile(`(?i).*continue.*\(y/n\)`), "y"},
	{regexp.MustCompile(`(?i).*proceed.*\(y/n\)`), "y"},
	{regexp.MustCompile(`(?i).*overwrite.*\(y/n\)`), "n"},
	{regexp.MustCompile(`(?i).*delete.*\(y/n\)`), "n"},
	{regexp.MustCompile(`(?i).*version.*:`), "1.0.0"},
	{regexp.MustCompile(`(?i).*initial version.*:`), "0.1.0"},
	{regexp.MustCompile(`(?i).*license.*:`), "MIT"},
	{regexp.MustCompile(`(?i).*author.*:`), "Developer"},
	{regexp.MustCompile(`(?i).*description.*:`), "A new project"},
	{regexp.MustCompile(`(?i).*entry.*point.*:`), "index.js"},
	{regexp.MustCompile(`(?i).*main.*file.*:`), "main.py"},
	{regexp.MustCompile(`(?i).*test.*command.*:`), "npm test"},
	{regexp.MustCompile(`(?i).*test.*script.*:`), "pytest"},
	{regexp.MustCompile(`(?i).*repository.*:`), ""},
	{regexp.MustCompile(`(?i).*git.*repository.*:`), ""},
	{regexp.MustCompile(`(?i).*keywords.*:`), ""},
	{regexp.MustCompile(`(?i).*package.*name.*:`), "{project_name}"},
	{regexp.MustCompile(`(?i).*project.*name.*:`), "{project_name}"},
}

var selectionOption = regexp.MustCompile(`\[1-9\]`)

// GeneralAgent is the fallback agent consulted when no specialized
// agent claims the running command (spec.md §4.5, priority 10).
type GeneralAgent struct {
	base
}

// NewGeneralAgent returns a GeneralAgent.
func NewGeneralAgent() *GeneralAgent {
	return &GeneralAgent{base: base{name: "GeneralAgent", priority: 10}}
}

// CanHandle always returns true: this is the catch-all before
// escalation.
func (a *GeneralAgent) CanHandle(_ string, _ ExecutionContext) bool { return true }

func (a *GeneralAgent) HandlePrompt(prompt, _ string, ctx ExecutionContext) string {
	if response, ok := matchGeneralPattern(prompt, ctx); ok {
		a.RecordUsage(true)
		return response
	}
	a.RecordUsage(true)
	return generalSafeDefault(prompt)
}

func matchGeneralPattern(prompt string, ctx ExecutionContext) (string, bool) {
	for _, p := range generalPatterns {
		if !p.re.MatchString(prompt) {
			continue
		}
		sctx := substitute.Context{
			"project_name": stringField(ctx.ProjectInfo, "name", "my-project"),
			"project_type": stringField(ctx.ProjectInfo, "type", "library"),
			"author":       ctx.UserPreferences["author"],
			"email":        ctx.UserPreferences["email"],
			"license":      ctx.UserPreferences["license"],
		}
		if sctx["author"] == "" {
			sctx["author"] = "Developer"
		}
		if sctx["license"] == "" {
			sctx["license"] = "MIT"
		}
		return substitute.Expand(p.template, sctx, nil), true
	}
	return "", false
}

func generalSafeDefault(prompt string) string {
	lower := strings.ToLower(prompt)
	if containsAny(lower, "delete", "remove", "overwrite") {
		return "n"
	}
	if containsAny(lower, "continue", "proceed", "install") {
		return "y"
	}
	if selectionOption.MatchString(prompt) {
		return "1"
	}
	return ""
}

func stringField(m map[string]any, key, fallback string) string {
	if m == nil {
		return fallback
	}
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
