package agent

import (
	"fmt"
	"strings"
)

var pythonTriggerCommands = []string{"pip install", "python setup.py", "poetry init", "uv init"}

// PythonAgent answers prompts raised by pip/setup.py/poetry/uv's
// interactive flows (spec.md §4.5, specialized tier, priority 70).
type PythonAgent struct {
	base
}

// NewPythonAgent returns a PythonAgent.
func NewPythonAgent() *PythonAgent {
	return &PythonAgent{base: base{name: "PythonAgent", priority: 70}}
}

func (a *PythonAgent) CanHandle(command string, _ ExecutionContext) bool {
	lower := strings.ToLower(command)
	return containsAny(lower, pythonTriggerCommands...)
}

func (a *PythonAgent) HandlePrompt(prompt, _ string, ctx ExecutionContext) string {
	response := pythonResponse(prompt, ctx)
	a.RecordUsage(true)
	return response
}

func pythonResponse(prompt string, ctx ExecutionContext) string {
	lower := strings.ToLower(prompt)

	switch {
	case containsAny(lower, "package name", "project name"):
		return stringField(ctx.ProjectInfo, "name", "my-package")
	case strings.Contains(lower, "version"):
		return "0.1.0"
	case strings.Contains(lower, "description"):
		return fmt.Sprintf("Python package: %s", stringField(ctx.ProjectInfo, "name", "my-package"))
	case strings.Contains(lower, "author"):
		return withDefault(ctx.UserPreferences["author"], "Developer")
	case strings.Contains(lower, "license"):
		return withDefault(ctx.UserPreferences["license"], "MIT")
	case containsAny(lower, "python version", "requires-python"):
		return ">=3.8"
	case strings.Contains(lower, "dependencies"):
		return ""
	case containsAny(lower, "entry point", "console_scripts"):
		return ""
	case containsAny(lower, "continue", "proceed"):
		return "y"
	default:
		return pythonSafeDefault(prompt)
	}
}

func pythonSafeDefault(prompt string) string {
	if strings.Contains(strings.ToLower(prompt), "(y/n)") {
		return "y"
	}
	return ""
}
