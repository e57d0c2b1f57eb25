package agent

import (
	"fmt"
	"strings"
)

var dockerTriggerCommands = []string{"docker run", "docker build", "docker exec", "docker-compose"}

// DockerAgent answers prompts raised by docker/docker-compose's
// interactive flows (spec.md §4.5, specialized tier, priority 70).
type DockerAgent struct {
	base
}

// NewDockerAgent returns a DockerAgent.
func NewDockerAgent() *DockerAgent {
	return &DockerAgent{base: base{name: "DockerAgent", priority: 70}}
}

func (a *DockerAgent) CanHandle(command string, _ ExecutionContext) bool {
	lower := strings.ToLower(command)
	return containsAny(lower, dockerTriggerCommands...)
}

func (a *DockerAgent) HandlePrompt(prompt, _ string, ctx ExecutionContext) string {
	response := dockerResponse(prompt, ctx)
	a.RecordUsage(true)
	return response
}

func dockerResponse(prompt string, ctx ExecutionContext) string {
	lower := strings.ToLower(prompt)

	switch {
	case containsAny(lower, "container name", "name:"):
		return fmt.Sprintf("%s-container", stringField(ctx.ProjectInfo, "name", "app"))
	case strings.Contains(lower, "port"):
		return "3000"
	case containsAny(lower, "environment", "env"):
		return "production"
	case containsAny(lower, "volume", "mount"):
		return "/app"
	case containsAny(lower, "image", "base image"):
		return "node:alpine"
	case containsAny(lower, "continue", "proceed"):
		return "y"
	default:
		return dockerSafeDefault(prompt)
	}
}

func dockerSafeDefault(prompt string) string {
	lower := strings.ToLower(prompt)
	if containsAny(lower, "remove", "delete", "prune") {
		return "n"
	}
	if strings.Contains(lower, "(y/n)") {
		return "y"
	}
	return ""
}
