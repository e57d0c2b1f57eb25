package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGitAgent(t *testing.T) {
	a := NewGitAgent()
	assert.True(t, a.CanHandle("git commit -m wip", ExecutionContext{}))
	assert.False(t, a.CanHandle("npm install", ExecutionContext{}))

	ctx := ExecutionContext{CurrentTask: "add login flow", UserPreferences: map[string]string{"git_username": "octocat"}}
	assert.Equal(t, "feat: add login flow", a.HandlePrompt("Enter commit message:", "git commit", ctx))
	assert.Equal(t, "octocat", a.HandlePrompt("user.name:", "git commit", ctx))
	assert.Equal(t, "dev@example.com", a.HandlePrompt("user.email:", "git commit", ExecutionContext{}))
	assert.Equal(t, "abort", a.HandlePrompt("merge conflict detected, abort?", "git merge", ctx))
}

func TestNpmAgent(t *testing.T) {
	a := NewNpmAgent()
	assert.True(t, a.CanHandle("npm init -y", ExecutionContext{}))

	ctx := ExecutionContext{ProjectInfo: map[string]any{"name": "widget", "type": "application"}}
	assert.Equal(t, "widget", a.HandlePrompt("package name:", "npm init", ctx))
	assert.Equal(t, "src/index.js", a.HandlePrompt("entry point:", "npm init", ctx))
	assert.Equal(t, "yes", a.HandlePrompt("is this OK?", "npm init", ctx))
}

func TestDockerAgent(t *testing.T) {
	a := NewDockerAgent()
	assert.True(t, a.CanHandle("docker run -it alpine", ExecutionContext{}))
	assert.Equal(t, "3000", a.HandlePrompt("Port:", "docker run", ExecutionContext{}))
	assert.Equal(t, "n", a.HandlePrompt("Remove all containers?", "docker run", ExecutionContext{}))
}

func TestPythonAgent(t *testing.T) {
	a := NewPythonAgent()
	assert.True(t, a.CanHandle("pip install -e .", ExecutionContext{}))
	assert.Equal(t, "0.1.0", a.HandlePrompt("Version:", "pip install", ExecutionContext{}))
	assert.Equal(t, ">=3.8", a.HandlePrompt("requires-python:", "pip install", ExecutionContext{}))
}
