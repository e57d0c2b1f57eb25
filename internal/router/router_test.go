package router

import (
	"context"
	"testing"
	"time"

	"github.com/momo-sh/mom/internal/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInteractivePrompt(t *testing.T) {
	assert.True(t, isInteractivePrompt("Continue? (y/n)"))
	assert.True(t, isInteractivePrompt("Enter your name"))
	assert.True(t, isInteractivePrompt("Package name:"))
	assert.False(t, isInteractivePrompt(""))
	assert.False(t, isInteractivePrompt("build succeeded\n"))
}

type stubAgent struct {
	name     string
	response string
	prompts  []string
}

func (s *stubAgent) Name() string                                             { return s.name }
func (s *stubAgent) Priority() int                                            { return 100 }
func (s *stubAgent) CanHandle(command string, ctx agent.ExecutionContext) bool { return true }
func (s *stubAgent) HandlePrompt(prompt, command string, ctx agent.ExecutionContext) string {
	s.prompts = append(s.prompts, prompt)
	return s.response
}
func (s *stubAgent) RecordUsage(success bool) {}
func (s *stubAgent) Stats() agent.Stats       { return agent.Stats{} }

func TestExecuteMediatesPrompt(t *testing.T) {
	registry := agent.NewRegistry()
	stub := &stubAgent{name: "stub", response: "yes"}
	registry.RegisterCustom(stub)

	r := New(registry)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := r.Execute(ctx, `printf 'Proceed? (y/n): '; read -r answer; echo "got: $answer"`, agent.ExecutionContext{})

	require.NotEmpty(t, stub.prompts)
	assert.Equal(t, "stub", result.AgentUsed)
	assert.True(t, result.HadInteractions())
	assert.Equal(t, 0, result.ReturnCode)
}

type panicAgent struct{ name string }

func (p *panicAgent) Name() string                                             { return p.name }
func (p *panicAgent) Priority() int                                            { return 100 }
func (p *panicAgent) CanHandle(command string, ctx agent.ExecutionContext) bool { return true }
func (p *panicAgent) HandlePrompt(prompt, command string, ctx agent.ExecutionContext) string {
	panic("boom")
}
func (p *panicAgent) RecordUsage(success bool) {}
func (p *panicAgent) Stats() agent.Stats       { return agent.Stats{} }

func TestSafeHandlePromptRecoversPanicAndRecordsError(t *testing.T) {
	response, errMsg := safeHandlePrompt(&panicAgent{name: "panicky"}, "Continue? (y/n)", "cmd", agent.ExecutionContext{})

	assert.Equal(t, "y", response)
	assert.Equal(t, "boom", errMsg)
}

func TestExecuteNonInteractiveWhenNoAgent(t *testing.T) {
	registry := agent.NewRegistry()
	r := New(registry)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := r.Execute(ctx, "echo hello", agent.ExecutionContext{})

	assert.Equal(t, "hello\n", result.Stdout)
	assert.Equal(t, 0, result.ReturnCode)
	assert.Empty(t, result.AgentUsed)
}

func TestExecuteNonInteractiveExitCode(t *testing.T) {
	registry := agent.NewRegistry()
	r := New(registry)

	result := r.Execute(context.Background(), "exit 3", agent.ExecutionContext{})
	assert.Equal(t, 3, result.ReturnCode)
}

func TestExecuteNonInteractiveTimeout(t *testing.T) {
	registry := agent.NewRegistry()
	r := New(registry)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result := r.Execute(ctx, "sleep 2", agent.ExecutionContext{})
	assert.Equal(t, 124, result.ReturnCode)
}
