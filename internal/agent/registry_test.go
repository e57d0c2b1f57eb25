package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryFindAgentOrder(t *testing.T) {
	r := NewRegistry()
	r.RegisterEscalation(NewEscalationAgent(nil))
	r.RegisterGeneral(NewGeneralAgent())
	require.NoError(t, r.RegisterSpecialized(`git commit`, NewGitAgent()))

	ctx := ExecutionContext{}

	t.Run("specialized wins over general", func(t *testing.T) {
		found := r.FindAgent("git commit -m wip", ctx)
		require.NotNil(t, found)
		assert.Equal(t, "GitAgent", found.Name())
	})

	t.Run("general wins when nothing specialized matches", func(t *testing.T) {
		found := r.FindAgent("rsync -av src dst", ctx)
		require.NotNil(t, found)
		assert.Equal(t, "GeneralAgent", found.Name())
	})

	t.Run("custom agent beats everything", func(t *testing.T) {
		custom := &stubAgent{base: base{name: "Custom", priority: 999}, handle: true}
		r.RegisterCustom(custom)
		found := r.FindAgent("git commit -m wip", ctx)
		require.NotNil(t, found)
		assert.Equal(t, "Custom", found.Name())
	})
}

func TestRegistryFindAgentNoneMatch(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.FindAgent("anything", ExecutionContext{}))
}

func TestRegistryUsageStats(t *testing.T) {
	r := NewDefaultRegistry(nil)
	found := r.FindAgent("git commit -m wip", ExecutionContext{})
	require.NotNil(t, found)
	found.HandlePrompt("commit message:", "git commit", ExecutionContext{CurrentTask: "add tests"})

	stats := r.UsageStats()
	gitStats, ok := stats["GitAgent"]
	require.True(t, ok)
	assert.Equal(t, 1, gitStats.UsageCount)
	assert.Equal(t, 1, gitStats.SuccessCount)
}

type stubAgent struct {
	base
	handle bool
}

func (s *stubAgent) CanHandle(string, ExecutionContext) bool { return s.handle }
func (s *stubAgent) HandlePrompt(string, string, ExecutionContext) string {
	return ""
}

func TestEscalationAgentFallsBackOnError(t *testing.T) {
	a := NewEscalationAgent(func(EscalationRequest) (string, error) {
		return "", errors.New("boom")
	})
	resp := a.HandlePrompt("Continue? (y/n)", "npm install", ExecutionContext{})
	assert.Equal(t, "y", resp)
	assert.Equal(t, 0, a.Stats().SuccessCount)
}

func TestEscalationAgentUsesCallback(t *testing.T) {
	a := NewEscalationAgent(func(req EscalationRequest) (string, error) {
		assert.Equal(t, "do the thing", req.Context.CurrentTask)
		return "42", nil
	})
	resp := a.HandlePrompt("Enter a number:", "some-cmd", ExecutionContext{CurrentTask: "do the thing"})
	assert.Equal(t, "42", resp)
	assert.Equal(t, 1, a.Stats().SuccessCount)
}

func TestEscalationAgentNilCallback(t *testing.T) {
	a := NewEscalationAgent(nil)
	assert.Equal(t, "MIT", a.HandlePrompt("License:", "cmd", ExecutionContext{}))
}
