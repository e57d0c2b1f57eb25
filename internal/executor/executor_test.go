package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/momo-sh/mom/internal/agent"
	"github.com/momo-sh/mom/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRunner returns queued results in order, recording every
// command it was asked to run.
type scriptedRunner struct {
	results  []agent.CommandResult
	commands []string
}

func (s *scriptedRunner) Execute(_ context.Context, command string, _ agent.ExecutionContext) agent.CommandResult {
	s.commands = append(s.commands, command)
	if len(s.results) == 0 {
		return agent.CommandResult{ReturnCode: 0}
	}
	next := s.results[0]
	s.results = s.results[1:]
	return next
}

func baseConfig() *config.Config {
	return &config.Config{
		Commands: map[string]config.CommandMapping{
			"build": {"pattern": "tooling build {target}"},
		},
		Execution: config.ExecutionConfig{RetryCount: 0},
	}
}

func TestExecuteCommandSubstitution(t *testing.T) {
	runner := &scriptedRunner{}
	ex := New(baseConfig(), runner, nil)

	_, err := ex.ExecuteCommand(context.Background(), "build", "", "mypkg", nil, nil)
	require.NoError(t, err)
	require.Len(t, runner.commands, 1)
	assert.Equal(t, "tooling build mypkg", runner.commands[0])
}

func TestExecuteCommandRetryWithRecovery(t *testing.T) {
	cfg := baseConfig()
	cfg.Execution.RetryCount = 1
	cfg.Execution.AutoResetOnCacheFailure = true
	cfg.Recovery = map[string]string{"reset": "tooling reset"}
	cfg.RecoveryOrder = []string{"reset"}

	runner := &scriptedRunner{
		results: []agent.CommandResult{
			{ReturnCode: 2},
			{ReturnCode: 0},
			{ReturnCode: 0},
		},
	}
	ex := New(cfg, runner, nil)

	result, err := ex.ExecuteCommand(context.Background(), "build", "", "x", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Success())
	require.Len(t, runner.commands, 3)
	assert.Equal(t, "tooling build x", runner.commands[0])
	assert.Equal(t, "tooling reset", runner.commands[1])
	assert.Equal(t, "tooling build x", runner.commands[2])
}

func TestExecuteCommandFallback(t *testing.T) {
	cfg := &config.Config{
		Commands: map[string]config.CommandMapping{
			"test": {"pattern": "primary {target}", "fallback": "secondary {target}"},
		},
	}
	runner := &scriptedRunner{
		results: []agent.CommandResult{
			{ReturnCode: 1},
			{ReturnCode: 0},
		},
	}
	ex := New(cfg, runner, nil)

	result, err := ex.ExecuteCommand(context.Background(), "test", "", "x", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Success())
	require.Len(t, runner.commands, 2)
	assert.Equal(t, "primary x", runner.commands[0])
	assert.Equal(t, "secondary x", runner.commands[1])
}

func TestExecuteCommandNoMapping(t *testing.T) {
	ex := New(&config.Config{}, &scriptedRunner{}, nil)
	_, err := ex.ExecuteCommand(context.Background(), "nope", "", "x", nil, nil)
	assert.True(t, errors.Is(err, ErrNoMapping))
}

func TestExecuteCommandRetryExhaustedNoFallback(t *testing.T) {
	cfg := baseConfig()
	cfg.Execution.RetryCount = 1
	runner := &scriptedRunner{
		results: []agent.CommandResult{
			{ReturnCode: 1},
			{ReturnCode: 1},
		},
	}
	ex := New(cfg, runner, nil)

	result, err := ex.ExecuteCommand(context.Background(), "build", "", "x", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 2, result.Attempts)
}

func TestExecuteRaw(t *testing.T) {
	runner := &scriptedRunner{}
	ex := New(baseConfig(), runner, nil)

	result := ex.ExecuteRaw(context.Background(), "echo hi", "/tmp")
	assert.True(t, result.Success())
	assert.Equal(t, "echo hi", runner.commands[0])
}
