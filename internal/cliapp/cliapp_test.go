package cliapp

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPathWithinDirectory(t *testing.T) {
	dir := "/home/user/project"

	assert.True(t, isPathWithinDirectory(filepath.Join(dir, ".env"), dir))
	assert.True(t, isPathWithinDirectory(filepath.Join(dir, "nested", ".env"), dir))
	assert.False(t, isPathWithinDirectory("/home/user/.env", dir))
	assert.False(t, isPathWithinDirectory("/etc/passwd", dir))
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, `'hello'`, shellQuote("hello"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
}

func TestBuildScriptCommand(t *testing.T) {
	cmd := buildScriptCommand([]string{"python"}, "/scripts/run.py", []string{"--flag", "value with space"})
	assert.Equal(t, `python '/scripts/run.py' '--flag' 'value with space'`, cmd)
}

func TestBuildScriptCommandNoInterpreter(t *testing.T) {
	cmd := buildScriptCommand(nil, "/scripts/run.sh", nil)
	assert.Equal(t, `'/scripts/run.sh'`, cmd)
}

func TestJoinArgs(t *testing.T) {
	assert.Equal(t, "echo hello world", joinArgs([]string{"echo", "hello", "world"}))
	assert.Equal(t, "echo", joinArgs([]string{"echo"}))
}

func TestExitCodeAndIsExitSignal(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.False(t, IsExitSignal(nil))

	err := exitCodeError(124)
	assert.Equal(t, 124, ExitCode(err))
	assert.True(t, IsExitSignal(err))

	other := errors.New("boom")
	assert.Equal(t, 1, ExitCode(other))
	assert.False(t, IsExitSignal(other))
}

func TestExitCodeErrorZeroIsNil(t *testing.T) {
	assert.Nil(t, exitCodeError(0))
}
