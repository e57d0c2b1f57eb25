package config

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSourceLoad(t *testing.T) {
	src := NewDefaultSource()
	assert.Equal(t, "default", src.Name())

	data, err := src.Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "mom", data["command_name"])

	commands, ok := data["commands"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, commands, "test")
}

func TestEnvSourceLoad(t *testing.T) {
	t.Setenv("MOM_EXECUTION_RETRY_COUNT", "5")
	t.Setenv("MOM_EXECUTION_AUTO_RESET_ON_CACHE_FAILURE", "false")
	t.Setenv("MOM_COMMAND_NAME", "momctl")

	src := NewEnvSource()
	data, err := src.Load(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "momctl", data["command_name"])
	execution, ok := data["execution"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5, execution["retry_count"])
	assert.Equal(t, false, execution["auto_reset_on_cache_failure"])
}

func TestYAMLSourceLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := `
command_name: mom
commands:
  test:
    pattern: "pytest {target}"
recovery:
  clear_cache: "rm -rf .cache"
  reset_db: "mom db reset"
`
	require.NoError(t, afero.WriteFile(fsys, "mom.yaml", []byte(content), 0o644))

	src := &YAMLSource{Path: "mom.yaml"}
	data, err := src.Load(context.Background(), fsys)
	require.NoError(t, err)

	assert.Equal(t, "mom", data["command_name"])
	assert.Equal(t, []string{"clear_cache", "reset_db"}, src.RecoveryOrder)
}

func TestYAMLSourceLoadMissingFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	src := &YAMLSource{Path: "nope.yaml"}
	_, err := src.Load(context.Background(), fsys)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestYAMLSourceLoadMalformed(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "mom.yaml", []byte("commands: [this is not a map"), 0o644))

	src := &YAMLSource{Path: "mom.yaml"}
	_, err := src.Load(context.Background(), fsys)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestCLISourceLoad(t *testing.T) {
	src := NewCLISource(map[string]any{"output": map[string]any{"format": "json"}})
	data, err := src.Load(context.Background(), nil)
	require.NoError(t, err)
	output, ok := data["output"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json", output["format"])
}
