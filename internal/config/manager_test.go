package config

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerLoadDefaultsOnly(t *testing.T) {
	fsys := afero.NewMemMapFs()
	mgr := NewManager(fsys)

	cfg, err := mgr.Load(context.Background(), NewDefaultSource())
	require.NoError(t, err)
	assert.Equal(t, "mom", cfg.CommandName)
	assert.Equal(t, 2, cfg.Execution.RetryCount)
	assert.Equal(t, "", cfg.Path)
	assert.Same(t, cfg, mgr.Get())
}

func TestManagerLoadYAMLOverridesDefaults(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := `
commands:
  test:
    pattern: "go test ./..."
execution:
  retry_count: 5
recovery:
  first: "echo first"
  second: "echo second"
`
	require.NoError(t, afero.WriteFile(fsys, "mom.yaml", []byte(content), 0o644))
	mgr := NewManager(fsys)

	cfg, err := mgr.Load(context.Background(), NewDefaultSource(), &YAMLSource{Path: "mom.yaml"})
	require.NoError(t, err)

	assert.Equal(t, "go test ./...", cfg.Commands["test"]["pattern"])
	assert.Equal(t, 5, cfg.Execution.RetryCount)
	assert.Equal(t, "mom.yaml", cfg.Path)
	assert.Equal(t, []string{"first", "second"}, cfg.RecoveryOrder)

	// Defaults not overridden by the YAML file survive the merge.
	assert.Equal(t, "mom", cfg.CommandName)
	assert.Equal(t, "python -m build {target}", cfg.Commands["build"]["pattern"])
}

func TestManagerLoadCLIOverridesAll(t *testing.T) {
	fsys := afero.NewMemMapFs()
	mgr := NewManager(fsys)

	cli := NewCLISource(map[string]any{
		"output": map[string]any{"format": "json"},
	})
	cfg, err := mgr.Load(context.Background(), NewDefaultSource(), cli)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 10, cfg.Output.HeadLines)
}

func TestValidate(t *testing.T) {
	t.Run("rejects missing commands", func(t *testing.T) {
		cfg := &Config{ScriptPaths: []string{"scripts"}}
		err := Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("rejects missing script_paths", func(t *testing.T) {
		cfg := &Config{Commands: map[string]CommandMapping{"test": {"pattern": "go test"}}}
		err := Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("accepts a complete config", func(t *testing.T) {
		cfg := &Config{
			Commands:    map[string]CommandMapping{"test": {"pattern": "go test"}},
			ScriptPaths: []string{"scripts"},
		}
		assert.NoError(t, Validate(cfg))
	})
}

func TestResolveConfigPath(t *testing.T) {
	t.Run("explicit path missing fails fast", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		_, err := ResolveConfigPath(fsys, "/does/not/exist.yaml", "/work")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("explicit path found wins", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/custom/mom.yaml", []byte("commands: {}"), 0o644))
		path, err := ResolveConfigPath(fsys, "/custom/mom.yaml", "/work")
		require.NoError(t, err)
		assert.Equal(t, "/custom/mom.yaml", path)
	})

	t.Run("falls back to cwd mom.yaml", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/work/mom.yaml", []byte("commands: {}"), 0o644))
		path, err := ResolveConfigPath(fsys, "", "/work")
		require.NoError(t, err)
		assert.Equal(t, "/work/mom.yaml", path)
	})

	t.Run("walks up to an ancestor", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/work/mom.yaml", []byte("commands: {}"), 0o644))
		path, err := ResolveConfigPath(fsys, "", "/work/nested/deeper")
		require.NoError(t, err)
		assert.Equal(t, "/work/mom.yaml", path)
	})

	t.Run("no file anywhere uses defaults", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		path, err := ResolveConfigPath(fsys, "", "/work")
		require.NoError(t, err)
		assert.Equal(t, "", path)
	})
}
