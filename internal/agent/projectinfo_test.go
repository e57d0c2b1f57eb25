package agent

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeProjectInfoNodeProject(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/proj/package.json", []byte(`{"name":"widget","version":"2.1.0","main":"lib/index.js"}`), 0o644))

	info := ProbeProjectInfo(fsys, "/proj")
	assert.Equal(t, "widget", info["name"])
	assert.Equal(t, "2.1.0", info["version"])
	assert.Equal(t, "node", info["type"])
	assert.Equal(t, "lib/index.js", info["entry_point"])
}

func TestProbeProjectInfoPythonProject(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/proj/pyproject.toml", []byte("[project]\nname = \"mypkg\"\nversion = \"0.3.0\"\n"), 0o644))

	info := ProbeProjectInfo(fsys, "/proj")
	assert.Equal(t, "mypkg", info["name"])
	assert.Equal(t, "0.3.0", info["version"])
	assert.Equal(t, "python", info["type"])
}

func TestProbeProjectInfoPoetryLayout(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/proj/pyproject.toml", []byte("[tool.poetry]\nname = \"mypkg\"\nversion = \"1.2.3\"\n"), 0o644))

	info := ProbeProjectInfo(fsys, "/proj")
	assert.Equal(t, "mypkg", info["name"])
	assert.Equal(t, "1.2.3", info["version"])
}

func TestProbeProjectInfoDockerfile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/proj/Dockerfile", []byte("FROM scratch"), 0o644))

	info := ProbeProjectInfo(fsys, "/proj")
	assert.Equal(t, true, info["has_dockerfile"])
	assert.Equal(t, "proj", info["name"])
	assert.Equal(t, "library", info["type"])
}
