package agent

import (
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// packageJSON is the subset of package.json fields agents care about.
type packageJSON struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Main        string `json:"main"`
}

// pyprojectToml is the subset of pyproject.toml fields agents care
// about, covering both PEP 621 `[project]` and legacy
// `[tool.poetry]` layouts.
type pyprojectToml struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// ProbeProjectInfo inspects dir for package.json, pyproject.toml, and
// a Dockerfile to build the ProjectInfo map agents substitute into
// their responses (spec.md's SUPPLEMENTED FEATURES: deeper project
// probing than a bare directory name).
func ProbeProjectInfo(fsys afero.Fs, dir string) map[string]any {
	info := map[string]any{
		"name": baseName(dir),
		"type": "library",
	}

	if pkg, ok := readPackageJSON(fsys, dir); ok {
		if pkg.Name != "" {
			info["name"] = pkg.Name
		}
		if pkg.Version != "" {
			info["version"] = pkg.Version
		}
		if pkg.Description != "" {
			info["description"] = pkg.Description
		}
		info["type"] = "node"
		if pkg.Main != "" {
			info["entry_point"] = pkg.Main
		}
	}

	if proj, ok := readPyprojectToml(fsys, dir); ok {
		name := proj.Project.Name
		if name == "" {
			name = proj.Tool.Poetry.Name
		}
		version := proj.Project.Version
		if version == "" {
			version = proj.Tool.Poetry.Version
		}
		if name != "" {
			info["name"] = name
		}
		if version != "" {
			info["version"] = version
		}
		info["type"] = "python"
	}

	if exists(fsys, dir+"/Dockerfile") {
		info["has_dockerfile"] = true
	}

	return info
}

func readPackageJSON(fsys afero.Fs, dir string) (packageJSON, bool) {
	var pkg packageJSON
	raw, err := afero.ReadFile(fsys, dir+"/package.json")
	if err != nil {
		return pkg, false
	}
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return pkg, false
	}
	return pkg, true
}

func readPyprojectToml(fsys afero.Fs, dir string) (pyprojectToml, bool) {
	var proj pyprojectToml
	raw, err := afero.ReadFile(fsys, dir+"/pyproject.toml")
	if err != nil {
		return proj, false
	}
	if err := toml.Unmarshal(raw, &proj); err != nil {
		return proj, false
	}
	return proj, true
}

func exists(fsys afero.Fs, path string) bool {
	ok, _ := afero.Exists(fsys, path)
	return ok
}

func baseName(dir string) string {
	for i := len(dir) - 1; i >= 0; i-- {
		if dir[i] == '/' {
			return dir[i+1:]
		}
	}
	return dir
}
