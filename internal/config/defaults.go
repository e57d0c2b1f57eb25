package config

import (
	"context"

	"github.com/spf13/afero"
)

// DefaultSource supplies mom's built-in configuration, grounded on the
// original momo_mom.config.ConfigManager._get_default_config.
type DefaultSource struct{}

// NewDefaultSource returns the built-in-defaults Source.
func NewDefaultSource() *DefaultSource { return &DefaultSource{} }

func (s *DefaultSource) Name() string { return "default" }

// Load ignores ctx and fsys: the defaults are compiled in.
func (s *DefaultSource) Load(_ context.Context, _ afero.Fs) (map[string]any, error) {
	return map[string]any{
		"command_name": "mom",
		"commands": map[string]any{
			"create": map[string]any{
				"python": `python -m venv {name} && echo "Created {name}"`,
			},
			"test": map[string]any{
				"pattern": "pytest {target}",
			},
			"build": map[string]any{
				"pattern": "python -m build {target}",
			},
			"format": map[string]any{
				"pattern": "python -m black {target}",
			},
		},
		"script_paths": []any{"scripts"},
		"execution": map[string]any{
			"auto_reset_on_cache_failure": true,
			"retry_count":                 2,
			"timeout":                     300,
		},
		"recovery": map[string]any{},
		"interactive": map[string]any{
			"enable_executing_agent":    true,
			"enable_specialized_agents": true,
			"enable_general_agent":      true,
			"plugins":                   []any{},
		},
		"user_preferences": map[string]any{
			"author":       "Developer",
			"email":        "dev@example.com",
			"license":      "MIT",
			"git_username": "developer",
			"git_email":    "dev@example.com",
		},
		"output": map[string]any{
			"head_lines":          10,
			"tail_lines":          10,
			"max_line_length":     200,
			"duplicate_threshold": 3,
		},
	}, nil
}

// DefaultConfigYAML is the template written by `mom --init-config`,
// grounded on momo_mom.cli._init_config's embedded default_config
// string.
const DefaultConfigYAML = `# Mom configuration file
# Configure command mappings for your project

# Command name (what you type after 'mom')
command_name: "mom"

# Command mappings
commands:
  create:
    python: "nx g @nxlv/python:uv-project {name} --directory=code/libs/python/{name}"
    fallback: "mkdir -p {name} && cd {name} && uv init"

  test:
    pattern: "nx run {target}:test"
    fallback: "cd {target} && uv run pytest"

  build:
    pattern: "nx run {target}:build"
    fallback: "cd {target} && uv build"

  format:
    pattern: "nx run {target}:format"
    fallback: "cd {target} && uv run ruff format ."

# Script discovery paths (relative to config file)
script_paths:
  - "scripts"
  - "code/libs/python/*/scripts"

# Execution settings
execution:
  auto_reset_on_cache_failure: true
  retry_count: 2
  timeout: 300

# AI-tailored output configuration
output:
  format: "structured"  # structured, json, markdown
  head_lines: 10         # Lines to show at start
  tail_lines: 10         # Lines to show at end
  max_line_length: 200   # Truncate long lines
  duplicate_threshold: 3  # Filter repeated lines

# Recovery commands (run when primary command fails)
recovery:
  nx_cache_reset: "nx reset"
`
