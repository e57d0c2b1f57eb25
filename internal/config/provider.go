package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"
	kenv "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
)

// Source is one layer of the Config Loader's merge pipeline (spec.md
// §4.1). Sources are applied in increasing precedence: default,
// environment, YAML file, CLI flags.
type Source interface {
	// Name identifies the source for diagnostics and config --show.
	Name() string
	// Load returns the tree this source contributes. A source with
	// nothing to contribute returns a nil map and a nil error.
	Load(ctx context.Context, fsys afero.Fs) (map[string]any, error)
}

// EnvSource reads MOM_-prefixed environment variables. Only a known
// set of overridable fields is recognized (spec.md's AMBIENT STACK
// names the MOM_EXECUTION_RETRY_COUNT style); everything else is
// ignored rather than guessed at, since the dotted key a flattened
// MOM_FOO_BAR_BAZ maps to is ambiguous without the schema.
type EnvSource struct {
	Prefix string
}

// NewEnvSource returns an EnvSource using the conventional "MOM_" prefix.
func NewEnvSource() *EnvSource {
	return &EnvSource{Prefix: "MOM_"}
}

func (s *EnvSource) Name() string { return "env" }

// envKeyPaths maps the MOM_-prefix-stripped environment variable name
// to the dotted path it contributes to the merged config tree.
var envKeyPaths = map[string]string{
	"COMMAND_NAME":                           "command_name",
	"EXECUTION_RETRY_COUNT":                  "execution.retry_count",
	"EXECUTION_TIMEOUT":                      "execution.timeout",
	"EXECUTION_AUTO_RESET_ON_CACHE_FAILURE":  "execution.auto_reset_on_cache_failure",
	"OUTPUT_FORMAT":                          "output.format",
	"OUTPUT_HEAD_LINES":                      "output.head_lines",
	"OUTPUT_TAIL_LINES":                      "output.tail_lines",
	"OUTPUT_MAX_LINE_LENGTH":                 "output.max_line_length",
	"OUTPUT_DUPLICATE_THRESHOLD":             "output.duplicate_threshold",
	"INTERACTIVE_ENABLE_EXECUTING_AGENT":     "interactive.enable_executing_agent",
	"INTERACTIVE_ENABLE_SPECIALIZED_AGENTS":  "interactive.enable_specialized_agents",
	"INTERACTIVE_ENABLE_GENERAL_AGENT":       "interactive.enable_general_agent",
}

func (s *EnvSource) Load(_ context.Context, _ afero.Fs) (map[string]any, error) {
	k := koanf.New(".")
	provider := kenv.Provider(".", kenv.Opt{
		Prefix: s.Prefix,
		TransformFunc: func(key, value string) (string, any) {
			trimmed := strings.TrimPrefix(key, s.Prefix)
			path, known := envKeyPaths[trimmed]
			if !known {
				return "", nil
			}
			return path, coerceScalar(value)
		},
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}
	return k.Raw(), nil
}

// coerceScalar turns a raw environment string into a bool, int, or
// string, matching how the YAML loader would have typed the same
// value if it had come from a config file.
func coerceScalar(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if i, err := strconv.Atoi(raw); err == nil {
		return i
	}
	return raw
}

// YAMLSource reads a mom config file from fsys at Path. It uses
// goccy/go-yaml's ordered-map decoding so the "recovery" section's
// declaration order can be recovered for RecoveryOrder (spec.md §4.4
// requires recovery commands run in declaration order, which a plain
// map[string]string cannot preserve).
type YAMLSource struct {
	Path string

	// RecoveryOrder is populated as a side effect of Load, in the
	// order recovery keys appeared in the file. Empty until Load runs.
	RecoveryOrder []string
}

func (s *YAMLSource) Name() string { return "yaml:" + s.Path }

func (s *YAMLSource) Load(_ context.Context, fsys afero.Fs) (map[string]any, error) {
	raw, err := afero.ReadFile(fsys, s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, s.Path, err)
	}

	var ordered yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(raw, &ordered, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, s.Path, err)
	}

	tree := mapSliceToMap(ordered)
	s.RecoveryOrder = recoveryKeyOrder(ordered)
	return tree, nil
}

// mapSliceToMap recursively converts goccy/go-yaml's order-preserving
// yaml.MapSlice into the plain map[string]any tree the rest of the
// merge pipeline (mergo, mapstructure) expects.
func mapSliceToMap(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		out := make(map[string]any, len(t))
		for _, item := range t {
			key := fmt.Sprintf("%v", item.Key)
			out[key] = mapSliceToMap(item.Value)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = mapSliceToMap(item)
		}
		return out
	default:
		return v
	}
}

// recoveryKeyOrder walks the top-level MapSlice looking for the
// "recovery" section and returns its keys in declaration order.
func recoveryKeyOrder(ordered yaml.MapSlice) []string {
	for _, item := range ordered {
		key := fmt.Sprintf("%v", item.Key)
		if key != "recovery" {
			continue
		}
		section, ok := item.Value.(yaml.MapSlice)
		if !ok {
			return nil
		}
		order := make([]string, 0, len(section))
		for _, entry := range section {
			order = append(order, fmt.Sprintf("%v", entry.Key))
		}
		return order
	}
	return nil
}

// CLISource wraps the subset of cobra flags that override config
// values (--output-format, --expand). It is built by internal/cliapp
// once flags have been parsed.
type CLISource struct {
	Values map[string]any
}

// NewCLISource wraps an override tree. Keys may be nested maps or
// dotted paths such as "output.format"; Load expands dotted keys into
// nested maps. A nil or empty map contributes nothing to the merge.
func NewCLISource(values map[string]any) *CLISource {
	return &CLISource{Values: values}
}

func (s *CLISource) Name() string { return "cli" }

func (s *CLISource) Load(_ context.Context, _ afero.Fs) (map[string]any, error) {
	if len(s.Values) == 0 {
		return nil, nil
	}
	tree := make(map[string]any, len(s.Values))
	for key, value := range s.Values {
		parts := strings.Split(key, ".")
		node := tree
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}
	return tree, nil
}
