// Package config implements the layered Config Loader (spec.md §4.1):
// a Source/provider abstraction merged deeply with dario.cat/mergo and
// decoded into a Config struct with go-viper/mapstructure.
package config

// CommandMapping is a verb's mapping from target-kind to shell
// template, with reserved keys "pattern" (default template) and
// "fallback" (secondary template).
type CommandMapping map[string]string

// ExecutionConfig controls the Shell Execution Engine (spec.md §4.4).
type ExecutionConfig struct {
	RetryCount              int `mapstructure:"retry_count"`
	AutoResetOnCacheFailure bool `mapstructure:"auto_reset_on_cache_failure"`
	TimeoutSeconds          int `mapstructure:"timeout"`
}

// PluginConfig describes a custom agent plugin entry (spec.md §4.5.1).
type PluginConfig map[string]any

// InteractiveConfig enables/disables agent tiers (spec.md §4.5).
type InteractiveConfig struct {
	EnableExecutingAgent    bool           `mapstructure:"enable_executing_agent"`
	EnableSpecializedAgents bool           `mapstructure:"enable_specialized_agents"`
	EnableGeneralAgent      bool           `mapstructure:"enable_general_agent"`
	Plugins                 []PluginConfig `mapstructure:"plugins"`
}

// OutputConfig controls the Output Formatter + Renderer (spec.md §4.6).
type OutputConfig struct {
	Format             string `mapstructure:"format"`
	HeadLines          int    `mapstructure:"head_lines"`
	TailLines          int    `mapstructure:"tail_lines"`
	MaxLineLength      int    `mapstructure:"max_line_length"`
	DuplicateThreshold int    `mapstructure:"duplicate_threshold"`
}

// Config is the fully merged configuration (spec.md §3).
type Config struct {
	CommandName     string                    `mapstructure:"command_name"`
	Commands        map[string]CommandMapping `mapstructure:"commands"`
	ScriptPaths     []string                  `mapstructure:"script_paths"`
	Execution       ExecutionConfig           `mapstructure:"execution"`
	Recovery        map[string]string         `mapstructure:"recovery"`
	RecoveryOrder   []string                  `mapstructure:"-"`
	Interactive     InteractiveConfig         `mapstructure:"interactive"`
	UserPreferences map[string]string         `mapstructure:"user_preferences"`
	Output          OutputConfig              `mapstructure:"output"`

	// Path is the resolved config file path, empty if defaults were used.
	Path string `mapstructure:"-"`
}

// Lookup is the result of resolving a verb (+ optional target kind)
// against Commands (spec.md §4.1 "Command lookup").
type Lookup struct {
	Primary  string
	Fallback string
}

// LookupCommand resolves verb/targetKind into a Lookup. Returns
// (Lookup{}, false) if the verb is absent from Commands.
func (c *Config) LookupCommand(verb, targetKind string) (Lookup, bool) {
	mapping, ok := c.Commands[verb]
	if !ok {
		return Lookup{}, false
	}
	var lookup Lookup
	if targetKind != "" {
		if tmpl, ok := mapping[targetKind]; ok {
			lookup.Primary = tmpl
		}
	}
	if lookup.Primary == "" {
		if tmpl, ok := mapping["pattern"]; ok {
			lookup.Primary = tmpl
		}
	}
	if tmpl, ok := mapping["fallback"]; ok {
		lookup.Fallback = tmpl
	}
	return lookup, true
}
