package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/afero"
)

// ConfigFileName is the file mom looks for in the working directory
// and each of its ancestors.
const ConfigFileName = "mom.yaml"

// Manager owns the merged Config for one invocation of mom. It has no
// watcher: mom is a single-shot CLI, not a long-running server, so
// there is nothing to reload.
type Manager struct {
	fs      afero.Fs
	current *Config
}

// NewManager returns a Manager reading the filesystem through fsys. A
// nil fsys defaults to the OS filesystem.
func NewManager(fsys afero.Fs) *Manager {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Manager{fs: fsys}
}

// Get returns the last configuration loaded by Load, or nil.
func (m *Manager) Get() *Config {
	return m.current
}

// Load runs every source in order, deep-merging each contribution over
// the last (spec.md §4.1 "Merge semantics") and decoding the result
// into a Config. Later sources win on scalar/list conflicts; map keys
// merge recursively.
func (m *Manager) Load(ctx context.Context, sources ...Source) (*Config, error) {
	merged := map[string]any{}
	var recoveryOrder []string
	var path string

	for _, src := range sources {
		tree, err := src.Load(ctx, m.fs)
		if err != nil {
			return nil, err
		}
		if tree == nil {
			continue
		}
		if err := mergo.Merge(&merged, tree, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("config: merging %s: %w", src.Name(), err)
		}
		if ys, ok := src.(*YAMLSource); ok {
			path = ys.Path
			if len(ys.RecoveryOrder) > 0 {
				recoveryOrder = ys.RecoveryOrder
			}
		}
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("config: building decoder: %w", err)
	}
	if err := decoder.Decode(merged); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	cfg.Path = path
	cfg.RecoveryOrder = recoveryOrder
	if cfg.RecoveryOrder == nil {
		for key := range cfg.Recovery {
			cfg.RecoveryOrder = append(cfg.RecoveryOrder, key)
		}
	}

	m.current = &cfg
	return &cfg, nil
}

// Validate enforces spec.md §4.1's ConfigInvalid rule for `config
// --validate`: the commands and script_paths sections must be present.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil configuration", ErrInvalid)
	}
	if len(cfg.Commands) == 0 {
		return fmt.Errorf("%w: missing \"commands\" section", ErrInvalid)
	}
	if len(cfg.ScriptPaths) == 0 {
		return fmt.Errorf("%w: missing \"script_paths\" section", ErrInvalid)
	}
	return nil
}

// ResolveConfigPath implements spec.md §4.1's search order: the
// working directory, then each ancestor upward to root, then a
// user-home dotfile, then a system path. The first existing file
// wins. An empty result with a nil error means "use built-in
// defaults"; explicit non-empty paths that don't exist return
// ErrNotFound.
func ResolveConfigPath(fsys afero.Fs, explicit, cwd string) (string, error) {
	if explicit != "" {
		if exists(fsys, explicit) {
			return explicit, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, explicit)
	}

	for _, candidate := range searchCandidates(cwd) {
		if exists(fsys, candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

func searchCandidates(cwd string) []string {
	candidates := make([]string, 0, 8)

	dir := cwd
	for {
		candidates = append(candidates, filepath.Join(dir, ConfigFileName))
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".mom.yaml"))
	}
	candidates = append(candidates, filepath.Join(string(filepath.Separator), "etc", "mom", "config.yaml"))

	return candidates
}

func exists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
