package config

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// ResolveScriptPaths expands cfg.ScriptPaths into absolute, existing
// directories (spec.md §4.1 "Script paths"). Each pattern is resolved
// relative to the config file's directory, or cwd if cfg.Path is
// empty (built-in defaults), glob segments are expanded, and entries
// that don't exist or aren't directories are dropped.
func ResolveScriptPaths(fsys afero.Fs, cfg *Config, cwd string) ([]string, error) {
	base := cwd
	if cfg.Path != "" {
		base = filepath.Dir(cfg.Path)
	}

	scoped := afero.NewBasePathFs(fsys, base)
	iofs := afero.NewIOFS(scoped)
	seen := make(map[string]bool)
	var resolved []string

	for _, pattern := range cfg.ScriptPaths {
		rel := filepath.ToSlash(pattern)
		if filepath.IsAbs(pattern) {
			r, err := doublestarRel(base, pattern)
			if err != nil {
				continue
			}
			rel = r
		}

		matches, err := doublestar.Glob(iofs, rel)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			abs := filepath.Join(base, m)
			if seen[abs] {
				continue
			}
			info, err := fsys.Stat(abs)
			if err != nil || !info.IsDir() {
				continue
			}
			seen[abs] = true
			resolved = append(resolved, abs)
		}
	}

	sort.Strings(resolved)
	return resolved, nil
}

// doublestarRel turns an absolute or glob-bearing path into a slash
// path relative to base, the form doublestar.Glob expects when
// matching against an fs.FS rooted at base.
func doublestarRel(base, full string) (string, error) {
	rel, err := filepath.Rel(base, full)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
