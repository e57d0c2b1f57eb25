// Package discovery implements script discovery across a project's
// configured script paths (spec.md §4.2): exact-name lookup with a
// fixed extension ladder, a fuzzy substring fallback, executable-script
// classification, and interpreter selection for running a found
// script.
package discovery

import (
	"bufio"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/shlex"
	"github.com/spf13/afero"
)

// candidateExtensions is the fixed extension ladder tried after an
// exact, extension-less match (spec.md §4.2).
var candidateExtensions = []string{"", ".py", ".sh", ".js", ".ts"}

// scriptExtensions classifies a file as a script by suffix alone.
var scriptExtensions = map[string]bool{
	".py": true, ".sh": true, ".js": true, ".ts": true, ".mjs": true,
}

// interpreterByExtension maps a script extension to the argv prefix
// used to run it (spec.md §4.2).
var interpreterByExtension = map[string][]string{
	".py": {"python"},
	".sh": {"bash"},
	".js": {"node"},
	".ts": {"npx", "tsx"},
}

// ErrScriptUnexecutable is returned when no interpreter, executable
// bit, or shebang can be found for a script (spec.md §4.2).
var ErrScriptUnexecutable = fmt.Errorf("discovery: cannot determine how to execute script")

// Finder discovers scripts across a fixed set of search roots.
type Finder struct {
	fs    afero.Fs
	roots []string
}

// NewFinder returns a Finder searching roots in order. roots are
// expected to already be resolved, existing directories (see
// internal/config.ResolveScriptPaths).
func NewFinder(fsys afero.Fs, roots []string) *Finder {
	return &Finder{fs: fsys, roots: roots}
}

// Find looks up a script by name: exact match first (with the
// extension ladder), then a fuzzy substring pass across every root.
// Returns the resolved path and true, or ("", false) if nothing matched.
func (f *Finder) Find(name string) (string, bool) {
	for _, root := range f.roots {
		if !f.isDir(root) {
			continue
		}
		for _, ext := range candidateExtensions {
			candidate := filepath.Join(root, name+ext)
			if f.isFile(candidate) {
				return candidate, true
			}
		}
	}

	for _, root := range f.roots {
		entries, err := afero.ReadDir(f.fs, root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			stem := stemOf(entry.Name())
			if strings.Contains(stem, name) || strings.Contains(name, stem) {
				return filepath.Join(root, entry.Name()), true
			}
		}
	}

	return "", false
}

// FindByPattern glob-matches executable scripts under each root,
// returning a sorted, deduplicated list of absolute paths.
func (f *Finder) FindByPattern(pattern string) ([]string, error) {
	var matches []string
	for _, root := range f.roots {
		if !f.isDir(root) {
			continue
		}
		scoped := afero.NewBasePathFs(f.fs, root)
		iofs := afero.NewIOFS(scoped)
		hits, err := doublestar.Glob(iofs, pattern)
		if err != nil {
			return nil, fmt.Errorf("discovery: glob %q under %s: %w", pattern, root, err)
		}
		for _, hit := range hits {
			full := filepath.Join(root, hit)
			if f.isFile(full) && f.IsExecutableScript(full) {
				matches = append(matches, full)
			}
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// List groups every executable script by its containing root,
// matching spec.md §4.2's `list-scripts` verb.
func (f *Finder) List() (map[string][]string, error) {
	out := make(map[string][]string)
	for _, root := range f.roots {
		entries, err := afero.ReadDir(f.fs, root)
		if err != nil {
			continue
		}
		var scripts []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			full := filepath.Join(root, entry.Name())
			if f.IsExecutableScript(full) {
				scripts = append(scripts, full)
			}
		}
		if len(scripts) > 0 {
			sort.Strings(scripts)
			out[root] = scripts
		}
	}
	return out, nil
}

// Suggest returns up to 5 script stems whose name contains, or is
// contained by, query — the "did you mean" hint for a failed Find
// (spec.md's SUPPLEMENTED FEATURES).
func (f *Finder) Suggest(query string) ([]string, error) {
	grouped, err := f.List()
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(query)

	var all []string
	for _, scripts := range grouped {
		for _, path := range scripts {
			all = append(all, stemOf(filepath.Base(path)))
		}
	}
	sort.Strings(all)

	var suggestions []string
	for _, stem := range all {
		lower := strings.ToLower(stem)
		if strings.Contains(lower, query) || strings.Contains(query, lower) {
			suggestions = append(suggestions, stem)
			if len(suggestions) == 5 {
				break
			}
		}
	}
	return suggestions, nil
}

// IsExecutableScript reports whether path looks runnable: a known
// script extension, the executable bit, or a shebang line.
func (f *Finder) IsExecutableScript(path string) bool {
	if scriptExtensions[filepath.Ext(path)] {
		return true
	}
	if info, err := f.fs.Stat(path); err == nil && info.Mode()&0o111 != 0 {
		return true
	}
	return f.hasShebang(path)
}

func (f *Finder) hasShebang(path string) bool {
	file, err := f.fs.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return false
	}
	return strings.HasPrefix(scanner.Text(), "#!")
}

// ResolveInterpreter returns the argv prefix used to run path:
// extension mapping first, then the executable bit (run directly),
// then the shebang line, split with shlex so a multi-word interpreter
// like "npx tsx" becomes two argv entries.
func (f *Finder) ResolveInterpreter(path string) ([]string, error) {
	if argv, ok := interpreterByExtension[filepath.Ext(path)]; ok {
		return argv, nil
	}
	if info, err := f.fs.Stat(path); err == nil && info.Mode()&0o111 != 0 {
		return nil, nil
	}

	file, err := f.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrScriptUnexecutable, path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: %s", ErrScriptUnexecutable, path)
	}
	line := scanner.Text()
	if !strings.HasPrefix(line, "#!") {
		return nil, fmt.Errorf("%w: %s", ErrScriptUnexecutable, path)
	}

	argv, err := shlex.Split(strings.TrimSpace(line[2:]))
	if err != nil || len(argv) == 0 {
		return nil, fmt.Errorf("%w: %s: malformed shebang", ErrScriptUnexecutable, path)
	}
	return argv, nil
}

func (f *Finder) isDir(path string) bool {
	info, err := f.fs.Stat(path)
	return err == nil && info.IsDir()
}

func (f *Finder) isFile(path string) bool {
	info, err := f.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func stemOf(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
