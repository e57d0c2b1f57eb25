package discovery

import (
	"bufio"
	"path/filepath"
	"strings"
)

// Info describes a single discovered script, surfaced by `mom
// list-scripts` and `mom script --info` (spec.md §4.2, SUPPLEMENTED
// FEATURES).
type Info struct {
	Name        string
	Path        string
	Extension   string
	Size        int64
	Executable  bool
	Description string
}

// GetInfo stats path and tries to pull a one-line description out of
// it: a module docstring for Python, a leading comment for everything
// else.
func (f *Finder) GetInfo(path string) (Info, error) {
	stat, err := f.fs.Stat(path)
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Name:       stemOf(filepath.Base(path)),
		Path:       path,
		Extension:  filepath.Ext(path),
		Size:       stat.Size(),
		Executable: stat.Mode()&0o111 != 0,
	}
	info.Description = f.describe(path)
	return info, nil
}

// describe returns a best-effort one-line description, or "" if none
// could be extracted. Errors reading the file are swallowed: a
// missing description is not a discovery failure.
func (f *Finder) describe(path string) string {
	file, err := f.fs.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	lines := make([]string, 0, 10)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() && len(lines) < 10 {
		lines = append(lines, scanner.Text())
	}

	if filepath.Ext(path) == ".py" {
		return describePythonDocstring(lines)
	}
	return describeLeadingComment(lines)
}

// describePythonDocstring looks for a module docstring, either a
// single-line `"""..."""` or the first line of a multi-line one.
func describePythonDocstring(lines []string) string {
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		quote := ""
		switch {
		case strings.HasPrefix(line, `"""`):
			quote = `"""`
		case strings.HasPrefix(line, "'''"):
			quote = "'''"
		default:
			continue
		}
		if strings.Count(line, quote) >= 2 {
			return strings.TrimSpace(strings.Trim(line, quote))
		}
		if i+1 < len(lines) {
			return strings.TrimSpace(lines[i+1])
		}
		return ""
	}
	return ""
}

// describeLeadingComment looks for the first "# ..." comment in the
// first 10 lines that isn't a shebang and is long enough to be a real
// description rather than a separator or directive.
func describeLeadingComment(lines []string) string {
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(line, "#") {
			continue
		}
		candidate := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if strings.HasPrefix(candidate, "!") {
			continue
		}
		if len(candidate) > 10 {
			return candidate
		}
	}
	return ""
}
