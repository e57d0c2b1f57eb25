// Package output implements the Output Formatter (spec.md §4.6):
// cleaning and bounding subprocess output into a stable, machine
// parseable CommandOutput, for three rendering shapes.
package output

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI color/style escape codes from s. Exported so
// other packages evaluating raw subprocess output (the prompt-detection
// heuristic in internal/router) apply the same stripping rule before
// inspecting text, per spec.md §4.5.2/§4.6.1.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// CommandOutput is the canonical machine interface described in
// spec.md §6: the json render of this struct is the stable contract.
type CommandOutput struct {
	Command            string         `json:"command"`
	Status             string         `json:"status"`
	Summary            string         `json:"summary"`
	HeadLines          []string       `json:"head_lines"`
	TailLines          []string       `json:"tail_lines"`
	TotalLines         int            `json:"total_lines"`
	FilteredDuplicates int            `json:"filtered_duplicates"`
	ExpandableBody     *string        `json:"expandable_body"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

// Config controls line budgets and duplicate filtering (spec.md §6
// `output` section).
type Config struct {
	HeadLines          int
	TailLines          int
	MaxLineLength      int
	DuplicateThreshold int
}

// DefaultConfig matches the Python defaults this package is grounded
// on: 10 head lines, 10 tail lines, 200-char lines, threshold 3.
func DefaultConfig() Config {
	return Config{HeadLines: 10, TailLines: 10, MaxLineLength: 200, DuplicateThreshold: 3}
}

// Formatter turns raw stdout/stderr/exit-code triples into a
// CommandOutput, picking a family-specific summarizer when the
// command matches one (spec.md §4.6).
type Formatter struct {
	cfg Config
}

// NewFormatter returns a Formatter bound to cfg.
func NewFormatter(cfg Config) *Formatter {
	return &Formatter{cfg: cfg}
}

type formatterFunc func(f *Formatter, command string, lines []string, filtered int, status string) CommandOutput

// exactFormatters are tried in order, by substring containment in the
// command string, before the regex family formatters (spec.md §4.6).
var exactFormatters = []struct {
	substr string
	fn     formatterFunc
}{
	{"test", (*Formatter).formatTest},
	{"build", (*Formatter).formatBuild},
	{"lint", (*Formatter).formatLint},
	{"create", (*Formatter).formatCreate},
	{"install", (*Formatter).formatInstall},
}

var patternFormatters = []struct {
	re *regexp.Regexp
	fn formatterFunc
}{
	{regexp.MustCompile(`nx run.*:test`), (*Formatter).formatTest},
	{regexp.MustCompile(`nx run.*:build`), (*Formatter).formatBuild},
	{regexp.MustCompile(`pytest`), (*Formatter).formatPytest},
	{regexp.MustCompile(`npm`), (*Formatter).formatInstall},
	{regexp.MustCompile(`uv`), (*Formatter).formatInstall},
}

// Format runs the full pipeline: combine, clean/dedupe, then dispatch
// to the first matching family formatter or the default formatter.
func (f *Formatter) Format(command, stdout, stderr string, returnCode int) CommandOutput {
	status := "success"
	if returnCode != 0 {
		status = "error"
	}

	combined := combineOutput(stdout, stderr)
	cleaned, filtered := f.cleanAndFilter(combined)

	for _, ef := range exactFormatters {
		if strings.Contains(command, ef.substr) {
			return ef.fn(f, command, cleaned, filtered, status)
		}
	}
	for _, pf := range patternFormatters {
		if pf.re.MatchString(command) {
			return pf.fn(f, command, cleaned, filtered, status)
		}
	}
	return f.formatDefault(command, cleaned, filtered, status)
}

// combineOutput concatenates stdout lines then stderr lines, tagging
// the latter with "[STDERR] " (spec.md §4.6), dropping blank lines.
func combineOutput(stdout, stderr string) []string {
	var lines []string
	if s := strings.TrimSpace(stdout); s != "" {
		lines = append(lines, strings.Split(s, "\n")...)
	}
	if s := strings.TrimSpace(stderr); s != "" {
		for _, line := range strings.Split(s, "\n") {
			lines = append(lines, "[STDERR] "+line)
		}
	}
	out := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// cleanAndFilter truncates long lines, strips ANSI escapes, and caps
// any repeated line at DuplicateThreshold occurrences (spec.md §8,
// testable property on filtered_duplicates).
func (f *Formatter) cleanAndFilter(lines []string) ([]string, int) {
	maxLen := f.cfg.MaxLineLength
	threshold := f.cfg.DuplicateThreshold

	cleaned := make([]string, 0, len(lines))
	counts := make(map[string]int)

	for _, line := range lines {
		line = StripANSI(line)
		if maxLen > 0 && len(line) > maxLen {
			line = line[:maxLen-3] + "..."
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		hash := hashLine(line)
		counts[hash]++
		if counts[hash] <= threshold {
			cleaned = append(cleaned, line)
		}
	}

	filtered := 0
	for _, count := range counts {
		if count > threshold {
			filtered += count - threshold
		}
	}
	return cleaned, filtered
}

func hashLine(line string) string {
	sum := md5.Sum([]byte(line))
	return hex.EncodeToString(sum[:])
}

func (f *Formatter) formatDefault(command string, lines []string, filtered int, status string) CommandOutput {
	total := len(lines)

	var head, tail []string
	var body *string
	if total <= f.cfg.HeadLines+f.cfg.TailLines {
		head = lines
	} else {
		head = lines[:f.cfg.HeadLines]
		tail = lines[total-f.cfg.TailLines:]
		joined := strings.Join(lines[f.cfg.HeadLines:total-f.cfg.TailLines], "\n")
		body = &joined
	}

	return CommandOutput{
		Command:            command,
		Status:             status,
		Summary:            f.generateSummary(command, lines, status),
		HeadLines:          head,
		TailLines:          tail,
		TotalLines:         total,
		FilteredDuplicates: filtered,
		ExpandableBody:     body,
	}
}

func (f *Formatter) generateSummary(command string, lines []string, status string) string {
	if len(lines) == 0 {
		return fmt.Sprintf("Command %q completed with %s", command, status)
	}
	if status == "error" {
		for _, line := range lines {
			if strings.Contains(strings.ToLower(line), "error") {
				return "Error: " + truncate(line, 100)
			}
		}
	}
	return fmt.Sprintf("Command %q %s - %d lines of output", command, status, len(lines))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func containsAnyLower(line string, keywords ...string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
