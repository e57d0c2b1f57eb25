package output

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var lintIssuePattern = regexp.MustCompile(`:\d+:\d+:`)

// formatTest highlights failure/error/assertion/traceback lines and
// extracts a passed/failed count when the output states one plainly
// (spec.md §4.6, grounded on the Python test-output formatter).
func (f *Formatter) formatTest(command string, lines []string, filtered int, status string) CommandOutput {
	var important []string
	for _, line := range lines {
		if containsAnyLower(line, "failed", "error", "assertion", "traceback") {
			important = append(important, line)
		}
	}

	passed, failedCount, known := extractPassFail(lines)
	summaryStatus := "unknown"
	if known {
		summaryStatus = "completed"
	}
	summary := fmt.Sprintf("Tests: %s - %d passed, %d failed", summaryStatus, passed, failedCount)

	generalCap := f.cfg.HeadLines / 2
	importantCap := f.cfg.HeadLines - generalCap
	head := appendCapped(nil, headN(lines, generalCap), 0)
	head = appendCapped(head, important, importantCap)

	var body *string
	if len(lines) > generalCap+f.cfg.TailLines {
		joined := strings.Join(lines[generalCap:len(lines)-f.cfg.TailLines], "\n")
		body = &joined
	}

	return CommandOutput{
		Command: command, Status: status, Summary: summary,
		HeadLines: head, TailLines: tailN(lines, f.cfg.TailLines), TotalLines: len(lines),
		FilteredDuplicates: filtered, ExpandableBody: body,
		Metadata: map[string]any{"passed": passed, "failed": failedCount, "status": summaryStatus},
	}
}

// formatBuild focuses head_lines on error/warning/built/compiled
// lines and counts each into metadata.
func (f *Formatter) formatBuild(command string, lines []string, filtered int, status string) CommandOutput {
	var important []string
	artifacts, warnings, errs := 0, 0, 0
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "error") || strings.Contains(lower, "warning") ||
			strings.Contains(lower, "built") || strings.Contains(lower, "compiled") {
			important = append(important, line)
		}
		if strings.Contains(lower, "built") || strings.Contains(lower, "compiled") {
			artifacts++
		}
		if strings.Contains(lower, "warning") {
			warnings++
		}
		if strings.Contains(lower, "error") {
			errs++
		}
	}

	summary := fmt.Sprintf("Build: %s - %d artifacts", status, artifacts)

	return CommandOutput{
		Command: command, Status: status, Summary: summary,
		HeadLines: headN(important, f.cfg.HeadLines), TailLines: tailN(lines, f.cfg.TailLines), TotalLines: len(lines),
		FilteredDuplicates: filtered,
		Metadata:           map[string]any{"artifacts": artifacts, "warnings": warnings, "errors": errs},
	}
}

// formatLint extracts file:line:col style issue lines.
func (f *Formatter) formatLint(command string, lines []string, filtered int, status string) CommandOutput {
	var issues []string
	for _, line := range lines {
		if lintIssuePattern.MatchString(line) {
			issues = append(issues, line)
		}
	}

	summary := "Lint: No issues found"
	if len(issues) > 0 {
		summary = fmt.Sprintf("Lint: %d issues found", len(issues))
	}

	var body *string
	if len(issues) > f.cfg.HeadLines {
		joined := strings.Join(issues[f.cfg.HeadLines:], "\n")
		body = &joined
	}

	return CommandOutput{
		Command: command, Status: status, Summary: summary,
		HeadLines: headN(issues, f.cfg.HeadLines), TailLines: tailN(lines, f.cfg.TailLines), TotalLines: len(lines),
		FilteredDuplicates: filtered, ExpandableBody: body,
		Metadata: map[string]any{"issues_count": len(issues)},
	}
}

// formatCreate surfaces CREATE/created lines as the head.
func (f *Formatter) formatCreate(command string, lines []string, filtered int, status string) CommandOutput {
	var created []string
	for _, line := range lines {
		if strings.Contains(line, "CREATE") || strings.Contains(strings.ToLower(line), "created") {
			created = append(created, line)
		}
	}

	return CommandOutput{
		Command: command, Status: status,
		Summary:            fmt.Sprintf("Created: %d files/directories", len(created)),
		HeadLines:          headN(created, f.cfg.HeadLines), TailLines: tailN(lines, f.cfg.TailLines), TotalLines: len(lines),
		FilteredDuplicates: filtered,
		Metadata:           map[string]any{"created_files": len(created)},
	}
}

// formatInstall surfaces installed/added/updated package lines; it
// also serves the npm and uv pattern families, which share the same
// summarization in the implementation this is grounded on.
func (f *Formatter) formatInstall(command string, lines []string, filtered int, status string) CommandOutput {
	var packages []string
	for _, line := range lines {
		if strings.Contains(line, "+") && containsAnyLower(line, "installed", "added", "updated") {
			packages = append(packages, line)
		}
	}

	return CommandOutput{
		Command: command, Status: status,
		Summary:            fmt.Sprintf("Install: %d packages processed", len(packages)),
		HeadLines:          headN(packages, f.cfg.HeadLines), TailLines: tailN(lines, f.cfg.TailLines), TotalLines: len(lines),
		FilteredDuplicates: filtered,
		Metadata:           map[string]any{"packages_count": len(packages)},
	}
}

// formatPytest parses a pytest summary line ("5 passed, 2 failed, 1
// skipped") and isolates the FAILURES/ERRORS block.
func (f *Formatter) formatPytest(command string, lines []string, filtered int, status string) CommandOutput {
	results := parsePytestSummary(lines)

	var failureLines []string
	inFailure := false
	for _, line := range lines {
		switch {
		case strings.Contains(line, "FAILURES") || strings.Contains(line, "ERRORS"):
			inFailure = true
		case inFailure && strings.HasPrefix(line, "="):
			inFailure = false
		case inFailure:
			failureLines = append(failureLines, line)
		}
	}

	summary := fmt.Sprintf("Pytest: %d passed, %d failed, %d skipped",
		results["passed"], results["failed"], results["skipped"])

	generalCap := f.cfg.HeadLines / 2
	failureCap := f.cfg.HeadLines - generalCap
	head := appendCapped(nil, headN(lines, generalCap), 0)
	head = appendCapped(head, failureLines, failureCap)

	var body *string
	if len(failureLines) > failureCap {
		joined := strings.Join(failureLines[failureCap:], "\n")
		body = &joined
	}

	metadata := make(map[string]any, len(results))
	for k, v := range results {
		metadata[k] = v
	}

	return CommandOutput{
		Command: command, Status: status, Summary: summary,
		HeadLines: head, TailLines: tailN(lines, f.cfg.TailLines), TotalLines: len(lines),
		FilteredDuplicates: filtered, ExpandableBody: body, Metadata: metadata,
	}
}

func extractPassFail(lines []string) (passed, failed int, known bool) {
	digits := regexp.MustCompile(`\d+`)
	for _, line := range lines {
		if strings.Contains(line, "passed") && strings.Contains(line, "failed") {
			nums := digits.FindAllString(line, -1)
			if len(nums) >= 2 {
				passed, _ = strconv.Atoi(nums[0])
				failed, _ = strconv.Atoi(nums[1])
				return passed, failed, true
			}
		}
	}
	return 0, 0, false
}

func parsePytestSummary(lines []string) map[string]int {
	results := map[string]int{"passed": 0, "failed": 0, "skipped": 0, "errors": 0}
	digits := regexp.MustCompile(`\d+`)

	for _, line := range lines {
		if !strings.Contains(line, "passed") {
			continue
		}
		if !(strings.Contains(line, "failed") || strings.Contains(line, "error") || strings.Contains(line, "skipped")) {
			continue
		}
		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			num := digits.FindString(part)
			if num == "" {
				continue
			}
			n, _ := strconv.Atoi(num)
			switch {
			case strings.Contains(part, "passed"):
				results["passed"] = n
			case strings.Contains(part, "failed"):
				results["failed"] = n
			case strings.Contains(part, "skipped"):
				results["skipped"] = n
			case strings.Contains(part, "error"):
				results["errors"] = n
			}
		}
		break
	}
	return results
}

func headN(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[:n]
}

func tailN(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

// appendCapped appends at most limit entries from extra to base;
// limit<=0 means unlimited.
func appendCapped(base []string, extra []string, limit int) []string {
	if limit > 0 && len(extra) > limit {
		extra = extra[:limit]
	}
	return append(base, extra...)
}
