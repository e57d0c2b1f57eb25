package output

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format names the three stable render shapes (spec.md §4.6.5).
type Format string

const (
	FormatStructured Format = "structured"
	FormatJSON       Format = "json"
	FormatMarkdown   Format = "markdown"
)

// Renderer turns a CommandOutput into one of the three stable render
// shapes for the CLI's `--output-format` flag.
type Renderer struct {
	format Format
}

// NewRenderer returns a Renderer producing shape.
func NewRenderer(shape Format) *Renderer {
	return &Renderer{format: shape}
}

// Render dispatches to the renderer matching r.format, defaulting to
// structured for an unrecognized value.
func (r *Renderer) Render(out CommandOutput) string {
	switch r.format {
	case FormatJSON:
		return renderJSON(out)
	case FormatMarkdown:
		return renderMarkdown(out)
	default:
		return renderStructured(out)
	}
}

func statusEmoji(status string) string {
	if status == "success" {
		return "✅"
	}
	return "❌"
}

func statusLine(out CommandOutput) string {
	return fmt.Sprintf("%s %s", statusEmoji(out.Status), out.Summary)
}

// renderStructured is mom's default terminal-facing shape: emoji
// status line, optional duplicate-filter notice, head/tail windows,
// and a metadata footer (spec.md §4.6.5).
func renderStructured(out CommandOutput) string {
	var b strings.Builder
	b.WriteString(statusLine(out))

	if out.FilteredDuplicates > 0 {
		fmt.Fprintf(&b, "\n🔄 Filtered %d duplicate lines", out.FilteredDuplicates)
	}

	if len(out.HeadLines) > 0 {
		b.WriteString("\n\n📋 Output (head):\n")
		for _, line := range out.HeadLines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	if out.ExpandableBody != nil {
		lineCount := len(strings.Split(*out.ExpandableBody, "\n"))
		fmt.Fprintf(&b, "\n⚡ %d lines available (use --expand for full output)\n", lineCount)
	}

	if len(out.TailLines) > 0 {
		b.WriteString("\n📋 Output (tail):\n")
		for _, line := range out.TailLines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	if len(out.Metadata) > 0 {
		fmt.Fprintf(&b, "\n📊 Metadata: %v\n", out.Metadata)
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderJSON is the stable machine contract (spec.md §6): a plain
// json.Marshal of CommandOutput, pretty-printed.
func renderJSON(out CommandOutput) string {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"status":"error","summary":%q}`, err.Error())
	}
	return string(data)
}

// renderMarkdown produces a collapsible-details shape suited to PR
// comments and chat transcripts.
func renderMarkdown(out CommandOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s %s\n", statusEmoji(out.Status), out.Summary)

	if len(out.HeadLines) > 0 {
		b.WriteString("\n### Output (Head)\n```\n")
		b.WriteString(strings.Join(out.HeadLines, "\n"))
		b.WriteString("\n```\n")
	}

	if out.ExpandableBody != nil {
		fmt.Fprintf(&b, "\n<details><summary>Full Output (%d lines)</summary>\n\n```\n%s\n```\n</details>\n",
			out.TotalLines, *out.ExpandableBody)
	}

	if len(out.TailLines) > 0 {
		b.WriteString("\n### Output (Tail)\n```\n")
		b.WriteString(strings.Join(out.TailLines, "\n"))
		b.WriteString("\n```\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
