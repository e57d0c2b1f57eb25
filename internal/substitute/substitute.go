// Package substitute expands {identifier} placeholders in command
// templates against a substitution context map.
package substitute

import (
	"strings"

	"github.com/momo-sh/mom/internal/logger"
)

// Context is the substitution context built from CLI args and the
// process environment (spec.md §4.3).
type Context map[string]string

// Expand replaces every {identifier} occurrence in template with the
// matching value from ctx. Unknown identifiers are left intact and a
// warning is logged. identifier = [A-Za-z_][A-Za-z0-9_]*.
func Expand(template string, ctx Context, log logger.Logger) string {
	var out strings.Builder
	out.Grow(len(template))

	i := 0
	for i < len(template) {
		ch := template[i]
		if ch != '{' {
			out.WriteByte(ch)
			i++
			continue
		}
		end := indexIdentifierClose(template, i+1)
		if end < 0 {
			out.WriteByte(ch)
			i++
			continue
		}
		name := template[i+1 : end]
		if val, ok := ctx[name]; ok {
			out.WriteString(val)
		} else {
			if log != nil {
				log.Warn("unknown placeholder left literal", "identifier", name)
			}
			out.WriteString(template[i : end+1])
		}
		i = end + 1
	}
	return out.String()
}

// indexIdentifierClose returns the index of the closing '}' if
// template[start:] is a valid identifier immediately followed by '}',
// or -1 otherwise. start points just past the opening '{'.
func indexIdentifierClose(template string, start int) int {
	if start >= len(template) {
		return -1
	}
	if !isIdentStart(template[start]) {
		return -1
	}
	i := start + 1
	for i < len(template) && isIdentChar(template[i]) {
		i++
	}
	if i < len(template) && template[i] == '}' {
		return i
	}
	return -1
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentChar(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// BuildContext builds the substitution context from a target, name, the
// joined CLI args, and the process environment (spec.md §4.3). env
// entries are of the form "KEY=VALUE" as returned by os.Environ.
func BuildContext(target, name string, args []string, env []string) Context {
	ctx := make(Context, len(env)+3)
	for _, kv := range env {
		if idx := strings.IndexByte(kv, '='); idx >= 0 {
			ctx[kv[:idx]] = kv[idx+1:]
		}
	}
	ctx["target"] = target
	ctx["name"] = name
	ctx["args"] = strings.Join(args, " ")
	return ctx
}
