// Command mom maps a small set of verbs onto project-configured shell
// templates, mediating interactive prompts and rendering output for
// both humans and AI agents.
package main

import (
	"fmt"
	"os"

	"github.com/momo-sh/mom/internal/cliapp"
)

func main() {
	cmd := cliapp.RootCmd()
	err := cmd.Execute()
	if err != nil && !cliapp.IsExitSignal(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cliapp.ExitCode(err))
}
