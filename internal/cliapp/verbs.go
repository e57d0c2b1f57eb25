package cliapp

import (
	"fmt"

	"github.com/spf13/cobra"
)

// mappedVerbCommand builds one of the create/test/build/format verbs:
// each resolves targetKind/target against the configured command
// mapping and runs it through the retry/recovery/fallback engine
// (spec.md §4.1, §4.4).
func mappedVerbCommand(use, short, verb string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return err
			}

			target := args[0]
			extra := args[1:]

			// target doubles as the target-kind lookup key (e.g. "python"
			// for `create python myapp`) and as the {target}/{name}
			// substitution value, matching how the command mapping this
			// package is grounded on resolves target_type == target.
			result, err := app.exec.ExecuteCommand(cmd.Context(), verb, target, target, extra, envPairs())
			if err != nil {
				return fmt.Errorf("%s: %w", verb, err)
			}
			return app.renderResult(cmd, verb+" "+target, result)
		},
	}
}

func newCreateCommand() *cobra.Command {
	return mappedVerbCommand("create <kind> [args...]", "Create new projects/modules", "create")
}

func newTestCommand() *cobra.Command {
	return mappedVerbCommand("test <target> [args...]", "Run tests for the specified target", "test")
}

func newBuildCommand() *cobra.Command {
	return mappedVerbCommand("build <target> [args...]", "Build the specified target", "build")
}

func newFormatCommand() *cobra.Command {
	return mappedVerbCommand("format <target> [args...]", "Format code for the specified target", "format")
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <command...>",
		Short: "Execute an arbitrary shell command through mom's execution engine",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			command := joinArgs(args)
			result := app.exec.ExecuteRaw(cmd.Context(), command, app.cwd)
			return app.renderResult(cmd, command, result)
		},
	}
}

func joinArgs(args []string) string {
	out := args[0]
	for _, a := range args[1:] {
		out += " " + a
	}
	return out
}
