package cliapp

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newScriptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script <name> [args...]",
		Short: "Execute a discovered script by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return err
			}

			name := args[0]
			extra := args[1:]

			path, found := app.finder.Find(name)
			if !found {
				fmt.Fprintf(cmd.ErrOrStderr(), "Script %q not found\n", name)
				printSuggestions(cmd, app, name)
				return exitCodeError(1)
			}

			if info, _ := cmd.Flags().GetBool("info"); info {
				return printScriptInfo(cmd, app, path)
			}

			interpreter, err := app.finder.ResolveInterpreter(path)
			if err != nil {
				return fmt.Errorf("script %q: %w", name, err)
			}

			command := buildScriptCommand(interpreter, path, extra)
			result := app.exec.ExecuteScript(cmd.Context(), command, filepath.Dir(path))
			return app.renderResult(cmd, command, result)
		},
	}
	cmd.Flags().Bool("info", false, "show the script's discovered metadata instead of running it")
	return cmd
}

func printSuggestions(cmd *cobra.Command, app *appContext, name string) {
	suggestions, err := app.finder.Suggest(name)
	if err != nil || len(suggestions) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Run 'mom list-scripts' to see available scripts.")
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Did you mean one of these?")
	for _, s := range suggestions {
		fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", s)
	}
}

func printScriptInfo(cmd *cobra.Command, app *appContext, path string) error {
	info, err := app.finder.GetInfo(path)
	if err != nil {
		return fmt.Errorf("reading script info: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\nPath: %s\nExtension: %s\nExecutable: %t\nSize: %d bytes\n",
		info.Name, info.Path, info.Extension, info.Executable, info.Size)
	if info.Description != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Description: %s\n", info.Description)
	}
	return nil
}

// buildScriptCommand composes the shell line run through the
// executor: interpreter argv (if any), the script path, and each
// extra argument single-quoted against embedded shell metacharacters.
func buildScriptCommand(interpreter []string, path string, args []string) string {
	parts := make([]string, 0, len(interpreter)+1+len(args))
	parts = append(parts, interpreter...)
	parts = append(parts, shellQuote(path))
	for _, a := range args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
