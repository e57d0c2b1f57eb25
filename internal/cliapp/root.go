package cliapp

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momo-sh/mom/pkg/version"
)

// RootCmd builds mom's full command tree (spec.md §4.7).
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mom",
		Short: "Universal command mapping system for AI-friendly developer tools",
		Long: `mom maps a small set of verbs (create, test, build, format, script, run)
onto shell command templates configured per project, mediating any
interactive prompts the underlying tool raises and rendering output in
a form built for both humans and AI agents.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return SetupGlobalConfig(cmd) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			initFlag, _ := cmd.Flags().GetBool("init-config")
			if initFlag {
				return runInitConfig(cmd)
			}
			return cmd.Help()
		},
	}

	addGlobalFlags(root)
	root.AddCommand(
		newCreateCommand(),
		newTestCommand(),
		newBuildCommand(),
		newFormatCommand(),
		newScriptCommand(),
		newListScriptsCommand(),
		newRunCommand(),
		newConfigCommand(),
		newVersionCommand(),
	)
	return root
}

func addGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().String("config", "", "specify config file path")
	root.PersistentFlags().String("env-file", "", "load environment variables from this file (default .env)")
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	root.PersistentFlags().Bool("ai-output", true, "use AI-tailored output formatting")
	root.PersistentFlags().Bool("raw-output", false, "print stdout/stderr verbatim instead of AI-tailored output")
	root.PersistentFlags().String("output-format", defaultOutputFormat(), "output format: structured, json, markdown")
	root.PersistentFlags().Bool("expand", false, "show full output (disable truncation)")

	root.Flags().Bool("init-config", false, "initialize mom.yaml in the current directory")
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "show version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "mom version %s\ncommit: %s\nbuilt: %s\n",
				info.Version, info.CommitHash, info.BuildDate)
			return nil
		},
	}
}
