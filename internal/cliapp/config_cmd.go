package cliapp

import (
	"fmt"

	yaml "github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/momo-sh/mom/internal/agent"
	"github.com/momo-sh/mom/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or validate mom's resolved configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return fmt.Errorf("mom: configuration not loaded")
			}

			show, _ := cmd.Flags().GetBool("show")
			validate, _ := cmd.Flags().GetBool("validate")
			stats, _ := cmd.Flags().GetBool("stats")

			if !show && !validate && !stats {
				show = true
			}

			if show {
				if err := printConfig(cmd, cfg); err != nil {
					return err
				}
			}
			if stats {
				printAgentStats(cmd)
			}
			if validate {
				if err := config.Validate(cfg); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Configuration validation failed: %v\n", err)
					return exitCodeError(1)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			}
			return nil
		},
	}
	cmd.Flags().Bool("show", false, "show the resolved configuration")
	cmd.Flags().Bool("validate", false, "validate the resolved configuration")
	cmd.Flags().Bool("stats", false, "show built-in agent usage statistics")
	return cmd
}

func printConfig(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.Path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration loaded from: %s\n", cfg.Path)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Using default configuration (no config file found)")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("rendering configuration: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

// printAgentStats shows the built-in agent roster and usage counters.
// It builds a throwaway registry rather than the one an actual
// command execution would use, since `config --stats` is a static
// snapshot of agent names, not a report across prior invocations
// (mom is single-shot; nothing persists agent stats between runs).
func printAgentStats(cmd *cobra.Command) {
	reg := agent.NewDefaultRegistry(nil)
	fmt.Fprintln(cmd.OutOrStdout(), "Registered agents:")
	for name, st := range reg.UsageStats() {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %d uses, %.0f%% success\n", name, st.UsageCount, st.SuccessRate()*100)
	}
}
