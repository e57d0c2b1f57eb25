package cliapp

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newListScriptsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-scripts",
		Short: "List all available scripts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return err
			}

			grouped, err := app.finder.List()
			if err != nil {
				return fmt.Errorf("listing scripts: %w", err)
			}
			if len(grouped) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scripts found in configured paths.")
				return nil
			}

			roots := make([]string, 0, len(grouped))
			for root := range grouped {
				roots = append(roots, root)
			}
			sort.Strings(roots)

			for _, root := range roots {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", root)
				for _, path := range grouped[root] {
					info, err := app.finder.GetInfo(path)
					if err != nil {
						continue
					}
					desc := info.Description
					if desc == "" {
						desc = "No description"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s - %s\n", info.Name, desc)
				}
			}
			return nil
		},
	}
}
