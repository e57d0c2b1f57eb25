package cliapp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/momo-sh/mom/internal/config"
)

// runInitConfig writes config.DefaultConfigYAML to mom.yaml in the
// current directory, refusing to clobber an existing file. A flock on
// the target path guards against two concurrent `--init-config`
// invocations racing to create it.
func runInitConfig(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}
	path := filepath.Join(cwd, config.ConfigFileName)

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquiring init-config lock: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(path + ".lock")
	}()

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration already exists at %s\n", path)
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking for existing config: %w", err)
	}

	if err := os.WriteFile(path, []byte(config.DefaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration at %s\n", path)
	return nil
}
