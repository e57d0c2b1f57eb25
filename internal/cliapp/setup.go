// Package cliapp wires mom's cobra command tree: global flags, config
// and logger attachment, env-file loading, and the verb commands
// described in spec.md §4.7.
package cliapp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/momo-sh/mom/internal/config"
	"github.com/momo-sh/mom/internal/logger"
)

// SetupGlobalConfig is mom's PersistentPreRunE: it loads an optional
// .env file, builds the layered config sources, loads the Manager,
// and attaches both config and logger to the command's context.
func SetupGlobalConfig(cmd *cobra.Command) error {
	if err := loadEnvironmentFile(cmd); err != nil {
		return fmt.Errorf("failed to load environment file: %w", err)
	}

	fsys := afero.NewOsFs()
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	explicit, _ := cmd.Flags().GetString("config")
	resolved, err := config.ResolveConfigPath(fsys, explicit, cwd)
	if err != nil {
		return fmt.Errorf("failed to resolve config file: %w", err)
	}

	sources := []config.Source{config.NewDefaultSource(), config.NewEnvSource()}
	var yamlSource *config.YAMLSource
	if resolved != "" {
		yamlSource = &config.YAMLSource{Path: resolved}
		sources = append(sources, yamlSource)
	}
	if cliValues := extractCLIFlags(cmd); len(cliValues) > 0 {
		sources = append(sources, config.NewCLISource(cliValues))
	}

	mgr := config.NewManager(fsys)
	if _, err := mgr.Load(ctx, sources...); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	level := logger.InfoLevel
	if verbose {
		level = logger.DebugLevel
	}
	log := logger.NewLogger(&logger.Config{Level: level, Output: os.Stderr})

	ctx = config.ContextWithManager(ctx, mgr)
	ctx = logger.ContextWithLogger(ctx, log)
	cmd.SetContext(ctx)

	return nil
}

// extractCLIFlags maps global CLI flags onto the config override keys
// they shadow (spec.md §4.7's `--output-format`/`--expand`).
func extractCLIFlags(cmd *cobra.Command) map[string]any {
	values := make(map[string]any)

	if format, err := cmd.Flags().GetString("output-format"); err == nil && cmd.Flags().Changed("output-format") {
		values["output.format"] = format
	}
	if expand, err := cmd.Flags().GetBool("expand"); err == nil && expand {
		values["output.head_lines"] = 1000
		values["output.tail_lines"] = 1000
	}
	return values
}

// loadEnvironmentFile loads --env-file (default ".env") into the OS
// environment, refusing to read outside the current working directory
// (path-traversal guard).
func loadEnvironmentFile(cmd *cobra.Command) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if envFile == "" {
		envFile = ".env"
	}

	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}
	if !filepath.IsAbs(envFile) {
		envFile = filepath.Join(pwd, envFile)
	}

	absPath, err := filepath.Abs(filepath.Clean(envFile))
	if err != nil {
		return fmt.Errorf("failed to resolve env file path: %w", err)
	}
	if !isPathWithinDirectory(absPath, pwd) {
		return fmt.Errorf("env file path %q is outside the working directory", envFile)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat env file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("env file path %q is not a regular file", envFile)
	}

	return godotenv.Load(absPath)
}

func isPathWithinDirectory(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != ".."
}

// defaultOutputFormat picks "structured" for an interactive terminal
// and "json" otherwise, matching the teacher's TTY-aware defaults.
func defaultOutputFormat() string {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return "structured"
	}
	return "json"
}

func cwdOrEmpty() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
