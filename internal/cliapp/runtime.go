package cliapp

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/momo-sh/mom/internal/agent"
	"github.com/momo-sh/mom/internal/config"
	"github.com/momo-sh/mom/internal/discovery"
	"github.com/momo-sh/mom/internal/executor"
	"github.com/momo-sh/mom/internal/logger"
	"github.com/momo-sh/mom/internal/output"
)

// appContext bundles the components every verb command needs. It is
// built fresh per invocation, once SetupGlobalConfig has attached a
// Manager and Logger to the command's context.
type appContext struct {
	cfg      *config.Config
	log      logger.Logger
	exec     *executor.Executor
	registry *agent.Registry
	finder   *discovery.Finder
	cwd      string
}

// newAppContext wires a registry, executor, and script finder over
// the config and logger SetupGlobalConfig already loaded.
func newAppContext(cmd *cobra.Command) (*appContext, error) {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, fmt.Errorf("mom: configuration not loaded")
	}
	log := logger.FromContext(ctx)

	cwd := cwdOrEmpty()
	if cwd == "" {
		return nil, fmt.Errorf("mom: failed to determine current working directory")
	}

	registry := agent.NewDefaultRegistry(nil)
	ex := executor.NewWithRegistry(cfg, registry, log)

	fsys := afero.NewOsFs()
	roots, err := config.ResolveScriptPaths(fsys, cfg, cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve script paths: %w", err)
	}

	return &appContext{
		cfg:      cfg,
		log:      log,
		exec:     ex,
		registry: registry,
		finder:   discovery.NewFinder(fsys, roots),
		cwd:      cwd,
	}, nil
}

// formatterConfig overlays the resolved config's output section onto
// output.DefaultConfig, leaving any zero field at its default.
func (a *appContext) formatterConfig() output.Config {
	def := output.DefaultConfig()
	oc := a.cfg.Output
	if oc.HeadLines > 0 {
		def.HeadLines = oc.HeadLines
	}
	if oc.TailLines > 0 {
		def.TailLines = oc.TailLines
	}
	if oc.MaxLineLength > 0 {
		def.MaxLineLength = oc.MaxLineLength
	}
	if oc.DuplicateThreshold > 0 {
		def.DuplicateThreshold = oc.DuplicateThreshold
	}
	return def
}

// renderShape resolves the effective render format: the config's
// output.format (from the config file, MOM_OUTPUT_FORMAT, or
// --output-format), falling back to the TTY-aware defaultOutputFormat
// when none of them set it.
func (a *appContext) renderShape() output.Format {
	format := a.cfg.Output.Format
	if format == "" {
		format = defaultOutputFormat()
	}
	return output.Format(format)
}

// exitError carries a subprocess exit code out of a cobra RunE so
// main can surface it via os.Exit without cobra printing a spurious
// "Error:" line for a plain nonzero exit (spec.md §4.7).
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("mom: command exited %d", e.code) }

// ExitCode extracts the process exit code from an error returned by a
// cobra command, defaulting to 1 for any other non-nil error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return 1
}

// IsExitSignal reports whether err is only a subprocess exit code
// smuggled through cobra's error return, as opposed to a real failure
// (bad flags, config errors) that should be printed to the user.
func IsExitSignal(err error) bool {
	_, ok := err.(*exitError)
	return ok
}

func exitCodeError(code int) error {
	if code == 0 {
		return nil
	}
	return &exitError{code: code}
}

// renderResult formats and prints result, honoring --raw-output and
// --ai-output=false (verbatim stdout/stderr, spec.md §4.7 "raw mode"),
// and returns an error carrying result's exit code.
func (a *appContext) renderResult(cmd *cobra.Command, command string, result executor.Result) error {
	raw, _ := cmd.Flags().GetBool("raw-output")
	aiOutput, _ := cmd.Flags().GetBool("ai-output")
	if raw || !aiOutput {
		fmt.Fprint(cmd.OutOrStdout(), result.Stdout)
		fmt.Fprint(cmd.ErrOrStderr(), result.Stderr)
		return exitCodeError(result.ReturnCode)
	}

	formatter := output.NewFormatter(a.formatterConfig())
	formatted := formatter.Format(command, result.Stdout, result.Stderr, result.ReturnCode)
	renderer := output.NewRenderer(a.renderShape())
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(formatted))

	return exitCodeError(result.ReturnCode)
}

func envPairs() []string {
	return os.Environ()
}
