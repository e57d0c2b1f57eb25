// Package executor implements the Shell Execution Engine (spec.md
// §4.4): parameter substitution, retry-with-recovery, and
// primary/fallback sequencing around the Interactive Agent Subsystem
// in internal/router.
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/momo-sh/mom/internal/agent"
	"github.com/momo-sh/mom/internal/config"
	"github.com/momo-sh/mom/internal/logger"
	"github.com/momo-sh/mom/internal/router"
	"github.com/momo-sh/mom/internal/substitute"
)

// ErrNoMapping indicates the resolved verb has no command mapping in
// the active configuration (spec.md §4.1).
var ErrNoMapping = errors.New("executor: no command mapping")

// Runner executes subprocesses through a Router; it exists so tests
// can substitute a stub without spawning real processes.
type Runner interface {
	Execute(ctx context.Context, command string, ectx agent.ExecutionContext) agent.CommandResult
}

// Executor runs mapped verbs through the retry / recovery / fallback
// algorithm in spec.md §4.4. Raw commands and scripts run exactly once,
// with no retry, recovery, or fallback.
type Executor struct {
	cfg       *config.Config
	runner    Runner
	log       logger.Logger
	sessionID string
}

// New returns an Executor bound to cfg, dispatching subprocesses
// through runner (usually a *router.Router). sessionID tags every
// agent.ExecutionContext this Executor builds so an escalation
// callback or interaction log can correlate prompts back to a single
// invocation.
func New(cfg *config.Config, runner Runner, log logger.Logger) *Executor {
	if log == nil {
		log = logger.NewLogger(nil)
	}
	return &Executor{cfg: cfg, runner: runner, log: log, sessionID: uuid.NewString()}
}

// NewWithRegistry is a convenience constructor wiring a router.Router
// over registry.
func NewWithRegistry(cfg *config.Config, registry *agent.Registry, log logger.Logger) *Executor {
	return New(cfg, router.New(registry), log)
}

// Result is the outcome of running a verb or raw command to
// completion, after every retry, recovery, and fallback attempt.
type Result struct {
	agent.CommandResult
	Attempts int
}

// Success reports whether the final attempt exited 0.
func (r Result) Success() bool { return r.ReturnCode == 0 }

// ExecuteCommand runs the template resolved for verb/targetKind
// against args, substituting {target}/{name}/{args}/env placeholders
// (spec.md §4.1, §4.3), then running primary and — if every primary
// attempt fails — fallback through the retry loop.
func (ex *Executor) ExecuteCommand(
	ctx context.Context, verb, targetKind, target string, args []string, env []string,
) (Result, error) {
	lookup, ok := ex.cfg.LookupCommand(verb, targetKind)
	if !ok || lookup.Primary == "" {
		return Result{}, fmt.Errorf("%w: verb %q", ErrNoMapping, verb)
	}

	subCtx := substitute.BuildContext(target, target, args, env)

	result := ex.runWithRetries(ctx, lookup.Primary, subCtx, target)
	if result.Success() || lookup.Fallback == "" {
		return result, nil
	}

	ex.log.Info("primary command failed, trying fallback", "verb", verb, "target", target)
	return ex.runWithRetries(ctx, lookup.Fallback, subCtx, target), nil
}

// ExecuteRaw runs command verbatim with no mapping or substitution
// (spec.md §4.5 "run" verb).
func (ex *Executor) ExecuteRaw(ctx context.Context, command, workingDir string) Result {
	return ex.runAttempt(ctx, command, workingDir, "")
}

// ExecuteScript runs command (already resolved to an interpreter
// invocation) with cwd set to the script's own directory (spec.md
// §4.4 "Working directory").
func (ex *Executor) ExecuteScript(ctx context.Context, command, scriptDir string) Result {
	return ex.runAttempt(ctx, command, scriptDir, "")
}

// runWithRetries implements the attempt loop: retry_count+1 tries,
// running recovery commands before any retry (attempt > 0) when
// auto_reset_on_cache_failure is set (spec.md §4.4 step 2).
func (ex *Executor) runWithRetries(ctx context.Context, template string, subCtx substitute.Context, task string) Result {
	retryCount := ex.cfg.Execution.RetryCount
	var last Result

	for attempt := 0; attempt <= retryCount; attempt++ {
		if attempt > 0 {
			ex.log.Info("retrying", "attempt", attempt, "of", retryCount)
			if ex.cfg.Execution.AutoResetOnCacheFailure {
				ex.runRecoveryCommands(ctx)
			}
		}

		command := substitute.Expand(template, subCtx, ex.log)
		last = ex.runAttempt(ctx, command, "", task)
		last.Attempts = attempt + 1
		if last.Success() {
			return last
		}
	}
	return last
}

// runRecoveryCommands runs every recovery command in declaration
// order (spec.md §4.4 step 2, ordering preserved by
// config.Config.RecoveryOrder).
func (ex *Executor) runRecoveryCommands(ctx context.Context) {
	for _, name := range ex.cfg.RecoveryOrder {
		command, ok := ex.cfg.Recovery[name]
		if !ok {
			continue
		}
		ex.log.Info("running recovery command", "name", name, "command", command)
		ex.runAttempt(ctx, command, "", "")
	}
}

// runAttempt bounds a single subprocess run by execution.timeout
// (spec.md §4.4 "Timeout"), mapping expiry to exit code 124.
func (ex *Executor) runAttempt(ctx context.Context, command, workingDir, task string) Result {
	attemptCtx := ctx
	var cancel context.CancelFunc
	if timeout := ex.cfg.Execution.TimeoutSeconds; timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	ectx := agent.ExecutionContext{
		CurrentTask:      task,
		WorkingDirectory: workingDir,
		UserPreferences:  ex.cfg.UserPreferences,
		SessionMetadata:  map[string]any{"session_id": ex.sessionID},
	}
	probeDir := workingDir
	if probeDir == "" {
		probeDir, _ = os.Getwd()
	}
	if probeDir != "" {
		ectx.ProjectInfo = agent.ProbeProjectInfo(afero.NewOsFs(), probeDir)
	}

	result := ex.runner.Execute(attemptCtx, command, ectx)
	if attemptCtx.Err() == context.DeadlineExceeded {
		result.ReturnCode = 124
	}
	return Result{CommandResult: result, Attempts: 1}
}
