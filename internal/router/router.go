// Package router drives a subprocess to completion, handing any
// interactive prompt it emits to the interactive agent subsystem
// (spec.md §4.5, §9). Go has no portable non-blocking pipe read, so
// the poll loop described in spec.md is implemented with a background
// reader goroutine per pipe feeding a channel, and the router selects
// over those channels with a ~100ms ticker standing in for the
// original's 100ms sleep between poll attempts.
package router

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/momo-sh/mom/internal/agent"
)

// killGrace is how long the router waits after SIGTERM before
// escalating to SIGKILL on cancellation.
const killGrace = 2 * time.Second

// pollInterval mirrors the 100ms sleep in the prompt-detection poll
// loop this package is grounded on.
const pollInterval = 100 * time.Millisecond

// Router mediates subprocess execution through an agent.Registry.
type Router struct {
	registry *agent.Registry
}

// New returns a Router consulting registry for prompt handling.
func New(registry *agent.Registry) *Router {
	return &Router{registry: registry}
}

// Execute runs command, routing any interactive prompt to the agent
// the registry selects. If no agent will handle the command it runs
// non-interactively instead.
func (r *Router) Execute(ctx context.Context, command string, ectx agent.ExecutionContext) agent.CommandResult {
	start := time.Now()

	selected := r.registry.FindAgent(command, ectx)
	if selected == nil {
		result := runNonInteractive(ctx, command, ectx.WorkingDirectory)
		result.ExecutionTime = time.Since(start)
		return result
	}

	result := r.executeWithAgent(ctx, command, ectx, selected)
	result.ExecutionTime = time.Since(start)
	result.AgentUsed = selected.Name()
	return result
}

func (r *Router) executeWithAgent(
	ctx context.Context, command string, ectx agent.ExecutionContext, ag agent.Agent,
) agent.CommandResult {
	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = ectx.WorkingDirectory
	cmd.Env = flattenEnv(ectx.EnvironmentVars)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return agent.CommandResult{Stderr: err.Error(), ReturnCode: 1}
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return agent.CommandResult{Stderr: err.Error(), ReturnCode: 1}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return agent.CommandResult{Stderr: err.Error(), ReturnCode: 1}
	}

	if err := cmd.Start(); err != nil {
		return agent.CommandResult{Stderr: fmt.Sprintf("error executing command: %v", err), ReturnCode: 1}
	}

	outCh := streamReader(stdoutPipe)
	errCh := streamReader(stderrPipe)

	var stdout, stderr strings.Builder
	var log []agent.InteractionLogEntry

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	canceled := false
	for outCh != nil || errCh != nil {
		select {
		case chunk, ok := <-outCh:
			if !ok {
				outCh = nil
				continue
			}
			stdout.WriteString(chunk)
			if isInteractivePrompt(chunk) {
				response, handleErr := safeHandlePrompt(ag, chunk, command, ectx)
				log = append(log, agent.InteractionLogEntry{
					Prompt:    strings.TrimSpace(chunk),
					Response:  response,
					Agent:     ag.Name(),
					Err:       handleErr,
					Timestamp: time.Now(),
				})
				fmt.Fprintln(stdin, response)
			}
		case chunk, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			stderr.WriteString(chunk)
		case <-ticker.C:
			// idle tick; nothing to do but keep the loop alive for ctx.Done
		case <-ctx.Done():
			if !canceled {
				canceled = true
				terminate(cmd)
			}
		}
	}

	waitErr := cmd.Wait()
	return agent.CommandResult{
		Stdout:         stdout.String(),
		Stderr:         stderr.String(),
		ReturnCode:     exitCode(cmd, waitErr),
		InteractionLog: log,
	}
}

// safeHandlePrompt calls ag.HandlePrompt, recovering from a panic and
// falling back to agent.EmergencyDefault so one misbehaving agent
// can't take down the whole subprocess run (spec.md §4.5.2/§7). errMsg
// is empty on the normal path and carries the recovered panic value
// onto the interaction log entry otherwise.
func safeHandlePrompt(ag agent.Agent, prompt, command string, ectx agent.ExecutionContext) (response, errMsg string) {
	defer func() {
		if r := recover(); r != nil {
			errMsg = fmt.Sprintf("%v", r)
			response = agent.EmergencyDefault(prompt)
		}
	}()
	return ag.HandlePrompt(prompt, command, ectx), ""
}

// runNonInteractive runs command with no agent mediation at all,
// mirroring the non-interactive path in spec.md §9 for the common
// case where nothing is listening for prompts.
func runNonInteractive(ctx context.Context, command, dir string) agent.CommandResult {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return agent.CommandResult{Stdout: stdout.String(), Stderr: "command timed out", ReturnCode: 124}
	}
	return agent.CommandResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		ReturnCode: exitCode(cmd, err),
	}
}

// streamReader copies pipe's output into a channel of decoded chunks,
// closing the channel on EOF. This is the background-reader half of
// the non-blocking-poll substitute described in spec.md §9.
func streamReader(pipe io.Reader) <-chan string {
	ch := make(chan string, 16)
	go func() {
		defer close(ch)
		buf := make([]byte, 4096)
		for {
			n, err := pipe.Read(buf)
			if n > 0 {
				ch <- string(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

func terminate(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Signal(syscall.SIGTERM)
	go func() {
		time.Sleep(killGrace)
		_ = cmd.Process.Kill()
	}()
}

func exitCode(cmd *exec.Cmd, err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return 1
}

func flattenEnv(vars map[string]string) []string {
	if len(vars) == 0 {
		return nil
	}
	env := make([]string, 0, len(vars))
	for k, v := range vars {
		env = append(env, k+"="+v)
	}
	return env
}
