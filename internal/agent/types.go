// Package agent implements the interactive agent subsystem (spec.md
// §4.5): a priority-ordered registry of agents that mediate subprocess
// prompts during command execution.
package agent

import "time"

// ExecutionContext is the rich context passed to every agent so its
// response can be informed by the project and the user's preferences
// (spec.md §4.5).
type ExecutionContext struct {
	CurrentTask      string
	ProjectInfo      map[string]any
	CommandHistory   []string
	EnvironmentVars  map[string]string
	WorkingDirectory string
	UserPreferences  map[string]string
	SessionMetadata  map[string]any
}

// InteractionLogEntry records one prompt/response exchange mediated by
// an agent during command execution.
type InteractionLogEntry struct {
	Prompt    string
	Response  string
	Agent     string
	Err       string
	Timestamp time.Time
}

// CommandResult is the outcome of running a command through the
// router, including the full interaction log (spec.md §4.5).
type CommandResult struct {
	Stdout         string
	Stderr         string
	ReturnCode     int
	InteractionLog []InteractionLogEntry
	AgentUsed      string
	ExecutionTime  time.Duration
}

// Success reports whether the command exited cleanly.
func (r CommandResult) Success() bool { return r.ReturnCode == 0 }

// HadInteractions reports whether any prompt was mediated.
func (r CommandResult) HadInteractions() bool { return len(r.InteractionLog) > 0 }

// Stats tracks how often an agent has been asked to handle a prompt
// and how often that went well.
type Stats struct {
	UsageCount   int
	SuccessCount int
}

// Record registers one usage outcome.
func (s *Stats) Record(success bool) {
	s.UsageCount++
	if success {
		s.SuccessCount++
	}
}

// SuccessRate is SuccessCount/UsageCount, or 0 before any usage.
func (s Stats) SuccessRate() float64 {
	if s.UsageCount == 0 {
		return 0
	}
	return float64(s.SuccessCount) / float64(s.UsageCount)
}

// Agent mediates interactive subprocess prompts. Implementations embed
// base for Name/Priority/RecordUsage/Stats and supply CanHandle and
// HandlePrompt.
type Agent interface {
	Name() string
	Priority() int
	CanHandle(command string, ctx ExecutionContext) bool
	HandlePrompt(prompt, command string, ctx ExecutionContext) string
	RecordUsage(success bool)
	Stats() Stats
}

// base supplies the bookkeeping every concrete agent shares.
type base struct {
	name     string
	priority int
	stats    Stats
}

func (b *base) Name() string        { return b.name }
func (b *base) Priority() int       { return b.priority }
func (b *base) RecordUsage(ok bool) { b.stats.Record(ok) }
func (b *base) Stats() Stats        { return b.stats }
