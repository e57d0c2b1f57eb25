package agent

import (
	"regexp"
	"sort"
)

type specializedEntry struct {
	pattern *regexp.Regexp
	agent   Agent
}

// Registry holds the four agent tiers and picks the right one for a
// running command (spec.md §4.5). Selection order is custom agents
// (highest priority first), then specialized agents in registration
// order, then the general agent, then escalation as the ultimate
// fallback.
type Registry struct {
	escalation  Agent
	specialized []specializedEntry
	general     Agent
	custom      []Agent
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterEscalation sets the registry's ultimate-fallback agent.
func (r *Registry) RegisterEscalation(a Agent) {
	r.escalation = a
}

// RegisterSpecialized compiles pattern case-insensitively and
// associates it with a. Patterns are tried in registration order.
func (r *Registry) RegisterSpecialized(pattern string, a Agent) error {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return err
	}
	r.specialized = append(r.specialized, specializedEntry{pattern: re, agent: a})
	return nil
}

// RegisterGeneral sets the registry's catch-all agent.
func (r *Registry) RegisterGeneral(a Agent) {
	r.general = a
}

// RegisterCustom adds a plugin agent, keeping custom agents sorted by
// descending priority.
func (r *Registry) RegisterCustom(a Agent) {
	r.custom = append(r.custom, a)
	sort.SliceStable(r.custom, func(i, j int) bool {
		return r.custom[i].Priority() > r.custom[j].Priority()
	})
}

// FindAgent returns the best agent for command, or nil if nothing in
// the registry will handle it.
func (r *Registry) FindAgent(command string, ctx ExecutionContext) Agent {
	for _, a := range r.custom {
		if a.CanHandle(command, ctx) {
			return a
		}
	}
	for _, entry := range r.specialized {
		if entry.pattern.MatchString(command) && entry.agent.CanHandle(command, ctx) {
			return entry.agent
		}
	}
	if r.general != nil && r.general.CanHandle(command, ctx) {
		return r.general
	}
	if r.escalation != nil && r.escalation.CanHandle(command, ctx) {
		return r.escalation
	}
	return nil
}

// AllAgents returns every registered agent, escalation first.
func (r *Registry) AllAgents() []Agent {
	var agents []Agent
	if r.escalation != nil {
		agents = append(agents, r.escalation)
	}
	agents = append(agents, r.custom...)
	for _, entry := range r.specialized {
		agents = append(agents, entry.agent)
	}
	if r.general != nil {
		agents = append(agents, r.general)
	}
	return agents
}

// UsageStats returns a name-keyed snapshot of every agent's Stats, for
// `mom config --show --stats` (spec.md's SUPPLEMENTED FEATURES).
func (r *Registry) UsageStats() map[string]Stats {
	stats := make(map[string]Stats)
	for _, a := range r.AllAgents() {
		stats[a.Name()] = a.Stats()
	}
	return stats
}

// NewDefaultRegistry wires the standard specialized agents (git, npm,
// docker, python) plus a general agent and an escalation agent using
// callback, matching mom's built-in agent set before any plugins are
// added (spec.md §4.5).
func NewDefaultRegistry(callback EscalationCallback) *Registry {
	r := NewRegistry()
	r.RegisterEscalation(NewEscalationAgent(callback))
	r.RegisterGeneral(NewGeneralAgent())
	_ = r.RegisterSpecialized(`git (commit|config|init|clone|merge|rebase)`, NewGitAgent())
	_ = r.RegisterSpecialized(`(npm|yarn) (init|create)`, NewNpmAgent())
	_ = r.RegisterSpecialized(`docker(-compose)? (run|build|exec)|docker-compose`, NewDockerAgent())
	_ = r.RegisterSpecialized(`pip install|python setup\.py|poetry init|uv init`, NewPythonAgent())
	return r
}
