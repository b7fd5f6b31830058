// Package metrics provides the process-wide request counter registry.
// Counters start at zero, only ever increase, and reset with the process.
package metrics

import "sync"

// Counter names, one per dispatched capability.
const (
	ChatRequests   = "chatRequests"
	SearchRequests = "searchRequests"
	KaliToolRuns   = "kaliToolRuns"
	HealthChecks   = "healthChecks"
	RuntimeChecks  = "runtimeChecks"
	AgentSaves     = "agentSaves"
	AgentImports   = "agentImports"
	LibraryReads   = "libraryReads"
)

// Names lists every counter the gateway maintains, in reporting order.
func Names() []string {
	return []string{
		ChatRequests,
		SearchRequests,
		KaliToolRuns,
		HealthChecks,
		RuntimeChecks,
		AgentSaves,
		AgentImports,
		LibraryReads,
	}
}

// Sink records one occurrence of a named event. Handlers depend on this
// interface, not on the registry, so tests can substitute a spy.
type Sink interface {
	Increment(name string)
}

// Registry is a mutex-guarded counter map. Increments from concurrent
// request threads must never lose updates.
type Registry struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewRegistry returns a Registry with the given counters pre-seeded to
// zero, so the metrics endpoint reports them before first use.
func NewRegistry(names ...string) *Registry {
	counters := make(map[string]int64, len(names))
	for _, name := range names {
		counters[name] = 0
	}
	return &Registry{counters: counters}
}

// Increment adds one to the named counter, creating it if needed.
func (r *Registry) Increment(name string) {
	r.mu.Lock()
	r.counters[name]++
	r.mu.Unlock()
}

// Snapshot returns a copy of all counters.
func (r *Registry) Snapshot() map[string]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int64, len(r.counters))
	for name, v := range r.counters {
		out[name] = v
	}
	return out
}
