// Package session tracks the detached SSH processes ghost has spawned.
// The registry's only handle on a session is its OS process id; liveness is
// re-checked opportunistically each reconciliation pass, and anything not
// confirmed alive is dropped.
package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rileyhilliard/ghost/internal/errors"
	"github.com/rileyhilliard/ghost/internal/logger"
)

// Session is one tracked spawned SSH process.
type Session struct {
	PID       int
	TargetID  string
	Label     string
	StartedAt time.Time
}

// Duration returns how long the session has been running.
func (s Session) Duration() time.Duration {
	return time.Since(s.StartedAt)
}

// FormatDuration renders the session age as "2h 5m 1s" style text.
func (s Session) FormatDuration() string {
	d := s.Duration()
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, sec)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, sec)
	default:
		return fmt.Sprintf("%ds", sec)
	}
}

// KillSummary aggregates the outcome of a batch kill.
type KillSummary struct {
	Killed int
	Failed int
}

// Registry tracks live sessions by pid. Liveness and termination probes are
// injectable so the reconciliation logic is testable without real processes.
type Registry struct {
	mu       sync.Mutex
	sessions map[int]Session
	log      logger.Logger

	alive     func(pid int) bool
	terminate func(pid int) error
}

// NewRegistry creates an empty session registry using the platform's
// process liveness and termination primitives.
func NewRegistry() *Registry {
	return &Registry{
		sessions:  make(map[int]Session),
		log:       logger.NewEnvLogger("[session]"),
		alive:     processAlive,
		terminate: terminateProcess,
	}
}

// SetProbes overrides the liveness and termination functions. Tests use
// this to simulate process state.
func (r *Registry) SetProbes(alive func(int) bool, terminate func(int) error) {
	r.alive = alive
	r.terminate = terminate
}

// SetLogger replaces the registry's logger.
func (r *Registry) SetLogger(l logger.Logger) {
	r.log = l
}

// Add records a newly spawned session. Called only after a successful
// detached spawn, so the pid is known valid at insertion time.
func (r *Registry) Add(targetID string, pid int, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[pid] = Session{
		PID:       pid,
		TargetID:  targetID,
		Label:     label,
		StartedAt: time.Now(),
	}
	r.log.Debug("tracking pid %d for target %s", pid, targetID)
}

// Reconcile re-checks every tracked pid against OS process state and drops
// the ones no longer alive. A failed liveness query counts as dead.
// Returns the sessions that were removed. Idempotent when process state
// hasn't changed between calls.
func (r *Registry) Reconcile() []Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []Session
	for pid, s := range r.sessions {
		if r.alive(pid) {
			continue
		}
		delete(r.sessions, pid)
		removed = append(removed, s)
		r.log.Debug("pid %d ended, dropping session for target %s", pid, s.TargetID)
	}
	return removed
}

// Kill sends a termination request to one session's process. On success the
// session is removed; on failure it stays tracked and an error is returned.
func (r *Registry) Kill(pid int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[pid]
	if !ok {
		return errors.New(errors.ErrSession,
			fmt.Sprintf("No tracked session with PID %d", pid),
			"The session may have already ended; refresh the sessions view")
	}

	if err := r.terminate(pid); err != nil {
		return errors.WrapWithCode(err, errors.ErrSession,
			fmt.Sprintf("Couldn't kill session PID %d (%s)", pid, s.Label),
			"The process may require a stronger signal or have already exited")
	}

	delete(r.sessions, pid)
	return nil
}

// KillAll terminates every tracked session, collecting per-pid outcomes
// instead of aborting on the first failure.
func (r *Registry) KillAll() KillSummary {
	r.mu.Lock()
	pids := make([]int, 0, len(r.sessions))
	for pid := range r.sessions {
		pids = append(pids, pid)
	}
	r.mu.Unlock()

	var summary KillSummary
	for _, pid := range pids {
		if err := r.Kill(pid); err != nil {
			summary.Failed++
			r.log.Warn("kill failed: %v", err)
			continue
		}
		summary.Killed++
	}
	return summary
}

// Sessions returns all tracked sessions, newest first.
func (r *Registry) Sessions() []Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out
}

// ByTarget returns the sessions owned by one target, newest first.
func (r *Registry) ByTarget(targetID string) []Session {
	var out []Session
	for _, s := range r.Sessions() {
		if s.TargetID == targetID {
			out = append(out, s)
		}
	}
	return out
}

// Count returns the number of tracked sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
