package registry

import (
	"sort"
	"strings"
	"time"
)

// HistoryEntry records one user-initiated connection for the history view.
type HistoryEntry struct {
	TargetID    string
	TargetName  string
	ConnectedAt time.Time
}

// historyLimit bounds the connection history ring.
const historyLimit = 50

// Store is the in-memory target registry. It is not safe for concurrent
// use; by design only the orchestrating UI goroutine mutates it, and the
// health monitor hands results over a channel instead of touching it.
type Store struct {
	targets map[string]*Target
	history []HistoryEntry
}

// NewStore creates an empty target store.
func NewStore() *Store {
	return &Store{
		targets: make(map[string]*Target),
	}
}

// Add inserts or replaces a target, keyed by its ID.
func (s *Store) Add(t *Target) {
	s.targets[t.ID] = t
}

// Remove deletes a target and returns it, or nil if unknown.
func (s *Store) Remove(id string) *Target {
	t, ok := s.targets[id]
	if !ok {
		return nil
	}
	delete(s.targets, id)
	return t
}

// Get returns the target with the given ID, or nil.
func (s *Store) Get(id string) *Target {
	return s.targets[id]
}

// Len returns the number of registered targets.
func (s *Store) Len() int {
	return len(s.targets)
}

// OnlineCount returns how many targets are currently considered healthy.
func (s *Store) OnlineCount() int {
	n := 0
	for _, t := range s.targets {
		if t.IsHealthy() {
			n++
		}
	}
	return n
}

// All returns every target sorted by name.
func (s *Store) All() []*Target {
	return s.Filtered("", false)
}

// Snapshot returns copies of every target, sorted by name. The health
// monitor starts from a snapshot so it never shares pointers with the store.
func (s *Store) Snapshot() []Target {
	all := s.All()
	out := make([]Target, len(all))
	for i, t := range all {
		out[i] = *t
	}
	return out
}

// Filtered returns targets matching a case-insensitive substring filter
// against name, host, and user, optionally restricted to healthy targets.
// Results are sorted by name for stable display.
func (s *Store) Filtered(filter string, onlyOnline bool) []*Target {
	filter = strings.ToLower(filter)
	out := make([]*Target, 0, len(s.targets))
	for _, t := range s.targets {
		if filter != "" &&
			!strings.Contains(strings.ToLower(t.Name), filter) &&
			!strings.Contains(strings.ToLower(t.Host), filter) &&
			!strings.Contains(strings.ToLower(t.User), filter) {
			continue
		}
		if onlyOnline && !t.IsHealthy() {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ApplyResult applies a probe result to the identified target, updating its
// status fields and stats. It returns the health state the target held
// before the result was applied, so callers can detect Online/Offline
// boundary crossings. ok is false when the target is unknown (e.g. deleted
// while a probe for it was in flight), in which case the result is dropped.
func (s *Store) ApplyResult(id string, res ProbeResult) (prev HealthState, ok bool) {
	t, found := s.targets[id]
	if !found {
		return HealthUnknown, false
	}
	prev = t.Health
	t.applyResult(res)
	return prev, true
}

// SetHealth overrides a target's health state. Used for the
// Unknown -> Connecting transition on user-initiated connects and refreshes.
func (s *Store) SetHealth(id string, h HealthState) {
	if t, ok := s.targets[id]; ok {
		t.Health = h
	}
}

// RecordConnection prepends an entry to the connection history ring.
func (s *Store) RecordConnection(id string) {
	t, ok := s.targets[id]
	if !ok {
		return
	}
	s.history = append([]HistoryEntry{{
		TargetID:    t.ID,
		TargetName:  t.Name,
		ConnectedAt: time.Now(),
	}}, s.history...)
	if len(s.history) > historyLimit {
		s.history = s.history[:historyLimit]
	}
}

// History returns the connection history, most recent first.
func (s *Store) History() []HistoryEntry {
	return s.history
}
