// Package health runs the background reachability scheduler. One goroutine
// probes a snapshot of targets on a fixed interval and delivers results over
// a channel; it never touches the target store directly, so the UI goroutine
// stays the single writer.
package health

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/ghost/internal/logger"
	"github.com/rileyhilliard/ghost/internal/probe"
	"github.com/rileyhilliard/ghost/internal/registry"
)

// Update is one probe outcome for one target, tagged with the target's ID
// so the consumer can apply it to the store.
type Update struct {
	TargetID string
	Result   registry.ProbeResult
}

// ProbeFunc performs a single reachability check. Injectable for tests.
type ProbeFunc func(t registry.Target, timeout time.Duration) registry.ProbeResult

// DefaultInterval is how often the scheduler sweeps all targets.
const DefaultInterval = 30 * time.Second

// updateBuffer sizes the result channel. The consumer drains every UI tick,
// so the buffer only needs to absorb a few sweeps of a large target set.
// When it does fill, the oldest pending update is dropped in favor of the
// newer result rather than blocking the probe loop.
const updateBuffer = 256

// Monitor schedules background health probes for a fixed set of targets.
type Monitor struct {
	interval time.Duration
	timeout  time.Duration
	probe    ProbeFunc
	log      logger.Logger

	updates chan Update
	done    chan struct{}
	running atomic.Bool
	wg      sync.WaitGroup
	stopSeq sync.Once
}

// New creates a monitor that sweeps targets every interval.
// A zero interval uses DefaultInterval.
func New(interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		interval: interval,
		timeout:  probe.QuickTimeout,
		probe:    probe.Probe,
		log:      logger.NewEnvLogger("[health]"),
		updates:  make(chan Update, updateBuffer),
		done:     make(chan struct{}),
	}
}

// SetProbeFunc replaces the probe implementation. Tests use this to avoid
// real network I/O.
func (m *Monitor) SetProbeFunc(fn ProbeFunc) {
	m.probe = fn
}

// SetLogger replaces the monitor's logger.
func (m *Monitor) SetLogger(l logger.Logger) {
	m.log = l
}

// SetTimeout changes the per-probe timeout. Non-positive values are ignored.
func (m *Monitor) SetTimeout(d time.Duration) {
	if d > 0 {
		m.timeout = d
	}
}

// Start captures a snapshot of the target list and spawns the background
// probe loop. Targets added to the store after Start are not monitored
// until the next Start. Calling Start on a running monitor is a no-op.
func (m *Monitor) Start(targets []registry.Target) {
	if !m.running.CompareAndSwap(false, true) {
		return
	}

	snapshot := make([]registry.Target, len(targets))
	copy(snapshot, targets)

	m.log.Debug("starting, %d targets, interval %s", len(snapshot), m.interval)

	m.wg.Add(1)
	go m.loop(snapshot)
}

// loop is the single background task: one sweep per tick, sequential
// probes within a sweep. The running flag is observed at tick and
// per-target boundaries, so stop latency is bounded by one in-flight
// probe timeout.
func (m *Monitor) loop(targets []registry.Target) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for m.running.Load() {
		select {
		case <-m.done:
			return
		case <-ticker.C:
		}

		for _, t := range targets {
			if !m.running.Load() {
				return
			}

			res := m.probe(t, m.timeout)
			if !m.push(Update{TargetID: t.ID, Result: res}) {
				// Consumer is gone; no point probing further.
				return
			}
		}
	}
}

// push delivers an update without ever blocking the probe loop. When the
// buffer is full the oldest pending update is discarded; a stale health
// reading is worth less than the fresh one. Returns false once the monitor
// has been stopped.
func (m *Monitor) push(u Update) bool {
	for {
		select {
		case <-m.done:
			return false
		case m.updates <- u:
			return true
		default:
		}

		select {
		case <-m.updates:
			m.log.Debug("update buffer full, dropped oldest result")
		default:
		}
	}
}

// Stop clears the running flag and signals the loop to exit. The loop
// observes the signal at its next tick or per-target boundary; callers
// needing a hard join use Wait. Safe to call more than once.
func (m *Monitor) Stop() {
	m.running.Store(false)
	m.stopSeq.Do(func() { close(m.done) })
}

// Wait blocks until the background loop has fully exited. After Wait
// returns no further updates are produced.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

// Running reports whether the background loop is active.
func (m *Monitor) Running() bool {
	return m.running.Load()
}

// TryRecv drains at most one queued update without blocking.
func (m *Monitor) TryRecv() (Update, bool) {
	select {
	case u := <-m.updates:
		return u, true
	default:
		return Update{}, false
	}
}

// CheckNow performs an immediate out-of-band probe of a single target,
// independent of the schedule. The result is returned directly instead of
// going through the update channel.
func (m *Monitor) CheckNow(t registry.Target) registry.ProbeResult {
	return m.probe(t, m.timeout)
}
