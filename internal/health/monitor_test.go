package health

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/ghost/internal/logger"
	"github.com/rileyhilliard/ghost/internal/registry"
)

func testTargets(names ...string) []registry.Target {
	out := make([]registry.Target, len(names))
	for i, n := range names {
		out[i] = *registry.NewTarget(n, n+".example.com", 22, "admin")
	}
	return out
}

func alwaysOnline(t registry.Target, timeout time.Duration) registry.ProbeResult {
	return registry.ProbeResult{
		Health:   registry.HealthOnline,
		Security: registry.SecuritySecure,
		Latency:  time.Millisecond,
	}
}

// recvTimeout blocks on the monitor's updates until one arrives or the
// deadline passes.
func recvTimeout(t *testing.T, m *Monitor, d time.Duration) Update {
	t.Helper()
	deadline := time.After(d)
	for {
		if u, ok := m.TryRecv(); ok {
			return u
		}
		select {
		case <-deadline:
			t.Fatal("no update before deadline")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestMonitorDeliversUpdates(t *testing.T) {
	m := New(10 * time.Millisecond)
	m.SetLogger(logger.Noop())
	m.SetProbeFunc(alwaysOnline)

	targets := testTargets("a", "b")
	m.Start(targets)
	defer func() {
		m.Stop()
		m.Wait()
	}()

	seen := make(map[string]bool)
	for len(seen) < 2 {
		u := recvTimeout(t, m, 2*time.Second)
		assert.Equal(t, registry.HealthOnline, u.Result.Health)
		seen[u.TargetID] = true
	}

	assert.True(t, seen[targets[0].ID])
	assert.True(t, seen[targets[1].ID])
}

func TestMonitorStopHalts(t *testing.T) {
	var calls atomic.Int64
	m := New(5 * time.Millisecond)
	m.SetLogger(logger.Noop())
	m.SetProbeFunc(func(tgt registry.Target, timeout time.Duration) registry.ProbeResult {
		calls.Add(1)
		return alwaysOnline(tgt, timeout)
	})

	m.Start(testTargets("a"))
	recvTimeout(t, m, 2*time.Second)

	m.Stop()
	m.Wait()
	require.False(t, m.Running())

	// No further probes once the loop has joined.
	before := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, before, calls.Load())
}

func TestMonitorStopIdempotent(t *testing.T) {
	m := New(time.Minute)
	m.Start(testTargets("a"))

	m.Stop()
	m.Stop()
	m.Wait()
	assert.False(t, m.Running())
}

func TestMonitorStartTwiceIsNoop(t *testing.T) {
	m := New(5 * time.Millisecond)
	m.SetLogger(logger.Noop())

	var calls atomic.Int64
	m.SetProbeFunc(func(tgt registry.Target, timeout time.Duration) registry.ProbeResult {
		calls.Add(1)
		return alwaysOnline(tgt, timeout)
	})

	m.Start(testTargets("a"))
	m.Start(testTargets("b", "c")) // ignored; already running
	defer func() {
		m.Stop()
		m.Wait()
	}()

	u := recvTimeout(t, m, 2*time.Second)
	// Updates only come from the first Start's snapshot.
	assert.NotEmpty(t, u.TargetID)
	assert.True(t, m.Running())
}

func TestTryRecvNonBlocking(t *testing.T) {
	m := New(time.Hour)

	start := time.Now()
	_, ok := m.TryRecv()
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestCheckNowBypassesSchedule(t *testing.T) {
	m := New(time.Hour)
	m.SetProbeFunc(alwaysOnline)

	tgt := testTargets("a")[0]
	res := m.CheckNow(tgt)

	assert.Equal(t, registry.HealthOnline, res.Health)
	// The result is returned directly, not queued.
	_, ok := m.TryRecv()
	assert.False(t, ok)
}

func TestZeroIntervalUsesDefault(t *testing.T) {
	m := New(0)
	assert.Equal(t, DefaultInterval, m.interval)
}

func TestSetTimeoutPropagates(t *testing.T) {
	m := New(time.Hour)
	m.SetTimeout(2 * time.Second)

	var got time.Duration
	m.SetProbeFunc(func(tgt registry.Target, timeout time.Duration) registry.ProbeResult {
		got = timeout
		return alwaysOnline(tgt, timeout)
	})

	m.CheckNow(testTargets("a")[0])
	assert.Equal(t, 2*time.Second, got)

	m.SetTimeout(0) // ignored
	m.CheckNow(testTargets("a")[0])
	assert.Equal(t, 2*time.Second, got)
}
