package registry

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTarget(name string) *Target {
	return NewTarget(name, name+".example.com", 22, "admin")
}

func onlineResult(latency time.Duration) ProbeResult {
	return ProbeResult{
		Health:   HealthOnline,
		Security: SecuritySecure,
		Latency:  latency,
	}
}

func offlineResult(cause string) ProbeResult {
	return ProbeResult{
		Health:   HealthOffline,
		Security: SecurityUnknown,
		Err:      cause,
	}
}

func TestStoreAddGetRemove(t *testing.T) {
	s := NewStore()
	target := testTarget("web")

	s.Add(target)
	assert.Equal(t, 1, s.Len())
	assert.Same(t, target, s.Get(target.ID))

	removed := s.Remove(target.ID)
	assert.Same(t, target, removed)
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Get(target.ID))

	// Removing again is a nil no-op.
	assert.Nil(t, s.Remove(target.ID))
}

func TestApplyResultReturnsPreviousHealth(t *testing.T) {
	s := NewStore()
	target := testTarget("web")
	s.Add(target)

	prev, ok := s.ApplyResult(target.ID, onlineResult(10*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, HealthUnknown, prev)
	assert.Equal(t, HealthOnline, target.Health)

	prev, ok = s.ApplyResult(target.ID, offlineResult("connection refused"))
	require.True(t, ok)
	assert.Equal(t, HealthOnline, prev)
	assert.Equal(t, HealthOffline, target.Health)
}

func TestApplyResultUnknownTarget(t *testing.T) {
	s := NewStore()

	_, ok := s.ApplyResult("nope", onlineResult(time.Millisecond))
	assert.False(t, ok, "result for a deleted target should be dropped")
}

func TestApplyResultUpdatesStats(t *testing.T) {
	s := NewStore()
	target := testTarget("web")
	s.Add(target)

	s.ApplyResult(target.ID, onlineResult(20*time.Millisecond))
	s.ApplyResult(target.ID, onlineResult(30*time.Millisecond))
	s.ApplyResult(target.ID, offlineResult("timeout"))

	assert.Equal(t, 2, target.Stats.Successes)
	assert.Equal(t, 1, target.Stats.Failures)
	assert.InDelta(t, 66.6, target.Stats.UptimePercent, 0.1)
	assert.Equal(t, []int64{20, 30}, target.Stats.LatencyHistory)
	assert.False(t, target.Stats.LastConnected.IsZero())
}

func TestLatencyHistoryBounded(t *testing.T) {
	s := NewStore()
	target := testTarget("web")
	s.Add(target)

	for i := 1; i <= LatencyHistorySize+5; i++ {
		s.ApplyResult(target.ID, onlineResult(time.Duration(i)*time.Millisecond))
	}

	require.Len(t, target.Stats.LatencyHistory, LatencyHistorySize)
	// Oldest entries fall off the front.
	assert.Equal(t, int64(6), target.Stats.LatencyHistory[0])
	assert.Equal(t, int64(15), target.Stats.LatencyHistory[LatencyHistorySize-1])
}

func TestFiltered(t *testing.T) {
	s := NewStore()
	web := testTarget("web-prod")
	db := testTarget("db-prod")
	db.User = "postgres"
	s.Add(web)
	s.Add(db)
	s.ApplyResult(web.ID, onlineResult(time.Millisecond))
	s.ApplyResult(db.ID, offlineResult("timeout"))

	tests := []struct {
		name       string
		filter     string
		onlyOnline bool
		want       []string
	}{
		{"no filter", "", false, []string{"db-prod", "web-prod"}},
		{"by name", "web", false, []string{"web-prod"}},
		{"case insensitive", "WEB", false, []string{"web-prod"}},
		{"by user", "postgres", false, []string{"db-prod"}},
		{"by host", "db-prod.example", false, []string{"db-prod"}},
		{"online only", "", true, []string{"web-prod"}},
		{"no match", "nothing", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, tgt := range s.Filtered(tt.filter, tt.onlyOnline) {
				got = append(got, tgt.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := NewStore()
	target := testTarget("web")
	s.Add(target)

	snap := s.Snapshot()
	require.Len(t, snap, 1)

	snap[0].Health = HealthOffline
	assert.Equal(t, HealthUnknown, target.Health, "mutating a snapshot must not touch the store")
}

func TestOnlineCount(t *testing.T) {
	s := NewStore()
	a := testTarget("a")
	b := testTarget("b")
	s.Add(a)
	s.Add(b)

	assert.Equal(t, 0, s.OnlineCount())

	s.ApplyResult(a.ID, onlineResult(time.Millisecond))
	assert.Equal(t, 1, s.OnlineCount())

	// Warning still counts as healthy.
	b.Health = HealthWarning
	assert.Equal(t, 2, s.OnlineCount())
}

func TestConnectionHistoryBounded(t *testing.T) {
	s := NewStore()
	target := testTarget("web")
	s.Add(target)

	for i := 0; i < historyLimit+10; i++ {
		s.RecordConnection(target.ID)
	}

	assert.Len(t, s.History(), historyLimit)
	assert.Equal(t, "web", s.History()[0].TargetName)
}

func TestRecordConnectionUnknownTarget(t *testing.T) {
	s := NewStore()
	s.RecordConnection("nope")
	assert.Empty(t, s.History())
}

func TestSetHealth(t *testing.T) {
	s := NewStore()
	target := testTarget("web")
	s.Add(target)

	s.SetHealth(target.ID, HealthConnecting)
	assert.Equal(t, HealthConnecting, target.Health)

	// Unknown IDs are ignored.
	s.SetHealth("nope", HealthOnline)
}

func TestAllSortedByName(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		s.Add(testTarget(name))
	}

	var got []string
	for _, tgt := range s.All() {
		got = append(got, tgt.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, got)
}

func TestNewTargetUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := testTarget(fmt.Sprintf("t%d", i)).ID
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate target ID %s", id)
		seen[id] = true
	}
}
