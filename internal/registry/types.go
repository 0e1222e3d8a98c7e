// Package registry holds the in-memory data model for managed SSH targets:
// target records, their health and security classifications, probe results,
// and rolling connection statistics. The store is mutated only by the
// orchestrating UI goroutine; background probing communicates by value.
package registry

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HealthState represents the reachability status of a target.
type HealthState int

const (
	HealthUnknown HealthState = iota
	HealthOnline
	HealthOffline
	HealthConnecting
	// HealthWarning exists in the model but is not produced by current
	// probe logic. Kept so stored values and renderers handle it.
	HealthWarning
)

// String returns the display name for the health state.
func (h HealthState) String() string {
	switch h {
	case HealthOnline:
		return "ONLINE"
	case HealthOffline:
		return "OFFLINE"
	case HealthConnecting:
		return "CONNECTING"
	case HealthWarning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

// Symbol returns a single-cell status indicator for list views.
func (h HealthState) Symbol() string {
	switch h {
	case HealthOnline, HealthOffline, HealthConnecting:
		return "●"
	case HealthWarning:
		return "▲"
	default:
		return "?"
	}
}

// SecurityStatus is a heuristic assessment of a target's SSH posture.
type SecurityStatus int

const (
	SecurityUnknown SecurityStatus = iota
	SecuritySecure
	SecurityVulnerable
	// SecurityCompromised is reachable in the type but never assigned by
	// current assessment logic.
	SecurityCompromised
)

// String returns the display name for the security status.
func (s SecurityStatus) String() string {
	switch s {
	case SecuritySecure:
		return "SECURE"
	case SecurityVulnerable:
		return "VULNERABLE"
	case SecurityCompromised:
		return "COMPROMISED"
	default:
		return "UNKNOWN"
	}
}

// AuthType identifies how a target authenticates.
type AuthType int

const (
	AuthAgent AuthType = iota
	AuthKey
	AuthPassword
	AuthInteractive
)

// String returns the config-file name for the auth type.
func (a AuthType) String() string {
	switch a {
	case AuthKey:
		return "key"
	case AuthPassword:
		return "password"
	case AuthInteractive:
		return "interactive"
	default:
		return "agent"
	}
}

// ParseAuthType converts a config-file auth name to an AuthType.
// Unrecognized names default to agent auth.
func ParseAuthType(s string) AuthType {
	switch s {
	case "key", "publickey":
		return AuthKey
	case "password":
		return AuthPassword
	case "interactive":
		return AuthInteractive
	default:
		return AuthAgent
	}
}

// AuthMethod describes a target's authentication configuration.
// KeyPath is only meaningful when Type is AuthKey and may contain ~.
type AuthMethod struct {
	Type    AuthType
	KeyPath string
}

// ProbeResult is the immutable outcome of a single reachability check.
// Err is a human-readable cause string; it is non-empty exactly when
// Health is HealthOffline.
type ProbeResult struct {
	Health   HealthState
	Security SecurityStatus
	Latency  time.Duration
	Err      string
}

// ConnectionStats tracks rolling probe outcomes for a target.
type ConnectionStats struct {
	Latency        time.Duration
	LatencyHistory []int64 // last LatencyHistorySize measurements, in ms
	UptimePercent  float64
	LastConnected  time.Time
	Successes      int
	Failures       int
}

// LatencyHistorySize bounds the per-target latency history.
const LatencyHistorySize = 10

// Target is a configured remote host entry.
// The Health/Security/Stats fields are runtime state and are never persisted.
type Target struct {
	ID           string
	Name         string
	Host         string
	Port         int
	User         string
	Auth         AuthMethod
	Description  string
	Tags         []string
	CreatedAt    time.Time
	LastModified time.Time

	Health   HealthState
	Security SecurityStatus
	Stats    ConnectionStats
}

// NewTarget creates a target with a fresh unique ID and agent auth.
func NewTarget(name, host string, port int, user string) *Target {
	now := time.Now()
	return &Target{
		ID:           uuid.NewString(),
		Name:         name,
		Host:         host,
		Port:         port,
		User:         user,
		Auth:         AuthMethod{Type: AuthAgent},
		CreatedAt:    now,
		LastModified: now,
	}
}

// Addr returns the host:port dial address for the target.
func (t *Target) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// ConnectionString returns the user@host:port display form.
func (t *Target) ConnectionString() string {
	return fmt.Sprintf("%s@%s:%d", t.User, t.Host, t.Port)
}

// IsHealthy reports whether the target is considered reachable.
func (t *Target) IsHealthy() bool {
	return t.Health == HealthOnline || t.Health == HealthWarning
}

// applyResult updates the target's status fields and stats from a probe result.
func (t *Target) applyResult(res ProbeResult) {
	t.Health = res.Health
	t.Security = res.Security
	t.Stats.Latency = res.Latency

	switch res.Health {
	case HealthOnline:
		t.Stats.Successes++
		t.Stats.LastConnected = time.Now()
		if res.Latency > 0 {
			t.Stats.LatencyHistory = append(t.Stats.LatencyHistory, res.Latency.Milliseconds())
			if len(t.Stats.LatencyHistory) > LatencyHistorySize {
				t.Stats.LatencyHistory = t.Stats.LatencyHistory[len(t.Stats.LatencyHistory)-LatencyHistorySize:]
			}
		}
	case HealthOffline:
		t.Stats.Failures++
	}

	if total := t.Stats.Successes + t.Stats.Failures; total > 0 {
		t.Stats.UptimePercent = float64(t.Stats.Successes) / float64(total) * 100
	}
}
