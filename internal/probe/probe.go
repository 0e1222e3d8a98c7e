// Package probe performs reachability and security checks against SSH
// targets. Probes never panic and never return a Go error: every failure
// mode is encoded in the returned ProbeResult value so the health monitor
// and launcher can treat probing as infallible.
package probe

import (
	"net"
	"strings"
	"time"

	"github.com/rileyhilliard/ghost/internal/registry"
)

// Timeout budgets for the two probe call sites. Background checks run on a
// schedule and should give up quickly; pre-connect verification gets longer
// because a failed verify aborts the user's connect.
const (
	QuickTimeout  = 5 * time.Second
	VerifyTimeout = 10 * time.Second
)

// SSHDefaultPort is the conventional SSH port used by the security policy.
const SSHDefaultPort = 22

// Probe attempts a raw TCP connection to the target bounded by timeout and
// reports reachability, a security assessment, and measured latency.
// On failure the result carries HealthOffline, SecurityUnknown, and a
// human-readable cause.
func Probe(t registry.Target, timeout time.Duration) registry.ProbeResult {
	start := time.Now()

	conn, err := net.DialTimeout("tcp", t.Addr(), timeout)
	latency := time.Since(start)
	if err != nil {
		return registry.ProbeResult{
			Health:   registry.HealthOffline,
			Security: registry.SecurityUnknown,
			Latency:  latency,
			Err:      describeDialError(err),
		}
	}
	conn.Close()

	return registry.ProbeResult{
		Health:   registry.HealthOnline,
		Security: ClassifySecurity(t.Auth, t.Port),
		Latency:  latency,
	}
}

// ClassifySecurity derives a security assessment from the auth method and
// port alone. Key and agent auth are always considered secure. Password auth
// on the conventional SSH port is the one flagged-vulnerable combination;
// moving password auth to a non-standard port is treated as acceptable.
// Interactive auth reveals nothing, so it stays unknown.
func ClassifySecurity(auth registry.AuthMethod, port int) registry.SecurityStatus {
	switch auth.Type {
	case registry.AuthKey, registry.AuthAgent:
		return registry.SecuritySecure
	case registry.AuthPassword:
		if port == SSHDefaultPort {
			return registry.SecurityVulnerable
		}
		return registry.SecuritySecure
	default:
		return registry.SecurityUnknown
	}
}

// describeDialError converts a dial error into a short human-readable cause.
func describeDialError(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "i/o timeout"):
		return "connection timed out"
	case strings.Contains(errStr, "connection refused"):
		return "connection refused"
	case strings.Contains(errStr, "no route to host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "host is down"):
		return "host unreachable"
	case strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "server misbehaving"):
		return "hostname did not resolve"
	}

	return err.Error()
}
