package cli

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/ghost/internal/probe"
	"github.com/rileyhilliard/ghost/internal/registry"
)

// probeCommand checks one target and prints the outcome. A deep probe
// additionally performs a full SSH handshake with the target's configured
// auth, which surfaces problems a TCP dial can't (bad key, rejected user,
// host key changes).
func probeCommand(name string, deep bool) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	t, err := findTarget(cfg, name)
	if err != nil {
		return err
	}

	fmt.Printf("Probing %s (%s)…\n", t.Name, t.Addr())

	res := probe.Probe(*t, probe.VerifyTimeout)
	switch res.Health {
	case registry.HealthOnline:
		fmt.Printf("✓ Reachable in %dms\n", res.Latency.Milliseconds())
	default:
		fmt.Printf("✗ Unreachable: %s\n", res.Err)
	}

	fmt.Printf("  auth:     %s\n", t.Auth.Type)
	fmt.Printf("  security: %s\n", strings.ToLower(res.Security.String()))
	if res.Security == registry.SecurityVulnerable {
		fmt.Println("  note: password auth on the default port attracts brute-force scans;")
		fmt.Println("        consider key auth or a non-standard port")
	}

	if !deep || res.Health != registry.HealthOnline {
		return nil
	}

	fmt.Println("Performing SSH handshake…")
	latency, err := probe.Deep(*t, probe.VerifyTimeout)
	if err != nil {
		fmt.Printf("✗ Handshake failed: %v\n", err)
		return nil
	}
	fmt.Printf("✓ Authenticated in %dms\n", latency.Milliseconds())
	return nil
}
