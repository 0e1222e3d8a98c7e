package probe

import (
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/ghost/internal/registry"
)

func TestClassifySecurity(t *testing.T) {
	tests := []struct {
		name string
		auth registry.AuthMethod
		port int
		want registry.SecurityStatus
	}{
		{"key auth default port", registry.AuthMethod{Type: registry.AuthKey}, 22, registry.SecuritySecure},
		{"key auth custom port", registry.AuthMethod{Type: registry.AuthKey}, 2222, registry.SecuritySecure},
		{"agent auth", registry.AuthMethod{Type: registry.AuthAgent}, 22, registry.SecuritySecure},
		{"password on 22", registry.AuthMethod{Type: registry.AuthPassword}, 22, registry.SecurityVulnerable},
		{"password on 2222", registry.AuthMethod{Type: registry.AuthPassword}, 2222, registry.SecuritySecure},
		{"password on high port", registry.AuthMethod{Type: registry.AuthPassword}, 65535, registry.SecuritySecure},
		{"interactive", registry.AuthMethod{Type: registry.AuthInteractive}, 22, registry.SecurityUnknown},
		{"interactive custom port", registry.AuthMethod{Type: registry.AuthInteractive}, 443, registry.SecurityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifySecurity(tt.auth, tt.port)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribeDialError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"timeout", errors.New("dial tcp 10.0.0.1:22: i/o timeout"), "connection timed out"},
		{"refused", errors.New("dial tcp 127.0.0.1:22: connect: connection refused"), "connection refused"},
		{"no route", errors.New("dial tcp 10.0.0.1:22: connect: no route to host"), "host unreachable"},
		{"net unreachable", errors.New("dial tcp: connect: network is unreachable"), "host unreachable"},
		{"dns", errors.New("dial tcp: lookup nope.invalid: no such host"), "hostname did not resolve"},
		{"other", errors.New("something odd"), "something odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeDialError(tt.err))
		})
	}
}

// localTarget builds a target pointed at a loopback address.
func localTarget(t *testing.T, addr string) registry.Target {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	tgt := registry.NewTarget("local", host, port, "tester")
	return *tgt
}

func TestProbeOnline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	res := Probe(localTarget(t, ln.Addr().String()), QuickTimeout)

	assert.Equal(t, registry.HealthOnline, res.Health)
	assert.Equal(t, registry.SecuritySecure, res.Security, "agent auth should classify secure")
	assert.Empty(t, res.Err)
	assert.Greater(t, res.Latency, time.Duration(0))
}

func TestProbeRefused(t *testing.T) {
	// Grab a loopback port and close it so the dial is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	target := localTarget(t, ln.Addr().String())
	ln.Close()

	res := Probe(target, QuickTimeout)

	assert.Equal(t, registry.HealthOffline, res.Health)
	assert.Equal(t, registry.SecurityUnknown, res.Security)
	assert.NotEmpty(t, res.Err)
}

func TestProbeUnresolvableHost(t *testing.T) {
	tgt := registry.NewTarget("bad", "ghost-test.invalid", 22, "tester")

	res := Probe(*tgt, 2*time.Second)

	assert.Equal(t, registry.HealthOffline, res.Health)
	assert.NotEmpty(t, res.Err)
}
