package launch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/ghost/internal/registry"
)

func argTarget(port int, auth registry.AuthMethod) registry.Target {
	t := registry.NewTarget("web", "web.example.com", port, "admin")
	t.Auth = auth
	return *t
}

func TestBuildSSHArgs(t *testing.T) {
	tests := []struct {
		name        string
		target      registry.Target
		wantParts   []string
		absentParts []string
	}{
		{
			name:        "agent auth default port",
			target:      argTarget(22, registry.AuthMethod{Type: registry.AuthAgent}),
			wantParts:   []string{"admin@web.example.com"},
			absentParts: []string{"-p", "-i", "PreferredAuthentications"},
		},
		{
			name:      "custom port",
			target:    argTarget(2222, registry.AuthMethod{Type: registry.AuthAgent}),
			wantParts: []string{"-p", "2222"},
		},
		{
			name:      "key auth",
			target:    argTarget(22, registry.AuthMethod{Type: registry.AuthKey, KeyPath: "/keys/id_ed25519"}),
			wantParts: []string{"-i", "/keys/id_ed25519"},
		},
		{
			name:        "key auth without path",
			target:      argTarget(22, registry.AuthMethod{Type: registry.AuthKey}),
			absentParts: []string{"-i"},
		},
		{
			name:      "password auth",
			target:    argTarget(22, registry.AuthMethod{Type: registry.AuthPassword}),
			wantParts: []string{"PreferredAuthentications=password"},
		},
		{
			name:      "interactive auth",
			target:    argTarget(22, registry.AuthMethod{Type: registry.AuthInteractive}),
			wantParts: []string{"PreferredAuthentications=keyboard-interactive"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := BuildSSHArgs(tt.target)

			assert.Equal(t, "ssh", args[0])
			assert.Equal(t, "admin@web.example.com", args[len(args)-1],
				"destination must be the final argument")

			joined := strings.Join(args, " ")
			for _, part := range tt.wantParts {
				assert.Contains(t, args, part, "missing %q in %q", part, joined)
			}
			for _, part := range tt.absentParts {
				assert.NotContains(t, args, part, "unexpected %q in %q", part, joined)
			}

			// Keepalive settings are always present.
			assert.Contains(t, joined, "ServerAliveInterval=60")
			assert.Contains(t, joined, "ConnectTimeout=10")
		})
	}
}

func TestBuildSSHArgsExpandsKeyTilde(t *testing.T) {
	target := argTarget(22, registry.AuthMethod{Type: registry.AuthKey, KeyPath: "~/.ssh/id_ed25519"})

	args := BuildSSHArgs(target)
	for i, a := range args {
		if a == "-i" {
			assert.False(t, strings.HasPrefix(args[i+1], "~"),
				"key path must be expanded, got %q", args[i+1])
			return
		}
	}
	t.Fatal("no -i flag emitted")
}
