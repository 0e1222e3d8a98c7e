package launch

import (
	"fmt"
	"strconv"

	"github.com/rileyhilliard/ghost/internal/config"
	"github.com/rileyhilliard/ghost/internal/registry"
)

// BuildSSHArgs constructs the ssh argv for a target, including auth-specific
// flags. Key paths are tilde-expanded locally since the spawned terminal
// won't run the arguments through a shell.
func BuildSSHArgs(t registry.Target) []string {
	args := []string{"ssh"}

	if t.Port != 0 && t.Port != 22 {
		args = append(args, "-p", strconv.Itoa(t.Port))
	}

	switch t.Auth.Type {
	case registry.AuthKey:
		if t.Auth.KeyPath != "" {
			args = append(args, "-i", config.ExpandTilde(t.Auth.KeyPath))
		}
	case registry.AuthPassword:
		args = append(args, "-o", "PreferredAuthentications=password")
	case registry.AuthInteractive:
		args = append(args, "-o", "PreferredAuthentications=keyboard-interactive")
	case registry.AuthAgent:
		// Agent auth is ssh's default; no flags needed.
	}

	// Keepalive and timeout settings for interactive sessions.
	args = append(args,
		"-o", "ServerAliveInterval=60",
		"-o", "ServerAliveCountMax=3",
		"-o", "ConnectTimeout=10",
		"-o", "BatchMode=no",
	)

	args = append(args, fmt.Sprintf("%s@%s", t.User, t.Host))
	return args
}
