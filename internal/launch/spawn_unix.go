//go:build !windows

package launch

import (
	"os/exec"
	"syscall"
)

// spawnDetached starts cmd with no inherited stdio and in its own session,
// then releases the process handle so the child's lifetime is independent
// of ghost. The pid is returned immediately; the child is never waited on.
func spawnDetached(cmd *exec.Cmd) (int, error) {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		// The child is already running; a release failure only leaks a
		// handle in this process.
		return pid, nil
	}
	return pid, nil
}
