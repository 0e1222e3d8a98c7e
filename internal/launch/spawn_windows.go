//go:build windows

package launch

import (
	"os/exec"
	"syscall"
)

// spawnDetached starts cmd with no inherited stdio and detached from the
// current console, then releases the process handle so the child's lifetime
// is independent of ghost.
func spawnDetached(cmd *exec.Cmd) (int, error) {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	// DETACHED_PROCESS | CREATE_NEW_PROCESS_GROUP
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: 0x00000008 | 0x00000200}

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	pid := cmd.Process.Pid
	_ = cmd.Process.Release()
	return pid, nil
}
