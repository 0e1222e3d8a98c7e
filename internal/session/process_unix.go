//go:build !windows

package session

import (
	"os"
	"syscall"
)

// processAlive checks liveness with a null signal. Signal delivery isn't
// attempted; the kernel only validates that the pid exists and we may
// signal it. EPERM means the process exists but belongs to someone else,
// which still counts as alive.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = proc.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return err == syscall.EPERM
}

// terminateProcess asks the process to exit with SIGTERM.
func terminateProcess(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Signal(syscall.SIGTERM)
}
