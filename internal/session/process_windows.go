//go:build windows

package session

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// processAlive queries the process list, since Windows has no null-signal
// probe. A failed query counts as dead.
func processAlive(pid int) bool {
	out, err := exec.Command("tasklist", "/FI", fmt.Sprintf("PID eq %d", pid), "/NH", "/FO", "CSV").Output()
	if err != nil {
		return false
	}
	return strings.Contains(string(out), strconv.Itoa(pid))
}

// terminateProcess force-kills via taskkill; there is no graceful SIGTERM
// equivalent for console-less children.
func terminateProcess(pid int) error {
	return exec.Command("taskkill", "/F", "/PID", strconv.Itoa(pid)).Run()
}
