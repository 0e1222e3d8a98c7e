package terminal

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/rileyhilliard/ghost/internal/logger"
)

// Detector finds the best available terminal emulator for spawning new
// SSH session windows. The lookup functions are fields so tests can run
// the full decision procedure without touching the real system.
type Detector struct {
	catalog []Terminal
	log     logger.Logger

	// Overridable system probes.
	getenv     func(string) string
	lookPath   func(string) (string, error)
	procExists func(name string) bool
	goos       string
}

// NewDetector creates a detector over the default catalog.
func NewDetector() *Detector {
	return &Detector{
		catalog:    Catalog(),
		log:        logger.NewEnvLogger("[terminal]"),
		getenv:     os.Getenv,
		lookPath:   exec.LookPath,
		procExists: processExists,
		goos:       runtime.GOOS,
	}
}

// SetLogger replaces the detector's logger.
func (d *Detector) SetLogger(l logger.Logger) {
	d.log = l
}

// Detect returns the first available spawn-capable terminal in priority
// order. The environment marker is consulted first: if we are running
// inside a known terminal, prefer it without any process spawns or PATH
// walks. ok is false when no usable terminal exists, in which case callers
// fall back to taking over the current terminal.
func (d *Detector) Detect() (Terminal, bool) {
	if t, ok := d.fromEnvMarker(); ok {
		return t, true
	}

	for _, t := range d.catalog {
		if !d.available(t) {
			continue
		}
		if !t.CanSpawn {
			d.log.Warn("%s detected but can't spawn new windows; skipping", t.Name)
			continue
		}
		d.log.Debug("detected %s", t.Name)
		return t, true
	}

	return Terminal{}, false
}

// fromEnvMarker matches $TERM_PROGRAM against the catalog. A marker match
// for a non-spawning terminal short-circuits detection entirely: we are
// running inside that terminal, and pretending another emulator is
// "available" would open windows the user didn't ask for.
func (d *Detector) fromEnvMarker() (Terminal, bool) {
	marker := d.getenv("TERM_PROGRAM")
	if marker == "" {
		return Terminal{}, false
	}

	for _, t := range d.catalog {
		if t.EnvMarker == "" || t.EnvMarker != marker {
			continue
		}
		if !t.CanSpawn {
			d.log.Warn("%s detected but doesn't support new window spawning; falling back to direct connection", t.Name)
			return Terminal{}, false
		}
		if t.Platform != "" && t.Platform != d.goos {
			return Terminal{}, false
		}
		return t, true
	}

	return Terminal{}, false
}

// available runs the entry's presence check.
func (d *Detector) available(t Terminal) bool {
	if t.Platform != "" && t.Platform != d.goos {
		return false
	}

	switch t.Strategy {
	case DetectProcess:
		return d.procExists(t.ProcessName)
	case DetectPlatform:
		return true
	default:
		_, err := d.lookPath(t.Command)
		return err == nil
	}
}

// processExists reports whether a process matching name is running.
func processExists(name string) bool {
	out := exec.Command("pgrep", "-f", name)
	return out.Run() == nil
}
