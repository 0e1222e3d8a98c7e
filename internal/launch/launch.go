// Package launch decides how to open an interactive SSH session for a
// target (spawn a new terminal window, take over the current terminal, or
// fail) and executes that decision. Nothing is ever spawned against a
// target that doesn't answer a verification probe first.
package launch

import (
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rileyhilliard/ghost/internal/errors"
	"github.com/rileyhilliard/ghost/internal/logger"
	"github.com/rileyhilliard/ghost/internal/probe"
	"github.com/rileyhilliard/ghost/internal/registry"
	"github.com/rileyhilliard/ghost/internal/terminal"
	"github.com/rileyhilliard/ghost/internal/util"
)

// Mode is the caller-selected launch policy, fixed for the process lifetime.
type Mode int

const (
	// ModeAuto prefers a new terminal window, falling back to taking
	// over the current terminal when none is available.
	ModeAuto Mode = iota
	// ModeNewWindow requires a new terminal window and fails otherwise.
	ModeNewWindow
	// ModeDirect always takes over the current terminal.
	ModeDirect
)

// String returns the flag-value name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeNewWindow:
		return "new-window"
	case ModeDirect:
		return "direct"
	default:
		return "auto"
	}
}

// ParseMode converts a flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return ModeAuto, nil
	case "new-window":
		return ModeNewWindow, nil
	case "direct":
		return ModeDirect, nil
	default:
		return ModeAuto, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown connection mode '%s'", s),
			"Valid modes: auto, new-window, direct")
	}
}

// Plan is a resolved launch decision. Exactly one of Window or Takeover is
// set: Window is the detached terminal command to spawn, Takeover is the
// ssh command to run in the current terminal.
type Plan struct {
	Target   registry.Target
	Window   *exec.Cmd
	Takeover *exec.Cmd
}

// Detector yields terminal candidates. Satisfied by *terminal.Detector.
type Detector interface {
	Detect() (terminal.Terminal, bool)
}

// Launcher builds and executes launch plans. The probe, detection, and
// process primitives are injectable for tests.
type Launcher struct {
	detector Detector
	log      logger.Logger

	probeFn func(t registry.Target, timeout time.Duration) registry.ProbeResult
	spawn   func(cmd *exec.Cmd) (pid int, err error)
	run     func(cmd *exec.Cmd) error

	// SuspendUI/RestoreUI bracket a takeover when the caller owns a
	// raw-mode/alt-screen terminal. RestoreUI always runs, even when the
	// takeover fails. Both may be nil.
	SuspendUI func() error
	RestoreUI func() error
}

// NewLauncher creates a launcher using the real detector and process
// primitives.
func NewLauncher() *Launcher {
	return &Launcher{
		detector: terminal.NewDetector(),
		log:      logger.NewEnvLogger("[launch]"),
		probeFn:  probe.Probe,
		spawn:    spawnDetached,
		run:      runInherited,
	}
}

// SetDetector replaces the terminal detector.
func (l *Launcher) SetDetector(d Detector) { l.detector = d }

// SetProbeFunc replaces the verification probe.
func (l *Launcher) SetProbeFunc(fn func(registry.Target, time.Duration) registry.ProbeResult) {
	l.probeFn = fn
}

// SetProcessFuncs replaces the spawn and run primitives.
func (l *Launcher) SetProcessFuncs(spawn func(*exec.Cmd) (int, error), run func(*exec.Cmd) error) {
	if spawn != nil {
		l.spawn = spawn
	}
	if run != nil {
		l.run = run
	}
}

// SetLogger replaces the launcher's logger.
func (l *Launcher) SetLogger(lg logger.Logger) { l.log = lg }

// Plan verifies the target is reachable, then resolves the mode into a
// concrete launch decision. An unreachable target fails here, before any
// process is created, carrying the probe's cause text.
func (l *Launcher) Plan(t registry.Target, mode Mode) (*Plan, error) {
	res := l.probeFn(t, probe.VerifyTimeout)
	if res.Health != registry.HealthOnline {
		cause := res.Err
		if cause == "" {
			cause = "connection failed"
		}
		return nil, errors.New(errors.ErrLaunch,
			fmt.Sprintf("Can't connect to '%s': %s", t.Name, cause),
			"Check the host is up, then probe it with 'ghost probe "+t.Name+"'")
	}

	sshArgs := BuildSSHArgs(t)

	switch mode {
	case ModeDirect:
		return &Plan{Target: t, Takeover: command(sshArgs)}, nil

	case ModeNewWindow:
		term, ok := l.detector.Detect()
		if !ok {
			return nil, errors.New(errors.ErrLaunch,
				"No terminal emulator available for a new window",
				"Install one of: "+util.JoinOrDefault(terminal.SupportedNames(), "(none known)")+
					", or connect with --direct instead")
		}
		return &Plan{Target: t, Window: terminalCommand(term, sshArgs)}, nil

	default: // ModeAuto
		if term, ok := l.detector.Detect(); ok {
			return &Plan{Target: t, Window: terminalCommand(term, sshArgs)}, nil
		}
		l.log.Debug("no terminal candidate, falling back to direct connection")
		return &Plan{Target: t, Takeover: command(sshArgs)}, nil
	}
}

// Launch executes the full decision procedure for a target. For a
// new-window plan it returns the detached child's pid immediately. For a
// takeover plan it blocks until the ssh session ends and returns pid 0.
func (l *Launcher) Launch(t registry.Target, mode Mode) (pid int, tookOver bool, err error) {
	plan, err := l.Plan(t, mode)
	if err != nil {
		return 0, false, err
	}

	if plan.Window != nil {
		pid, err = l.Spawn(plan)
		return pid, false, err
	}

	return 0, true, l.RunTakeover(plan)
}

// Spawn launches a new-window plan as a fully detached child and returns
// its pid without waiting. The child owns no ghost stdio and outlives the
// parent.
func (l *Launcher) Spawn(plan *Plan) (int, error) {
	if plan.Window == nil {
		return 0, errors.New(errors.ErrLaunch,
			"Not a new-window launch plan",
			"This is a bug in the caller; report it")
	}

	l.log.Debug("spawning: %s", strings.Join(plan.Window.Args, " "))

	pid, err := l.spawn(plan.Window)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrLaunch,
			fmt.Sprintf("Couldn't start terminal for '%s'", plan.Target.Name),
			"The terminal may have been uninstalled since detection; try --direct")
	}

	l.log.Debug("spawned pid %d for %s", pid, plan.Target.Name)
	return pid, nil
}

// RunTakeover surrenders the current terminal to the ssh command until it
// exits. The UI suspend hook runs first and the restore hook always runs
// afterwards, regardless of how the session ended.
func (l *Launcher) RunTakeover(plan *Plan) error {
	if plan.Takeover == nil {
		return errors.New(errors.ErrLaunch,
			"Not a takeover launch plan",
			"This is a bug in the caller; report it")
	}

	if l.SuspendUI != nil {
		if err := l.SuspendUI(); err != nil {
			l.log.Warn("couldn't suspend UI before takeover: %v", err)
		}
	}
	defer func() {
		if l.RestoreUI != nil {
			if err := l.RestoreUI(); err != nil {
				l.log.Warn("couldn't restore UI after takeover: %v", err)
			}
		}
	}()

	if err := l.run(plan.Takeover); err != nil {
		// A non-zero ssh exit (remote shell exited non-zero, connection
		// dropped) isn't a launch failure; only report exec errors.
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) {
			return errors.WrapWithCode(err, errors.ErrLaunch,
				fmt.Sprintf("Couldn't run ssh for '%s'", plan.Target.Name),
				"Check that the ssh client is installed and on PATH")
		}
	}

	return nil
}

// command builds an exec.Cmd from an argv.
func command(argv []string) *exec.Cmd {
	return exec.Command(argv[0], argv[1:]...)
}

// terminalCommand wraps an ssh argv in a terminal emulator's launch command.
func terminalCommand(term terminal.Terminal, sshArgs []string) *exec.Cmd {
	return exec.Command(term.Command, term.WrapArgs(sshArgs)...)
}

// runInherited runs a command with the caller's stdio, blocking until exit.
func runInherited(cmd *exec.Cmd) error {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
