// Package terminal detects which terminal emulator can host a new SSH
// session window. Every candidate is described by one catalog entry; adding
// a terminal means adding an entry, not another branch.
package terminal

import (
	"strings"

	"github.com/rileyhilliard/ghost/internal/util"
)

// DetectStrategy selects how a catalog entry's presence is checked when the
// environment marker doesn't identify it.
type DetectStrategy int

const (
	// DetectPath looks the command up on PATH.
	DetectPath DetectStrategy = iota
	// DetectProcess checks for a running process by name. Used for
	// terminals installed as apps without a CLI on PATH.
	DetectProcess
	// DetectPlatform trusts the entry's platform restriction alone.
	DetectPlatform
)

// Terminal describes one terminal emulator candidate: how to recognize it,
// whether it can open new windows, and how to wrap an ssh argv into its
// launch command.
type Terminal struct {
	// Name is the human-readable name used in error messages.
	Name string

	// Command is the executable to look up and invoke.
	Command string

	// EnvMarker matches $TERM_PROGRAM when running inside this terminal.
	EnvMarker string

	// Strategy selects the presence check.
	Strategy DetectStrategy

	// ProcessName is the pattern for DetectProcess lookups.
	ProcessName string

	// Platform restricts the entry to one GOOS value ("" = any).
	Platform string

	// CanSpawn is false for terminals that cannot open a new window
	// programmatically. Such entries are recognized but never returned
	// as available.
	CanSpawn bool

	// WrapArgs converts an ssh argv into the argument list for Command.
	WrapArgs func(sshArgv []string) []string
}

// execString joins an argv into a single shell command string for terminals
// that take the command as one -e argument.
func execString(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = util.ShellQuote(a)
	}
	return strings.Join(quoted, " ")
}

// Catalog returns the candidate terminals in priority order. Modern
// GPU-accelerated terminals come first, then the desktop-environment
// defaults, then platform-native fallbacks.
func Catalog() []Terminal {
	return []Terminal{
		{
			Name:      "Ghostty",
			Command:   "ghostty",
			EnvMarker: "ghostty",
			CanSpawn:  true,
			WrapArgs: func(argv []string) []string {
				return append([]string{"-e"}, argv...)
			},
		},
		{
			Name:      "Alacritty",
			Command:   "alacritty",
			EnvMarker: "Alacritty",
			CanSpawn:  true,
			WrapArgs: func(argv []string) []string {
				return append([]string{"-e"}, argv...)
			},
		},
		{
			Name:      "kitty",
			Command:   "kitty",
			EnvMarker: "kitty",
			CanSpawn:  true,
			WrapArgs: func(argv []string) []string {
				return argv
			},
		},
		{
			Name:      "WezTerm",
			Command:   "wezterm",
			EnvMarker: "WezTerm",
			CanSpawn:  true,
			WrapArgs: func(argv []string) []string {
				return append([]string{"start", "--"}, argv...)
			},
		},
		{
			Name:     "GNOME Terminal",
			Command:  "gnome-terminal",
			CanSpawn: true,
			WrapArgs: func(argv []string) []string {
				return []string{"--", "bash", "-c", execString(argv)}
			},
		},
		{
			Name:     "Konsole",
			Command:  "konsole",
			CanSpawn: true,
			WrapArgs: func(argv []string) []string {
				return []string{"-e", execString(argv)}
			},
		},
		{
			Name:     "XFCE Terminal",
			Command:  "xfce4-terminal",
			CanSpawn: true,
			WrapArgs: func(argv []string) []string {
				return []string{"-e", execString(argv)}
			},
		},
		{
			Name:     "xterm",
			Command:  "xterm",
			CanSpawn: true,
			WrapArgs: func(argv []string) []string {
				return []string{"-e", execString(argv)}
			},
		},
		{
			Name:      "Apple Terminal",
			Command:   "osascript",
			EnvMarker: "Apple_Terminal",
			Strategy:  DetectPlatform,
			Platform:  "darwin",
			CanSpawn:  true,
			WrapArgs: func(argv []string) []string {
				script := `tell application "Terminal" to do script "` +
					strings.ReplaceAll(execString(argv), `"`, `\"`) + `"`
				return []string{"-e", script}
			},
		},
		{
			Name:     "Windows Terminal",
			Command:  "wt",
			Platform: "windows",
			CanSpawn: true,
			WrapArgs: func(argv []string) []string {
				return argv
			},
		},
		{
			// Warp installs as an app bundle without a spawnable CLI, so
			// presence is checked by running process. It also cannot open
			// new windows programmatically, so it is never selected.
			Name:        "Warp",
			Command:     "warp",
			EnvMarker:   "WarpTerminal",
			Strategy:    DetectProcess,
			ProcessName: "warp-terminal",
			CanSpawn:    false,
		},
	}
}

// SupportedNames lists the spawn-capable terminal names for error messages.
func SupportedNames() []string {
	var names []string
	for _, t := range Catalog() {
		if t.CanSpawn {
			names = append(names, t.Name)
		}
	}
	return names
}
