package terminal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/ghost/internal/logger"
)

// fakeDetector builds a detector where nothing is installed unless the test
// says so.
func fakeDetector() *Detector {
	return &Detector{
		catalog:    Catalog(),
		log:        logger.Noop(),
		getenv:     func(string) string { return "" },
		lookPath:   func(string) (string, error) { return "", errors.New("not found") },
		procExists: func(string) bool { return false },
		goos:       "linux",
	}
}

// installed returns a lookPath that finds only the named commands.
func installed(names ...string) func(string) (string, error) {
	set := make(map[string]bool)
	for _, n := range names {
		set[n] = true
	}
	return func(cmd string) (string, error) {
		if set[cmd] {
			return "/usr/bin/" + cmd, nil
		}
		return "", errors.New("not found")
	}
}

func TestDetectNothingAvailable(t *testing.T) {
	d := fakeDetector()

	_, ok := d.Detect()
	assert.False(t, ok)
}

func TestDetectPriorityOrder(t *testing.T) {
	d := fakeDetector()
	d.lookPath = installed("xterm", "alacritty", "gnome-terminal")

	term, ok := d.Detect()
	require.True(t, ok)
	assert.Equal(t, "Alacritty", term.Name, "higher-priority terminal should win")
}

func TestDetectFallsThroughToXterm(t *testing.T) {
	d := fakeDetector()
	d.lookPath = installed("xterm")

	term, ok := d.Detect()
	require.True(t, ok)
	assert.Equal(t, "xterm", term.Name)
}

func TestEnvMarkerFastPath(t *testing.T) {
	d := fakeDetector()
	d.getenv = func(key string) string {
		if key == "TERM_PROGRAM" {
			return "kitty"
		}
		return ""
	}
	// Nothing on PATH: the marker alone identifies the terminal.

	term, ok := d.Detect()
	require.True(t, ok)
	assert.Equal(t, "kitty", term.Name)
}

func TestEnvMarkerUnknownFallsBackToScan(t *testing.T) {
	d := fakeDetector()
	d.getenv = func(key string) string {
		if key == "TERM_PROGRAM" {
			return "SomeFutureTerminal"
		}
		return ""
	}
	d.lookPath = installed("konsole")

	term, ok := d.Detect()
	require.True(t, ok)
	assert.Equal(t, "Konsole", term.Name)
}

func TestWarpMarkerShortCircuitsToNotFound(t *testing.T) {
	d := fakeDetector()
	d.getenv = func(key string) string {
		if key == "TERM_PROGRAM" {
			return "WarpTerminal"
		}
		return ""
	}
	// Other terminals are installed, but running inside Warp means a new
	// window would come from a different emulator than the one in use.
	d.lookPath = installed("alacritty")

	buf := logger.NewBufferLogger()
	d.SetLogger(buf)

	_, ok := d.Detect()
	assert.False(t, ok)
	assert.True(t, buf.HasLevel("warn"), "Warp exclusion should be logged")
}

func TestWarpByProcessIsSkipped(t *testing.T) {
	d := fakeDetector()
	d.procExists = func(name string) bool { return name == "warp-terminal" }

	buf := logger.NewBufferLogger()
	d.SetLogger(buf)

	_, ok := d.Detect()
	assert.False(t, ok)
	assert.True(t, buf.HasLevel("warn"))
}

func TestPlatformRestriction(t *testing.T) {
	d := fakeDetector()
	d.lookPath = installed("wt")

	// Windows Terminal entry is restricted to windows.
	_, ok := d.Detect()
	assert.False(t, ok)

	d.goos = "windows"
	term, ok := d.Detect()
	require.True(t, ok)
	assert.Equal(t, "Windows Terminal", term.Name)
}

func TestAppleTerminalOnlyOnDarwin(t *testing.T) {
	d := fakeDetector()
	d.lookPath = installed("osascript")

	_, ok := d.Detect()
	assert.False(t, ok, "Apple Terminal must not match on linux")

	d.goos = "darwin"
	term, ok := d.Detect()
	require.True(t, ok)
	assert.Equal(t, "Apple Terminal", term.Name)
}

func TestSupportedNamesExcludesNonSpawning(t *testing.T) {
	names := SupportedNames()
	assert.NotEmpty(t, names)
	assert.NotContains(t, names, "Warp")
	assert.Contains(t, names, "Ghostty")
}

func TestWrapArgs(t *testing.T) {
	ssh := []string{"ssh", "-p", "2222", "admin@host"}
	byName := make(map[string]Terminal)
	for _, term := range Catalog() {
		byName[term.Name] = term
	}

	tests := []struct {
		terminal string
		want     []string
	}{
		{"Ghostty", []string{"-e", "ssh", "-p", "2222", "admin@host"}},
		{"kitty", []string{"ssh", "-p", "2222", "admin@host"}},
		{"WezTerm", []string{"start", "--", "ssh", "-p", "2222", "admin@host"}},
		{"GNOME Terminal", []string{"--", "bash", "-c", "'ssh' '-p' '2222' 'admin@host'"}},
		{"Konsole", []string{"-e", "'ssh' '-p' '2222' 'admin@host'"}},
	}

	for _, tt := range tests {
		t.Run(tt.terminal, func(t *testing.T) {
			term, ok := byName[tt.terminal]
			require.True(t, ok)
			assert.Equal(t, tt.want, term.WrapArgs(ssh))
		})
	}
}

func TestExecStringQuotesArguments(t *testing.T) {
	got := execString([]string{"ssh", "user@host", "echo 'hi'"})
	assert.Equal(t, `'ssh' 'user@host' 'echo '\''hi'\'''`, got)
}
