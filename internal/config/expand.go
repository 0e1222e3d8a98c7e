package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde expands a leading ~/ in a path to the user's home directory.
// Paths without a tilde prefix are returned unchanged.
func ExpandTilde(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ExpandEnv expands ${VAR} and $VAR references and a leading tilde.
func ExpandEnv(path string) string {
	return ExpandTilde(os.ExpandEnv(path))
}
