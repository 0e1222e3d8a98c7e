package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rileyhilliard/ghost/internal/config"
	"github.com/rileyhilliard/ghost/internal/errors"
	"github.com/rileyhilliard/ghost/internal/launch"
	"github.com/rileyhilliard/ghost/internal/registry"
)

// connectCommand launches an SSH session to the named target.
func connectCommand(name string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	t, err := findTarget(cfg, name)
	if err != nil {
		return err
	}

	mode, err := resolveMode(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Connecting to %s (%s)…\n", t.Name, t.ConnectionString())

	launcher := launch.NewLauncher()
	pid, tookOver, err := launcher.Launch(*t, mode)
	if err != nil {
		return err
	}

	if !tookOver {
		fmt.Printf("✓ Opened terminal window (pid %d)\n", pid)
	}
	return nil
}

// findTarget resolves a target by name, case-insensitively, listing the
// available names when nothing matches.
func findTarget(cfg *config.Config, name string) (*registry.Target, error) {
	targets := cfg.Targets()

	for _, t := range targets {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}

	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Name)
	}
	sort.Strings(names)

	suggestion := "Add it with 'ghost add'"
	if len(names) > 0 {
		suggestion = "Available targets: " + strings.Join(names, ", ")
	}
	return nil, errors.New(errors.ErrConfig,
		fmt.Sprintf("No target named '%s'", name),
		suggestion)
}
