package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/ghost/internal/config"
	"github.com/rileyhilliard/ghost/internal/errors"
)

// removeCommand deletes a target, with an interactive picker when no name
// was given.
func removeCommand(name string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Servers) == 0 {
		return errors.New(errors.ErrConfig,
			"No targets configured",
			"Nothing to remove")
	}

	if name == "" {
		name, err = pickTarget(cfg)
		if err != nil {
			return err
		}
		if name == "" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	id := ""
	for targetID, s := range cfg.Servers {
		if strings.EqualFold(s.Name, name) {
			id = targetID
			break
		}
	}
	if id == "" {
		var available []string
		for _, s := range cfg.Servers {
			available = append(available, s.Name)
		}
		sort.Strings(available)
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("No target named '%s'", name),
			"Available targets: "+strings.Join(available, ", "))
	}

	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove target '%s'?", name)).
				Description("This cannot be undone").
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			fmt.Println("Cancelled.")
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't read your confirmation",
			"Try again: ghost remove <name>")
	}
	if !confirm {
		fmt.Println("Cancelled.")
		return nil
	}

	delete(cfg.Servers, id)
	if err := config.Save(cfg, path); err != nil {
		return err
	}

	fmt.Printf("✓ Removed target '%s'\n", name)
	return nil
}

// pickTarget shows a selector over the configured targets and returns the
// chosen name, or empty on cancel.
func pickTarget(cfg *config.Config) (string, error) {
	var names []string
	byName := make(map[string]config.Server)
	for _, s := range cfg.Servers {
		names = append(names, s.Name)
		byName[s.Name] = s
	}
	sort.Strings(names)

	options := make([]huh.Option[string], len(names))
	for i, n := range names {
		s := byName[n]
		options[i] = huh.NewOption(fmt.Sprintf("%s - %s@%s", n, s.User, s.Host), n)
	}

	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select target to remove").
				Options(options...).
				Value(&name),
		),
	)
	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return "", nil
		}
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't get your selection",
			"Try again: ghost remove <name>")
	}
	return name, nil
}
