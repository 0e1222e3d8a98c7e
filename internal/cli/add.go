package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/ghost/internal/config"
	"github.com/rileyhilliard/ghost/internal/errors"
	"github.com/rileyhilliard/ghost/internal/registry"
)

// addFlags holds the non-interactive add inputs.
type addFlags struct {
	Name        string
	Host        string
	Port        int
	User        string
	Auth        string
	KeyPath     string
	Description string
}

// addCommand adds a target, interactively unless --host was given.
func addCommand(flags addFlags) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	var t *registry.Target
	if flags.Host != "" {
		t, err = targetFromFlags(flags)
	} else {
		t, err = collectTargetForm()
	}
	if err != nil {
		return err
	}
	if t == nil {
		fmt.Println("Cancelled.")
		return nil
	}

	for _, existing := range cfg.Targets() {
		if strings.EqualFold(existing.Name, t.Name) {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Target '%s' already exists", t.Name),
				"Choose a different name, or remove the existing one first")
		}
	}

	cfg.Servers[t.ID] = config.Server{
		Name:        t.Name,
		Host:        t.Host,
		Port:        t.Port,
		User:        t.User,
		Auth:        t.Auth.Type.String(),
		KeyPath:     t.Auth.KeyPath,
		Description: t.Description,
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}

	fmt.Printf("✓ Added target '%s' (%s)\n", t.Name, t.ConnectionString())
	return nil
}

// targetFromFlags builds a target from the non-interactive flags.
func targetFromFlags(flags addFlags) (*registry.Target, error) {
	if flags.Name == "" {
		flags.Name = flags.Host
	}
	if flags.User == "" {
		return nil, errors.New(errors.ErrConfig,
			"--user is required with --host",
			"Pass the login user, e.g. --user deploy")
	}

	t := registry.NewTarget(flags.Name, flags.Host, flags.Port, flags.User)
	t.Auth = registry.AuthMethod{
		Type:    registry.ParseAuthType(flags.Auth),
		KeyPath: flags.KeyPath,
	}
	t.Description = flags.Description
	return t, nil
}

// collectTargetForm runs the interactive form. Returns nil when the user
// cancels.
func collectTargetForm() (*registry.Target, error) {
	var (
		name, host, user, keyPath, description string
		portStr                                = "22"
		auth                                   = "agent"
		confirmed                              bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("How the target appears in lists").
				Value(&name).
				Validate(required("name")),
			huh.NewInput().
				Title("Host").
				Description("Hostname or IP address").
				Value(&host).
				Validate(required("host")),
			huh.NewInput().
				Title("Port").
				Value(&portStr).
				Validate(validPort),
			huh.NewInput().
				Title("User").
				Value(&user).
				Validate(required("user")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Authentication").
				Options(
					huh.NewOption("SSH agent", "agent"),
					huh.NewOption("Private key file", "key"),
					huh.NewOption("Password", "password"),
					huh.NewOption("Keyboard-interactive", "interactive"),
				).
				Value(&auth),
			huh.NewInput().
				Title("Key path").
				Description("Only used with key auth; ~ is expanded").
				Value(&keyPath),
			huh.NewInput().
				Title("Description").
				Description("Optional note").
				Value(&description),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Add this target?").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return nil, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't read your input",
			"Try again, or add non-interactively with flags")
	}
	if !confirmed {
		return nil, nil
	}

	port, _ := strconv.Atoi(portStr)
	t := registry.NewTarget(strings.TrimSpace(name), strings.TrimSpace(host), port, strings.TrimSpace(user))
	t.Auth = registry.AuthMethod{
		Type:    registry.ParseAuthType(auth),
		KeyPath: strings.TrimSpace(keyPath),
	}
	t.Description = strings.TrimSpace(description)
	return t, nil
}

// required returns a huh validator that rejects blank input.
func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validPort rejects anything outside 1-65535.
func validPort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be 1-65535")
	}
	return nil
}
