package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kevinburke/ssh_config"

	"github.com/rileyhilliard/ghost/internal/config"
	"github.com/rileyhilliard/ghost/internal/errors"
	"github.com/rileyhilliard/ghost/internal/registry"
)

// importCommand reads an OpenSSH client config and adds its concrete host
// aliases as targets. Wildcard patterns and already-configured names are
// skipped, so re-running import is safe.
func importCommand(path string, dryRun bool) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}

	if path == "" {
		path = config.ExpandTilde("~/.ssh/config")
	} else {
		path = config.ExpandTilde(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't open %s", path),
			"Pass the config location with --file")
	}
	defer f.Close()

	sshCfg, err := ssh_config.Decode(f)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't parse %s", path),
			"Check the file for syntax errors")
	}

	existing := make(map[string]bool)
	for _, s := range cfg.Servers {
		existing[strings.ToLower(s.Name)] = true
	}

	var added, skipped int
	for _, host := range sshCfg.Hosts {
		for _, pattern := range host.Patterns {
			alias := pattern.String()
			if strings.ContainsAny(alias, "*?!") {
				continue
			}
			if existing[strings.ToLower(alias)] {
				skipped++
				continue
			}

			t := targetFromSSHConfig(sshCfg, alias)
			if t == nil {
				continue
			}

			existing[strings.ToLower(alias)] = true
			added++
			if dryRun {
				fmt.Printf("would add %s (%s)\n", t.Name, t.ConnectionString())
				continue
			}
			cfg.Servers[t.ID] = config.Server{
				Name:    t.Name,
				Host:    t.Host,
				Port:    t.Port,
				User:    t.User,
				Auth:    t.Auth.Type.String(),
				KeyPath: t.Auth.KeyPath,
			}
			fmt.Printf("✓ %s (%s)\n", t.Name, t.ConnectionString())
		}
	}

	if added == 0 {
		fmt.Printf("Nothing to import from %s (%d already configured)\n", path, skipped)
		return nil
	}
	if dryRun {
		fmt.Printf("\n%d target(s) would be imported\n", added)
		return nil
	}

	if err := config.Save(cfg, cfgPath); err != nil {
		return err
	}
	fmt.Printf("\nImported %d target(s), skipped %d\n", added, skipped)
	return nil
}

// targetFromSSHConfig resolves one alias's settings into a target. Returns
// nil for aliases with no usable user (ssh would fall back to the local
// user, but a portable config entry needs one spelled out).
func targetFromSSHConfig(sshCfg *ssh_config.Config, alias string) *registry.Target {
	get := func(key string) string {
		v, err := sshCfg.Get(alias, key)
		if err != nil {
			return ""
		}
		return v
	}

	hostname := get("HostName")
	if hostname == "" {
		hostname = alias
	}

	user := get("User")
	if user == "" {
		// Fall back to the local username so the entry stays connectable.
		user = os.Getenv("USER")
		if user == "" {
			return nil
		}
	}

	port := 22
	if p := get("Port"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}

	t := registry.NewTarget(alias, hostname, port, user)
	if identity := get("IdentityFile"); identity != "" && identity != ssh_config.Default("IdentityFile") {
		t.Auth = registry.AuthMethod{Type: registry.AuthKey, KeyPath: identity}
	}
	return t
}
