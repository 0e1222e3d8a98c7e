// Package config loads and persists the ghost configuration file at
// ~/.config/ghost/config.yaml. Loading tolerates a missing file by seeding
// a fresh config with example servers so a first run has something to show.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/ghost/internal/errors"
	"github.com/rileyhilliard/ghost/internal/registry"
)

// DefaultConfigDir returns the directory holding the config file.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't determine your home directory",
			"Set the HOME environment variable")
	}
	return filepath.Join(home, ".config", "ghost"), nil
}

// DefaultConfigPath returns the full path of the config file.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from path. If path is empty the default location is
// used. A missing file yields a seeded default config (and is not an error);
// a malformed file is.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("version", CurrentConfigVersion)
	v.SetDefault("settings.refresh_interval", 30*time.Second)
	v.SetDefault("settings.probe_timeout", 5*time.Second)
	v.SetDefault("settings.connection_mode", "auto")
	v.SetDefault("settings.show_only_online", false)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			seedExampleServers(cfg)
			return cfg, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			cfg := DefaultConfig()
			seedExampleServers(cfg)
			return cfg, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't parse config file %s", path),
			"Fix the YAML syntax or delete the file to start fresh")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't decode config file %s", path),
			"Check the field types against the documented format")
	}

	if cfg.Servers == nil {
		cfg.Servers = make(map[string]Server)
	}
	if cfg.Settings.RefreshInterval <= 0 {
		cfg.Settings.RefreshInterval = 30 * time.Second
	}
	if cfg.Settings.ProbeTimeout <= 0 {
		cfg.Settings.ProbeTimeout = 5 * time.Second
	}
	if cfg.Settings.ConnectionMode == "" {
		cfg.Settings.ConnectionMode = "auto"
	}

	return &cfg, nil
}

// seedExampleServers populates a brand-new config with a few placeholder
// entries so the UI isn't empty on first launch. The hosts don't exist and
// will probe Offline until edited.
func seedExampleServers(cfg *Config) {
	web := registry.NewTarget("example-web", "web.example.com", 22, "admin")
	web.Auth = registry.AuthMethod{Type: registry.AuthKey, KeyPath: "~/.ssh/id_ed25519"}
	db := registry.NewTarget("example-db", "db.example.com", 2222, "postgres")

	for _, t := range []*registry.Target{web, db} {
		t.Description = "Example entry; edit or remove it"
		cfg.Servers[t.ID] = Server{
			Name:        t.Name,
			Host:        t.Host,
			Port:        t.Port,
			User:        t.User,
			Auth:        t.Auth.Type.String(),
			KeyPath:     t.Auth.KeyPath,
			Description: t.Description,
		}
	}
}
