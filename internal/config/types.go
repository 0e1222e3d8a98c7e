package config

import (
	"time"

	"github.com/rileyhilliard/ghost/internal/registry"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete ghost configuration file.
type Config struct {
	Version  int               `yaml:"version" mapstructure:"version"`
	Settings Settings          `yaml:"settings" mapstructure:"settings"`
	Servers  map[string]Server `yaml:"servers" mapstructure:"servers"`
}

// Settings holds application-wide preferences.
type Settings struct {
	// RefreshInterval is how often the background health monitor sweeps
	// all targets.
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`

	// ProbeTimeout bounds each background reachability check.
	ProbeTimeout time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout"`

	// ConnectionMode is the default launch policy: auto, new-window,
	// or direct. Overridable per invocation with flags.
	ConnectionMode string `yaml:"connection_mode" mapstructure:"connection_mode"`

	// ShowOnlyOnline hides unreachable targets in the list view.
	ShowOnlyOnline bool `yaml:"show_only_online" mapstructure:"show_only_online"`
}

// Server is the persisted form of a target. Health, security, and stats
// are runtime state and never serialized.
type Server struct {
	Name        string   `yaml:"name" mapstructure:"name"`
	Host        string   `yaml:"host" mapstructure:"host"`
	Port        int      `yaml:"port" mapstructure:"port"`
	User        string   `yaml:"user" mapstructure:"user"`
	Auth        string   `yaml:"auth" mapstructure:"auth"`
	KeyPath     string   `yaml:"key_path,omitempty" mapstructure:"key_path"`
	Description string   `yaml:"description,omitempty" mapstructure:"description"`
	Tags        []string `yaml:"tags,omitempty" mapstructure:"tags"`
}

// DefaultConfig returns a Config with sensible defaults and no servers.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Settings: Settings{
			RefreshInterval: 30 * time.Second,
			ProbeTimeout:    5 * time.Second,
			ConnectionMode:  "auto",
		},
		Servers: make(map[string]Server),
	}
}

// Targets converts the persisted servers into registry targets, keyed by
// the config map key so IDs stay stable across restarts.
func (c *Config) Targets() []*registry.Target {
	out := make([]*registry.Target, 0, len(c.Servers))
	for id, s := range c.Servers {
		port := s.Port
		if port == 0 {
			port = 22
		}
		out = append(out, &registry.Target{
			ID:   id,
			Name: s.Name,
			Host: s.Host,
			Port: port,
			User: s.User,
			Auth: registry.AuthMethod{
				Type:    registry.ParseAuthType(s.Auth),
				KeyPath: s.KeyPath,
			},
			Description: s.Description,
			Tags:        s.Tags,
		})
	}
	return out
}

// SetTargets replaces the persisted servers from registry targets.
func (c *Config) SetTargets(targets []*registry.Target) {
	c.Servers = make(map[string]Server, len(targets))
	for _, t := range targets {
		c.Servers[t.ID] = Server{
			Name:        t.Name,
			Host:        t.Host,
			Port:        t.Port,
			User:        t.User,
			Auth:        t.Auth.Type.String(),
			KeyPath:     t.Auth.KeyPath,
			Description: t.Description,
			Tags:        t.Tags,
		}
	}
}
