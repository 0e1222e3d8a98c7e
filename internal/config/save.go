package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/ghost/internal/errors"
)

// Save writes the config to path atomically, creating parent directories as
// needed. An empty path targets the default location.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't create config directory %s", filepath.Dir(path)),
			"Check directory permissions")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't serialize config",
			"This is a bug; report it")
	}

	// Write to a temp file then rename so a crash never truncates the
	// existing config.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't write config file %s", tmp),
			"Check file permissions and free disk space")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't replace config file %s", path),
			"Check file permissions")
	}

	return nil
}
