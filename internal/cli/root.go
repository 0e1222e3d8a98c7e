// Package cli wires the ghost commands. Running ghost with no subcommand
// opens the interactive dashboard; the subcommands cover scripted use.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/ghost/internal/config"
	"github.com/rileyhilliard/ghost/internal/errors"
	"github.com/rileyhilliard/ghost/internal/launch"
	"github.com/rileyhilliard/ghost/internal/tui"
)

// Global flags
var (
	configPathFlag string
	connModeFlag   string
	newWindowFlag  bool
	directFlag     bool
)

// rootCmd is the base command. With no subcommand it starts the dashboard.
var rootCmd = &cobra.Command{
	Use:   "ghost",
	Short: "SSH connection manager with live health monitoring",
	Long: `Ghost keeps your SSH targets in one place, probes their health in the
background, and connects with a keypress: in a new terminal window when
one is available, or by taking over the current terminal.

Run without arguments to open the interactive dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New(errors.ErrExec,
				"The dashboard needs an interactive terminal",
				"Use 'ghost list' or 'ghost connect <name>' in scripts")
		}
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}
		mode, err := resolveMode(cfg)
		if err != nil {
			return err
		}
		return tui.Run(cfg, path, mode)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "",
		"config file (default ~/.config/ghost/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&connModeFlag, "connection-mode", "",
		"how to open connections: auto, new-window, or direct")
	rootCmd.PersistentFlags().BoolVar(&newWindowFlag, "new-window", false,
		"shorthand for --connection-mode new-window")
	rootCmd.PersistentFlags().BoolVar(&directFlag, "direct", false,
		"shorthand for --connection-mode direct")
	rootCmd.MarkFlagsMutuallyExclusive("new-window", "direct")
}

// Execute runs the root command and prints any error in the standard format.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads the config honoring --config, ensuring the file exists on
// disk afterwards so a first run leaves a file the user can edit.
func loadConfig() (*config.Config, string, error) {
	path := configPathFlag
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.Save(cfg, path); err != nil {
			return nil, "", err
		}
	}

	return cfg, path, nil
}

// resolveMode picks the connection mode: explicit shorthands beat
// --connection-mode, which beats the config default.
func resolveMode(cfg *config.Config) (launch.Mode, error) {
	switch {
	case newWindowFlag:
		return launch.ModeNewWindow, nil
	case directFlag:
		return launch.ModeDirect, nil
	case connModeFlag != "":
		return launch.ParseMode(connModeFlag)
	default:
		return launch.ParseMode(cfg.Settings.ConnectionMode)
	}
}
