package cli

import (
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	listOnlineFlag    bool
	probeDeepFlag     bool
	addNonInteractive addFlags
	importPathFlag    string
	importDryRunFlag  bool
)

// connectCmd opens an SSH session to one target by name.
var connectCmd = &cobra.Command{
	Use:   "connect <name>",
	Short: "Connect to a target",
	Long: `Verify a target is reachable and open an SSH session to it.

By default a new terminal window is spawned when a supported terminal
emulator is found; otherwise the session takes over the current terminal.
Override with --new-window or --direct.

Examples:
  ghost connect web-prod
  ghost connect web-prod --direct
  ghost connect db --new-window`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return connectCommand(args[0])
	},
}

// listCmd prints every target with a live health probe.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List targets with current health",
	Long: `Probe every configured target and print a one-line summary for each.

Examples:
  ghost list
  ghost list --online`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listCommand(listOnlineFlag)
	},
}

// probeCmd checks one target's reachability in detail.
var probeCmd = &cobra.Command{
	Use:   "probe <name>",
	Short: "Check a target's reachability",
	Long: `Probe a single target and report health, latency, and security posture.

With --deep, a full SSH handshake (including authentication) is attempted
instead of a plain TCP dial, which catches auth problems a port check
can't see.

Examples:
  ghost probe web-prod
  ghost probe web-prod --deep`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return probeCommand(args[0], probeDeepFlag)
	},
}

// addCmd adds a target to the configuration.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a target",
	Long: `Add a new SSH target to the configuration.

Without flags an interactive form collects the details. With --host the
target is added non-interactively.

Examples:
  ghost add
  ghost add --name web --host web.example.com --user deploy
  ghost add --name db --host 10.0.0.5 --port 2222 --auth key --key ~/.ssh/db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return addCommand(addNonInteractive)
	},
}

// removeCmd deletes a target from the configuration.
var removeCmd = &cobra.Command{
	Use:     "remove [name]",
	Aliases: []string{"rm"},
	Short:   "Remove a target",
	Long: `Remove a target from the configuration.

Without a name an interactive picker is shown.

Examples:
  ghost remove web-prod
  ghost remove`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return removeCommand(name)
	},
}

// importCmd pulls hosts out of an OpenSSH client config.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import targets from ~/.ssh/config",
	Long: `Read an OpenSSH client config and add its concrete hosts as targets.

Wildcard patterns and hosts that are already configured are skipped.

Examples:
  ghost import
  ghost import --file ~/work/ssh_config
  ghost import --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return importCommand(importPathFlag, importDryRunFlag)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listOnlineFlag, "online", false, "show only reachable targets")

	probeCmd.Flags().BoolVar(&probeDeepFlag, "deep", false, "perform a full SSH handshake")

	addCmd.Flags().StringVar(&addNonInteractive.Name, "name", "", "target name")
	addCmd.Flags().StringVar(&addNonInteractive.Host, "host", "", "hostname or IP (enables non-interactive mode)")
	addCmd.Flags().IntVar(&addNonInteractive.Port, "port", 22, "SSH port")
	addCmd.Flags().StringVar(&addNonInteractive.User, "user", "", "login user")
	addCmd.Flags().StringVar(&addNonInteractive.Auth, "auth", "agent", "auth method: agent, key, password, interactive")
	addCmd.Flags().StringVar(&addNonInteractive.KeyPath, "key", "", "private key path (for --auth key)")
	addCmd.Flags().StringVar(&addNonInteractive.Description, "description", "", "free-form note")

	importCmd.Flags().StringVar(&importPathFlag, "file", "", "ssh config file (default ~/.ssh/config)")
	importCmd.Flags().BoolVar(&importDryRunFlag, "dry-run", false, "show what would be imported without saving")

	rootCmd.AddCommand(connectCmd, listCmd, probeCmd, addCmd, removeCmd, importCmd)
}
