package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"splitkit/pkg/config"
	"splitkit/pkg/ui"
)

// ConfigCmd groups configuration subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage splitkit configuration",
	// Skip loading the config these commands are meant to repair.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(false)
	},
}

var configInitFlags struct {
	format string
	force  bool
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration to --config, $SPLITKIT_CONFIG or
.splitkit.yaml (.splitkit.toml with --format toml). An existing file is
kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = os.Getenv("SPLITKIT_CONFIG")
		}
		switch configInitFlags.format {
		case "yaml", "yml":
			if path == "" {
				path = config.DefaultPath
			}
		case "toml":
			if path == "" {
				path = ".splitkit.toml"
			}
		default:
			return fmt.Errorf("unknown format %q (want yaml or toml)", configInitFlags.format)
		}

		if _, err := os.Stat(path); err == nil && !configInitFlags.force {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn("%s already exists", ui.Path.Sprint(path)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Hint("Use --force to overwrite it"))
			return nil
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Done("Wrote default configuration to %s", ui.Path.Sprint(path)))
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVarP(&configInitFlags.format, "format", "f", "yaml", "file format: yaml or toml")
	configInitCmd.Flags().BoolVar(&configInitFlags.force, "force", false, "overwrite an existing file")
	ConfigCmd.AddCommand(configInitCmd)
	RootCmd.AddCommand(ConfigCmd)
}
