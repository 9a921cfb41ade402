package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"splitkit/pkg/config"
	"splitkit/pkg/logging"
	"splitkit/pkg/version"
)

var (
	configPath string
	verbose    bool
	debug      bool

	// Set by Execute and rebuilt from configuration before each command.
	logger = zap.NewNop()
	cfg    = config.DefaultConfig()
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "splitkit",
	Short: "splitkit splits, bundles and merges text and source files",
	Long: `splitkit prepares text, markdown and source files for tools with input limits.

It splits long documents into numbered parts without breaking fenced code
blocks or separating headings from their sections, splits files by line or
character count, bundles source files per language, merges documentation
into one file and renders directory trees.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(true)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $SPLITKIT_CONFIG or "+config.DefaultPath+")")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every step")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable development logging")
}

// Execute runs the root command with base as the initial logger.
func Execute(ctx context.Context, base *zap.Logger) error {
	if base != nil {
		logger = base
	}
	return RootCmd.ExecuteContext(ctx)
}

// initialize loads configuration and rebuilds the logger when flags or
// configuration ask for something other than the default.
func initialize(loadConfig bool) error {
	c := config.DefaultConfig()
	if loadConfig {
		path := config.ResolvePath(configPath)
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		c = loaded
		logger.Debug("Loaded configuration", zap.String("path", path))
	}
	cfg = c

	if !verbose && !debug && c.Logging.File == "" && strings.EqualFold(c.Logging.Level, "info") {
		return nil
	}
	level := c.Logging.Level
	if verbose {
		level = "debug"
	}
	l, err := logging.Setup(logging.Options{
		Debug:      debug,
		Level:      level,
		File:       c.Logging.File,
		AppName:    "splitkit",
		AppVersion: version.Get().Version,
	})
	if err != nil {
		logger.Warn("Failed to configure logger", zap.Error(err))
		return nil
	}
	logger = l
	return nil
}
