// Package cli implements the permute command-line interface.
//
// This package provides commands for enumerating permutations, combinations
// and arrangements of elements given on the command line or in a file,
// sizing enumerations, browsing them interactively, rendering their prefix
// trees, and serving them over HTTP. The CLI is built using cobra and logs
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - perm, comb, arrange: Stream an enumeration to stdout
//   - count: Print the exact size of each enumeration
//   - browse: Step through an enumeration interactively
//   - tree: Render the prefix tree of an enumeration (text, DOT or SVG)
//   - serve: Serve enumerations over HTTP as NDJSON
//   - config: Inspect the configuration file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/permute/pkg/buildinfo"
	"github.com/matzehuels/permute/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "permute"

	// configFileName is the name of the config file inside the config directory.
	configFileName = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger and default config.
// Log output goes to w; command output goes to the command's output stream.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Permute enumerates permutations and combinations lazily",
		Long:         `Permute is a CLI tool for enumerating the permutations, k-combinations and k-permutations of a list of elements one item at a time, without materializing the whole result set.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			hooks := &logHooks{logger: c.Logger}
			observability.SetEnumerationHooks(hooks)
			observability.SetHTTPHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+displayConfigPath()+")")

	// Register all subcommands
	root.AddCommand(c.permCommand())
	root.AddCommand(c.combCommand())
	root.AddCommand(c.arrangeCommand())
	root.AddCommand(c.countCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/permute/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/permute/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// defaultConfigPath returns the path of the config file in configDir.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// displayConfigPath returns the default config path for help text.
func displayConfigPath() string {
	path, err := defaultConfigPath()
	if err != nil {
		return filepath.Join("~", ".config", appName, configFileName)
	}
	return path
}
