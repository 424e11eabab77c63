package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/permute/pkg/errors"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds user defaults read from the TOML config file.
// Command-line flags override every value.
type Config struct {
	// Format is the default output format: "text" or "json".
	Format string `toml:"format"`
	// Separator joins elements of an item in text output.
	Separator string `toml:"separator"`
	// Limit caps the number of items printed; 0 means no limit.
	Limit int `toml:"limit"`

	Server ServerConfig `toml:"server"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`
	// MaxItems caps the number of items streamed per request.
	MaxItems int `toml:"max_items"`
	// MaxElements caps the number of input elements per request.
	MaxElements int `toml:"max_elements"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Format:    FormatText,
		Separator: " ",
		Server: ServerConfig{
			Addr:        "127.0.0.1:8080",
			MaxItems:    10000,
			MaxElements: 64,
		},
	}
}

// LoadConfig reads the config file at path on top of DefaultConfig.
// A missing file is not an error. Unknown keys are rejected so that typos
// do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return cfg, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, perrors.New(perrors.ErrCodeInvalidFormat, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	return cfg, cfg.Validate()
}

// Validate checks the config values.
func (c Config) Validate() error {
	if err := validateFormat(c.Format); err != nil {
		return err
	}
	if c.Limit < 0 {
		return perrors.New(perrors.ErrCodeInvalidArgument, "limit must not be negative, got %d", c.Limit)
	}
	if c.Server.MaxItems < 0 {
		return perrors.New(perrors.ErrCodeInvalidArgument, "server.max_items must not be negative, got %d", c.Server.MaxItems)
	}
	if c.Server.MaxElements < 0 {
		return perrors.New(perrors.ErrCodeInvalidArgument, "server.max_elements must not be negative, got %d", c.Server.MaxElements)
	}
	return nil
}

func validateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON:
		return nil
	}
	return perrors.New(perrors.ErrCodeInvalidFormat, "unknown output format %q (want %s or %s)", format, FormatText, FormatJSON)
}

// loadConfig loads the config from --config or the default location.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			// No home directory: run with defaults.
			return nil
		}
		path = p
	} else if _, err := os.Stat(path); err != nil {
		return perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("Loaded config", "path", path, "format", cfg.Format, "limit", cfg.Limit)
	return nil
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.configPath != "" {
				fmt.Fprintln(cmd.OutOrStdout(), c.configPath)
				return nil
			}
			path, err := defaultConfigPath()
			if err != nil {
				return fmt.Errorf("get config dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(c.Config)
		},
	}
}
