package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// Config holds user preferences read from the configuration file.
// All fields are optional; zero values fall back to built-in defaults.
type Config struct {
	// Iterations is the default simulation iteration count.
	Iterations int `toml:"iterations"`

	// Seed is the default random seed.
	Seed uint64 `toml:"seed"`

	// Addr is the default listen address for the serve command.
	Addr string `toml:"addr"`

	// RedisAddr enables the Redis cache backend for the serve command.
	RedisAddr string `toml:"redis_addr"`

	// MongoURI enables the MongoDB store backend for the serve command.
	MongoURI string `toml:"mongo_uri"`

	// MongoDatabase is the MongoDB database name.
	MongoDatabase string `toml:"mongo_database"`
}

// configPath returns the path of the configuration file (~/.config/skyline/config.toml).
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// loadConfig reads the configuration file. A missing or unreadable file
// yields a zero Config; a malformed file is also ignored so a bad config
// never blocks the CLI.
func loadConfig() Config {
	var cfg Config
	path, err := configPath()
	if err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}
	}
	return cfg
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
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			fmt.Println(path)
			return nil
		},
	}
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				printInfo("No configuration file at %s", path)
				return nil
			}
			return toml.NewEncoder(os.Stdout).Encode(c.Config)
		},
	}
}
