// ABOUTME: Configuration loading via Viper with XDG paths and env overrides.
// ABOUTME: Resolves the data directory, database path, and seed file location.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/harperreed/trainlog/internal/storage"
)

// Config keys.
const (
	KeyDataDir  = "data_dir"
	KeySeedFile = "seed_file"
)

// Config stores trainlog configuration.
type Config struct {
	// DataDir is the root directory for data storage; trainlog.db lives
	// here. Supports ~ expansion. Defaults to the XDG data directory.
	DataDir string

	// SeedFile is the path of the bundled exercise catalog JSON, imported
	// once on first open.
	SeedFile string
}

// ConfigDir returns the config directory following XDG spec.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "trainlog")
}

// Load reads config.yaml from the config directory. A missing config file
// is not an error; defaults apply. Environment variables prefixed with
// TRAINLOG_ override file values.
func Load() (*Config, error) {
	return LoadFrom(ConfigDir())
}

// LoadFrom reads configuration from the given directory.
func LoadFrom(configDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("trainlog")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		DataDir:  v.GetString(KeyDataDir),
		SeedFile: v.GetString(KeySeedFile),
	}, nil
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the database file path under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "trainlog.db")
}

// GetSeedFile returns the seed file path with ~ expanded, or "" when no
// seed file is configured.
func (c *Config) GetSeedFile() string {
	return ExpandPath(c.SeedFile)
}

// OpenStorage opens the store at the configured path.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(c.DBPath())
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
