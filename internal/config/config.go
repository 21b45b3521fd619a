// Package config loads the Arise configuration from a TOML file, with
// sensible defaults when no file exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Remote  RemoteConfig  `toml:"remote"`
	API     APIConfig     `toml:"api"`
}

type StorageConfig struct {
	// Path of the on-device SQLite database. Empty means the default
	// location under the home directory.
	Path string `toml:"path"`
}

type RemoteConfig struct {
	// URL of the sync backend. Empty disables remote persistence
	// entirely (local/demo mode).
	URL string `toml:"url"`
}

type APIConfig struct {
	// Bind address for `arise serve`.
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

func DefaultConfig() Config {
	return Config{
		API: APIConfig{Host: "127.0.0.1", Port: 8420},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".arise", "config.toml"), nil
}

// Load reads the config at path, layered over defaults. A missing file is
// not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
