// Package config provides configuration management for netconfig.
//
// Config file locations (priority order):
//  1. $NETCONFIG_CONFIG
//  2. ./netconfig.yaml
//  3. $XDG_CONFIG_HOME/netconfig/config.yaml
//  4. ~/.config/netconfig/config.yaml
//  5. /etc/netconfig/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDatabasePath = "./netconfig.db"
	defaultServerAddr   = ":3000"
	defaultDebounce     = 500 * time.Millisecond
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	// Relative networks file is resolved against the config file
	if cfg.Networks.File != "" && !filepath.IsAbs(cfg.Networks.File) {
		cfg.Networks.File = filepath.Join(filepath.Dir(path), cfg.Networks.File)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultServerAddr
	}
	if c.Users.PerUserRange <= 0 {
		c.Users.PerUserRange = 100000
	}
	c.Registry.UserSwitch = ParseUserSwitchMode(string(c.Registry.UserSwitch))
}

// NetworksFormat returns the format of the networks file
func (c *Config) NetworksFormat() string {
	if c.Networks.Format != "" {
		return strings.ToLower(c.Networks.Format)
	}
	switch strings.ToLower(filepath.Ext(c.Networks.File)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// WatchDebounce returns the debounce interval for networks file reloads
func (c *Config) WatchDebounce() time.Duration {
	if c.Networks.Debounce == nil {
		return defaultDebounce
	}
	return c.Networks.Debounce.Duration()
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Database: %s, Listen: %s\n", c.Database.Path, c.Server.Addr)
	summary += fmt.Sprintf("Foreground user: %d, user switch: %s", c.Users.Foreground, c.Registry.UserSwitch)
	if c.Networks.File != "" {
		summary += fmt.Sprintf("\nNetworks file: %s (%s, watch=%v)", c.Networks.File, c.NetworksFormat(), c.Networks.Watch)
	}
	return summary
}
