package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Networks NetworksConfig `yaml:"networks"`
	Users    UsersConfig    `yaml:"users"`
	Registry RegistryConfig `yaml:"registry"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// NetworksConfig points at an optional networks file imported on startup
type NetworksConfig struct {
	File     string    `yaml:"file,omitempty"`
	Format   string    `yaml:"format,omitempty"` // yaml or json; guessed from extension when empty
	Watch    bool      `yaml:"watch,omitempty"`  // re-import when the file changes
	Debounce *Duration `yaml:"debounce,omitempty"`
}

// UsersConfig describes the multi-user layout
type UsersConfig struct {
	Foreground      int           `yaml:"foreground"`
	PerUserRange    int           `yaml:"per_user_range"`
	DeviceOwnerUIDs []int         `yaml:"device_owner_uids,omitempty"`
	Profiles        map[int][]int `yaml:"profiles,omitempty"` // parent user -> profile users
}

// RegistryConfig holds registry behavior settings
type RegistryConfig struct {
	UserSwitch UserSwitchMode `yaml:"user_switch"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
