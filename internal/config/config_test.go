package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseUserSwitchMode(t *testing.T) {
	tests := []struct {
		input string
		want  UserSwitchMode
	}{
		{"lazy", UserSwitchLazy},
		{"eager", UserSwitchEager},
		{"invalid", UserSwitchLazy}, // Default
		{"", UserSwitchLazy},        // Default
	}

	for _, tt := range tests {
		if got := ParseUserSwitchMode(tt.input); got != tt.want {
			t.Errorf("ParseUserSwitchMode(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Database.Path == "" {
		t.Error("Database.Path should not be empty")
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("Server.Addr = %s, want :3000", cfg.Server.Addr)
	}
	if cfg.Users.PerUserRange != 100000 {
		t.Errorf("Users.PerUserRange = %d, want 100000", cfg.Users.PerUserRange)
	}
	if cfg.Registry.UserSwitch != UserSwitchLazy {
		t.Errorf("Registry.UserSwitch = %s, want %s", cfg.Registry.UserSwitch, UserSwitchLazy)
	}
	if cfg.WatchDebounce() != 500*time.Millisecond {
		t.Errorf("WatchDebounce() = %s, want 500ms", cfg.WatchDebounce())
	}
}

func TestNetworksFormat(t *testing.T) {
	tests := []struct {
		file   string
		format string
		want   string
	}{
		{"networks.yaml", "", "yaml"},
		{"networks.yml", "", "yaml"},
		{"networks.JSON", "", "json"},
		{"networks.txt", "JSON", "json"},
		{"", "", "yaml"},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Networks.File = tt.file
		cfg.Networks.Format = tt.format
		if got := cfg.NetworksFormat(); got != tt.want {
			t.Errorf("NetworksFormat(%q, %q) = %s, want %s", tt.file, tt.format, got, tt.want)
		}
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	data := []byte(`
database:
  path: /var/lib/netconfig/netconfig.db
networks:
  file: networks.yaml
  watch: true
  debounce: 2s
users:
  foreground: 10
  device_owner_uids: [1000]
  profiles:
    10: [11, 12]
registry:
  user_switch: eager
`)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}

	if cfg.Database.Path != "/var/lib/netconfig/netconfig.db" {
		t.Errorf("Database.Path = %s", cfg.Database.Path)
	}
	if want := filepath.Join(tmpDir, "networks.yaml"); cfg.Networks.File != want {
		t.Errorf("Networks.File = %s, want %s (resolved against config dir)", cfg.Networks.File, want)
	}
	if !cfg.Networks.Watch {
		t.Error("Networks.Watch should be true")
	}
	if cfg.WatchDebounce() != 2*time.Second {
		t.Errorf("WatchDebounce() = %s, want 2s", cfg.WatchDebounce())
	}
	if cfg.Users.Foreground != 10 {
		t.Errorf("Users.Foreground = %d, want 10", cfg.Users.Foreground)
	}
	if len(cfg.Users.Profiles[10]) != 2 {
		t.Errorf("Users.Profiles[10] = %v, want [11 12]", cfg.Users.Profiles[10])
	}
	if !cfg.Registry.UserSwitch.IsEager() {
		t.Errorf("Registry.UserSwitch = %s, want eager", cfg.Registry.UserSwitch)
	}
	// Defaults still applied
	if cfg.Server.Addr != ":3000" {
		t.Errorf("Server.Addr = %s, want default", cfg.Server.Addr)
	}
}

func TestLoadFromPathInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	if _, _, err := LoadFromPath(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("users: [unterminated"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := LoadFromPath(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Users.Foreground = 10
	cfg.Users.DeviceOwnerUIDs = []int{1000}
	cfg.Registry.UserSwitch = UserSwitchEager
	debounce := Duration(time.Second)
	cfg.Networks.Debounce = &debounce

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if loaded.Users.Foreground != 10 {
		t.Errorf("Users.Foreground = %d, want 10", loaded.Users.Foreground)
	}
	if len(loaded.Users.DeviceOwnerUIDs) != 1 || loaded.Users.DeviceOwnerUIDs[0] != 1000 {
		t.Errorf("Users.DeviceOwnerUIDs = %v, want [1000]", loaded.Users.DeviceOwnerUIDs)
	}
	if loaded.Registry.UserSwitch != UserSwitchEager {
		t.Errorf("Registry.UserSwitch = %s, want eager", loaded.Registry.UserSwitch)
	}
	if loaded.WatchDebounce() != time.Second {
		t.Errorf("WatchDebounce() = %s, want 1s", loaded.WatchDebounce())
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	t.Chdir(tmpDir)
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")

	// Explicit path doesn't exist, should fall back to working directory
	found := FindConfigPath()
	if found == "" {
		t.Fatal("FindConfigPath() should find config in working directory")
	}
	if filepath.Base(found) != ConfigFileName {
		t.Errorf("FindConfigPath() = %s, want %s", found, ConfigFileName)
	}

	// Explicit path wins when it exists
	explicit := filepath.Join(tmpDir, "explicit.yaml")
	if err := cfg.Save(explicit); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}
