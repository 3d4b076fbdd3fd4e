package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings holds CLI preferences persisted in the user's config file.
type Settings struct {
	General GeneralSettings `toml:"general"`
}

// GeneralSettings holds general preferences.
type GeneralSettings struct {
	DataDir      string `toml:"data_dir,omitempty"`
	SchedulePath string `toml:"schedule_path,omitempty"`
	StateKey     string `toml:"state_key,omitempty"`
}

// DefaultSettings returns the default configuration.
func DefaultSettings() Settings {
	return Settings{}
}

// SettingsDir returns the XDG-compliant config directory.
func SettingsDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "paybudget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "paybudget")
}

// SettingsPath returns the full path to the config file.
func SettingsPath() string {
	return filepath.Join(SettingsDir(), "config.toml")
}

// LoadSettings reads the config file, returning defaults if it doesn't
// exist.
func LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("parsing config: %w", err)
	}
	return settings, nil
}

// DataDir resolves the directory holding the state database.
func (s Settings) DataDir() string {
	if s.General.DataDir != "" {
		return s.General.DataDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "paybudget")
}

// DBPath resolves the state database path.
func (s Settings) DBPath() string {
	return filepath.Join(s.DataDir(), "state.db")
}
