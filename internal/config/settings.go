package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings holds user preferences read from config.toml.
type Settings struct {
	General GeneralSettings `toml:"general"`
	Data    DataSettings    `toml:"data"`
}

// GeneralSettings holds display defaults.
type GeneralSettings struct {
	DefaultYear int    `toml:"default_year,omitempty"`
	Format      string `toml:"format"`
}

// DataSettings locates the ledger database and optional table overrides.
type DataSettings struct {
	DBPath    string `toml:"db_path,omitempty"`
	TablesDir string `toml:"tables_dir,omitempty"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{Format: "table"},
		Data:    DataSettings{DBPath: filepath.Join(DataDir(), "ledger.db")},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "headroom")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "headroom")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "headroom")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "headroom")
}

// SettingsPath returns the default settings file path.
func SettingsPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadSettings reads the settings file, returning defaults if it doesn't
// exist. An empty path means SettingsPath().
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		path = SettingsPath()
	}
	cfg := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// SaveSettings writes the settings to path, creating its directory.
func SaveSettings(path string, cfg Settings) error {
	if path == "" {
		path = SettingsPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Year returns the configured default year, or the current calendar year.
func (s Settings) Year() int {
	if s.General.DefaultYear > 0 {
		return s.General.DefaultYear
	}
	return time.Now().Year()
}
