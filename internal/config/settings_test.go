package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := LoadSettings(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.General.Format)
	assert.Equal(t, "ledger.db", filepath.Base(cfg.Data.DBPath))
	assert.Equal(t, time.Now().Year(), cfg.Year())
}

func TestSaveAndLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultSettings()
	cfg.General.DefaultYear = 2025
	cfg.General.Format = "json"
	cfg.Data.TablesDir = "/opt/tables"

	require.NoError(t, SaveSettings(path, cfg))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, 2025, loaded.Year())
}

func TestLoadSettings_InvalidTOML(t *testing.T) {
	path := writeFile(t, "config.toml", "[general\nformat = ")
	_, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestConfigDir_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "headroom", "config.toml"), SettingsPath())
}
