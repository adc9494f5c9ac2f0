package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigLoadFrom_WritesDefaults creates the file on first run.
func TestConfigLoadFrom_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "config.json")
	require.NoError(t, ConfigLoadFrom(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	cfg := ConfigGet()
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "nestquiz.db", cfg.Database.File)
	assert.Equal(t, 50, cfg.Editor.HistoryLimit)
	assert.True(t, cfg.Editor.ValidateOnSave)
	assert.True(t, cfg.CLI.Color)
	assert.Equal(t, path, ConfigPath())
}

// TestConfigLoadFrom_EnvOverride prefers environment values over the file.
func TestConfigLoadFrom_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("NESTQUIZ_EDITOR_HISTORY_LIMIT", "7")
	t.Setenv("NESTQUIZ_DATABASE_FILE", "other.db")

	require.NoError(t, ConfigLoadFrom(path))
	cfg := ConfigGet()
	assert.Equal(t, 7, cfg.Editor.HistoryLimit)
	assert.Equal(t, "other.db", cfg.Database.File)
}

// TestConfigSave_RoundTrip persists changes that the next load reads back.
func TestConfigSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, ConfigLoadFrom(path))

	cfg := *ConfigGet()
	cfg.Editor.Document = "biology"
	cfg.CLI.Color = false
	require.NoError(t, ConfigSave(&cfg))

	require.NoError(t, ConfigLoadFrom(path))
	assert.Equal(t, "biology", ConfigGet().Editor.Document)
	assert.False(t, ConfigGet().CLI.Color)
	assert.Equal(t, filepath.Join("./data", "nestquiz.db"), DatabasePath(ConfigGet()))
}
