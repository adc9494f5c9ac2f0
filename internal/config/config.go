// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"nestquiz/local-app/internal/model"
)

// EnvPrefix prefixes environment overrides, e.g. NESTQUIZ_DATABASE_DIR.
const EnvPrefix = "NESTQUIZ"

// Global variables to store the current configuration and its file path.
var (
	currentConfig *model.Config
	configPath    = "./data/config.json"
)

// defaults lists every configuration key with its default value.
var defaults = map[string]interface{}{
	"database.type":           "sqlite",
	"database.dir":            "./data",
	"database.file":           "nestquiz.db",
	"log.folder":              "./logs",
	"log.command_log":         "commands.log",
	"log.info_log":            "info.log",
	"log.level":               "info",
	"editor.document":         "default",
	"editor.history_limit":    50,
	"editor.validate_on_save": true,
	"cli.history_file":        "./data/history.txt",
	"cli.color":               true,
}

// ConfigLoad loads the configuration from NESTQUIZ_CONFIG, or from the default
// path when the variable is unset.
func ConfigLoad() error {
	path := os.Getenv(EnvPrefix + "_CONFIG")
	if path == "" {
		path = configPath
	}
	return ConfigLoadFrom(path)
}

// ConfigLoadFrom loads the configuration from the JSON file at path.
// If the file doesn't exist, it is created with the default configuration.
// Environment variables override file values.
func ConfigLoadFrom(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := v.SafeWriteConfigAs(path); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
	} else if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg := &model.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Editor.HistoryLimit < 0 {
		cfg.Editor.HistoryLimit = 0
	}

	currentConfig = cfg
	configPath = path
	return nil
}

// ConfigSave saves the provided configuration to the current config file.
func ConfigSave(cfg *model.Config) error {
	v := viper.New()
	v.SetConfigType("json")
	v.Set("database.type", cfg.Database.Type)
	v.Set("database.dir", cfg.Database.Dir)
	v.Set("database.file", cfg.Database.File)
	v.Set("log.folder", cfg.Log.Folder)
	v.Set("log.command_log", cfg.Log.CommandLog)
	v.Set("log.info_log", cfg.Log.InfoLog)
	v.Set("log.level", cfg.Log.Level)
	v.Set("editor.document", cfg.Editor.Document)
	v.Set("editor.history_limit", cfg.Editor.HistoryLimit)
	v.Set("editor.validate_on_save", cfg.Editor.ValidateOnSave)
	v.Set("cli.history_file", cfg.CLI.HistoryFile)
	v.Set("cli.color", cfg.CLI.Color)

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	currentConfig = cfg
	return nil
}

// ConfigGet returns the current configuration.
func ConfigGet() *model.Config {
	return currentConfig
}

// ConfigPath returns the path of the active config file.
func ConfigPath() string {
	return configPath
}

// DatabasePath returns the full path of the database file.
func DatabasePath(cfg *model.Config) string {
	return filepath.Join(cfg.Database.Dir, cfg.Database.File)
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
