// Package model defines the data structures used throughout the nestquiz application.
package model

// Config holds the application settings loaded by the config package.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Log      LogConfig      `mapstructure:"log" json:"log"`
	Editor   EditorConfig   `mapstructure:"editor" json:"editor"`
	CLI      CLIConfig      `mapstructure:"cli" json:"cli"`
}

// DatabaseConfig holds the storage settings.
type DatabaseConfig struct {
	Type string `mapstructure:"type" json:"type"`
	Dir  string `mapstructure:"dir" json:"dir"`
	File string `mapstructure:"file" json:"file"`
}

// LogConfig holds the log folder and file names.
type LogConfig struct {
	Folder     string `mapstructure:"folder" json:"folder"`
	CommandLog string `mapstructure:"command_log" json:"command_log"`
	InfoLog    string `mapstructure:"info_log" json:"info_log"`
	Level      string `mapstructure:"level" json:"level"`
}

// EditorConfig holds the tree editing settings.
type EditorConfig struct {
	Document       string `mapstructure:"document" json:"document"`
	HistoryLimit   int    `mapstructure:"history_limit" json:"history_limit"`
	ValidateOnSave bool   `mapstructure:"validate_on_save" json:"validate_on_save"`
}

// CLIConfig holds the interactive shell settings.
type CLIConfig struct {
	HistoryFile string `mapstructure:"history_file" json:"history_file"`
	Color       bool   `mapstructure:"color" json:"color"`
}
