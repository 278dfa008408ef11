// Package config handles meshlayer configuration loading and management.
package config

import "time"

// Config holds all application settings.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Progress ProgressConfig `yaml:"progress"`
	Document DocumentConfig `yaml:"document"`
	Preview  PreviewConfig  `yaml:"preview"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ProgressConfig controls how long-running operations report progress.
type ProgressConfig struct {
	MinInterval time.Duration `yaml:"min_interval"` // Minimum time between two reports
	LogMessages bool          `yaml:"log_messages"` // Forward reports to the logger
}

// DocumentConfig holds project document settings.
type DocumentConfig struct {
	Path         string `yaml:"path"`          // Project directory, base for relative mesh paths
	DefaultLabel string `yaml:"default_label"` // Label for meshes created without path or label
}

// PreviewConfig holds interactive preview settings.
type PreviewConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Progress: ProgressConfig{
			MinInterval: 100 * time.Millisecond,
			LogMessages: false,
		},
		Document: DocumentConfig{
			Path:         ".",
			DefaultLabel: "Mesh",
		},
		Preview: PreviewConfig{
			Enabled: true,
		},
	}
}
