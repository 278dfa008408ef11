package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if cfg.Progress.MinInterval != 100*time.Millisecond {
		t.Errorf("expected min interval 100ms, got %v", cfg.Progress.MinInterval)
	}
	if cfg.Progress.LogMessages {
		t.Error("expected log_messages to be false by default")
	}

	if cfg.Document.Path != "." {
		t.Errorf("expected document path '.', got %s", cfg.Document.Path)
	}
	if cfg.Document.DefaultLabel != "Mesh" {
		t.Errorf("expected default label 'Mesh', got %s", cfg.Document.DefaultLabel)
	}

	if !cfg.Preview.Enabled {
		t.Error("expected preview to be enabled by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
logging:
  level: "debug"
  log_file: "meshlayer.log"

progress:
  min_interval: 250ms
  log_messages: true

document:
  path: "/projects/scan"
  default_label: "Scan"

preview:
  enabled: false
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshlayer.log" {
		t.Errorf("expected log file 'meshlayer.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Progress.MinInterval != 250*time.Millisecond {
		t.Errorf("expected min interval 250ms, got %v", cfg.Progress.MinInterval)
	}
	if !cfg.Progress.LogMessages {
		t.Error("expected log_messages to be true")
	}
	if cfg.Document.Path != "/projects/scan" {
		t.Errorf("expected document path /projects/scan, got %s", cfg.Document.Path)
	}
	if cfg.Document.DefaultLabel != "Scan" {
		t.Errorf("expected default label 'Scan', got %s", cfg.Document.DefaultLabel)
	}
	if cfg.Preview.Enabled {
		t.Error("expected preview to be disabled")
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(configPath, []byte("document:\n  default_label: \"Part\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Document.DefaultLabel != "Part" {
		t.Errorf("expected default label 'Part', got %s", cfg.Document.DefaultLabel)
	}
	// Untouched keys keep their defaults
	if cfg.Document.Path != "." {
		t.Errorf("expected document path '.', got %s", cfg.Document.Path)
	}
	if cfg.Progress.MinInterval != 100*time.Millisecond {
		t.Errorf("expected min interval 100ms, got %v", cfg.Progress.MinInterval)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "progress:\n  min_interval: not a duration\n  invalid syntax here\n"},
		{"negative interval", "progress:\n  min_interval: -1s\n"},
		{"unknown level", "logging:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error for invalid config")
			}
		})
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestSaveTo(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Document.DefaultLabel = "Saved"
	cfg.Progress.MinInterval = 2 * time.Second

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}

	if loaded.Document.DefaultLabel != "Saved" {
		t.Errorf("expected default label 'Saved', got %s", loaded.Document.DefaultLabel)
	}
	if loaded.Progress.MinInterval != 2*time.Second {
		t.Errorf("expected min interval 2s, got %v", loaded.Progress.MinInterval)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(t *testing.T, cfg *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected debug level, got %s", cfg.Logging.Level)
				}
				if !cfg.Progress.LogMessages {
					t.Error("expected progress messages to be logged in debug mode")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "/tmp/meshlayer.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "/tmp/meshlayer.log" {
					t.Errorf("expected log file override, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagLogFile = "" },
		},
		{
			name:  "doc flag",
			setup: func() { *flagDoc = "/work/project" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Document.Path != "/work/project" {
					t.Errorf("expected document path override, got %s", cfg.Document.Path)
				}
			},
			teardown: func() { *flagDoc = "" },
		},
		{
			name:  "no-preview flag",
			setup: func() { *flagNoPreview = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Preview.Enabled {
					t.Error("expected preview to be disabled")
				}
			},
			teardown: func() { *flagNoPreview = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
logging:
  log_file: "from-file.log"
document:
  path: "/from/file"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagDoc = "/from/flag"
	defer func() {
		*flagConfig = ""
		*flagDoc = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag wins over file
	if cfg.Document.Path != "/from/flag" {
		t.Errorf("expected document path from flag, got %s", cfg.Document.Path)
	}
	// File wins over defaults
	if cfg.Logging.LogFile != "from-file.log" {
		t.Errorf("expected log file from config file, got %s", cfg.Logging.LogFile)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir := ConfigDir()
	if dir == "" {
		t.Fatal("expected a config directory")
	}
	if filepath.Base(dir) != "meshlayer" && filepath.Base(dir) != "Meshlayer" {
		t.Errorf("expected meshlayer config directory, got %s", dir)
	}
}
