package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestThemeFileLoading(t *testing.T) {
	themeContent := []byte(`theme:
  accent: "#FF0000"
  running: "#00FF00"
  stopped: "#0000FF"
`)
	themePath := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(themePath, themeContent, 0o644); err != nil {
		t.Fatalf("Failed to write theme file: %v", err)
	}

	t.Setenv(EnvThemeFile, themePath)
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ColorScheme.Accent != "#FF0000" {
		t.Errorf("Expected accent to be #FF0000, got %s", cfg.ColorScheme.Accent)
	}
	if cfg.ColorScheme.Running != "#00FF00" {
		t.Errorf("Expected running to be #00FF00, got %s", cfg.ColorScheme.Running)
	}
	if cfg.ColorScheme.Stopped != "#0000FF" {
		t.Errorf("Expected stopped to be #0000FF, got %s", cfg.ColorScheme.Stopped)
	}

	if cfg.ColorScheme.Delete == "" {
		t.Error("Expected delete to have default value")
	}
}

func TestMonochromePreset(t *testing.T) {
	scheme := MonochromeColorScheme()
	scheme.Accent = ""
	scheme.ApplyDefaults()

	if scheme.Accent != "#FFFFFF" {
		t.Errorf("Accent = %s, want preset value", scheme.Accent)
	}
	if scheme.Preset != "monochrome" {
		t.Errorf("Preset = %s", scheme.Preset)
	}
}
