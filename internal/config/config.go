package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thenoetrevino/tock/internal/config/colors"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageSQLite = "sqlite"
	StorageYAML   = "yaml"
)

// Environment overrides
const (
	EnvConfig    = "TOCK_CONFIG"
	EnvDatabase  = "TOCK_DB"
	EnvThemeFile = "TOCK_THEME_FILE"
)

// Config represents the application configuration
type Config struct {
	Database    string             `yaml:"database"`
	Storage     string             `yaml:"storage"`
	Timezone    string             `yaml:"timezone"`
	WeekStart   string             `yaml:"week_start"`
	ExitPolicy  string             `yaml:"exit_policy"`
	Autosave    *bool              `yaml:"autosave"`
	LogLevel    string             `yaml:"log_level"`
	KeyMappings KeyMappings        `yaml:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// loadThemeFile merges the theme from TOCK_THEME_FILE, if set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		config := &Config{}
		finish(config)
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path, falling back to defaults when it is missing
func LoadFile(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	finish(&config)
	return &config, nil
}

func finish(config *Config) {
	if db := os.Getenv(EnvDatabase); db != "" {
		config.Database = db
	}
	loadThemeFile(config)
	config.applyDefaults()
}

// Save writes the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(configPath)
}

// SaveFile writes the config to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Path returns the path to the config file
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}

	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tock", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tock", "config.yaml"), nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Weekday resolves week_start
func (c *Config) Weekday() (time.Weekday, error) {
	return ParseWeekday(c.WeekStart)
}

// AutosaveEnabled reports the autosave setting
func (c *Config) AutosaveEnabled() bool {
	return c.Autosave == nil || *c.Autosave
}

// ParseWeekday accepts full or three-letter weekday names
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Monday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("unknown weekday %q", s)
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Storage == "" {
		c.Storage = StorageSQLite
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.WeekStart == "" {
		c.WeekStart = "monday"
	}
	if c.ExitPolicy == "" {
		c.ExitPolicy = "auto_stop"
	}
	if c.Autosave == nil {
		on := true
		c.Autosave = &on
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
