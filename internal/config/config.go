// Package config loads the fitflow configuration file and resolves the
// application's data paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the user-editable configuration, loaded from
// ~/.fitflow/config.yaml when present.
type Config struct {
	// Workouts enables the optional workout artifact during plan
	// generation.
	Workouts bool `yaml:"workouts"`

	// LogFile receives structured service logs. Empty disables them.
	LogFile string `yaml:"log_file,omitempty"`

	// DBPath overrides the default database location.
	DBPath string `yaml:"db_path,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Workouts: true,
	}
}

// Dir returns the fitflow home directory, honoring FITFLOW_HOME.
func Dir() string {
	if dir := os.Getenv("FITFLOW_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fitflow"
	}
	return filepath.Join(home, ".fitflow")
}

// Load reads the configuration file, falling back to defaults when it
// does not exist. Environment variables override file values:
// FITFLOW_DB for the database path, FITFLOW_WORKOUTS=0 to disable
// workout generation.
func Load() (*Config, error) {
	cfg, err := loadFile(filepath.Join(Dir(), "config.yaml"))
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FITFLOW_DB"); v != "" {
		cfg.DBPath = v
	}
	switch os.Getenv("FITFLOW_WORKOUTS") {
	case "0", "false", "off":
		cfg.Workouts = false
	case "1", "true", "on":
		cfg.Workouts = true
	}
}

// DatabasePath resolves the SQLite file location.
func (c *Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(Dir(), "fitflow.db")
}

// Save writes the configuration to the fitflow home directory.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
