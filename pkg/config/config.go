// Package config loads the genpairs front end's optional YAML config
// file, the same Load/Save/Validate shape as the teacher's
// pkg/config.Config, trimmed to the sections this tool actually has a
// use for: ops logging and the run defaults (--seed, --mode) that would
// otherwise be re-typed on every invocation. reporting.default_csv_path
// is loaded and saved, but the front end does not read it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the genpairs front end's persisted configuration.
type Config struct {
	Framework FrameworkConfig `yaml:"framework"`
	Execution ExecutionConfig `yaml:"execution"`
	Reporting ReportingConfig `yaml:"reporting"`
}

// FrameworkConfig contains ops-logging settings (§1.1).
type FrameworkConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// ExecutionConfig contains the Vector Builder's default mode and seed
// (§4.4, §6 "Selectable modes").
type ExecutionConfig struct {
	DefaultMode string `yaml:"default_mode"`
	DefaultSeed int64  `yaml:"default_seed"`
}

// ReportingConfig contains the default output settings (§6).
type ReportingConfig struct {
	DefaultCSVPath string `yaml:"default_csv_path"`
}

// DefaultConfig returns the configuration used when no --config file is
// given or the named file does not exist.
func DefaultConfig() *Config {
	return &Config{
		Framework: FrameworkConfig{
			LogLevel:  "info",
			LogFormat: "text",
		},
		Execution: ExecutionConfig{
			DefaultMode: "all",
			DefaultSeed: 0,
		},
		Reporting: ReportingConfig{
			DefaultCSVPath: "",
		},
	}
}

// Load loads configuration from a YAML file, falling back to
// DefaultConfig() when path is empty or the file does not exist — a
// missing --config is not an error (§1.2).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = "genpairs.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))
	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the rest of the tool
// cannot recover from.
func (c *Config) Validate() error {
	switch c.Execution.DefaultMode {
	case "all", "omit-single-error", "single-error-only", "varying-columns", "report-uncovered":
	default:
		return fmt.Errorf("execution.default_mode %q is not a recognized mode", c.Execution.DefaultMode)
	}
	return nil
}
