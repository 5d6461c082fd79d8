// Package config loads the YAML configuration shared by the netmatrix
// binaries.
package config

import (
	"fmt"
	"os"

	"github.com/dd0wney/netmatrix/pkg/logging"
	"github.com/dd0wney/netmatrix/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration file.
type Config struct {
	LogLevel string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	Audit    AuditConfig   `yaml:"audit"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Input    InputConfig   `yaml:"input"`
}

// AuditConfig controls the mutation journal.
type AuditConfig struct {
	Enabled    bool `yaml:"enabled"`
	BufferSize int  `yaml:"buffer_size" validate:"min=1"`
}

// MetricsConfig controls the Prometheus registry. When Textfile is set the
// batch runner writes the gathered metrics there on exit.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}

// InputConfig controls how command files are read.
type InputConfig struct {
	Mmap bool `yaml:"mmap"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 1024,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Input: InputConfig{
			Mmap: true,
		},
	}
}

// Load reads path over the defaults, so keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validation.Struct(c)
}

// Level returns the configured log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}
