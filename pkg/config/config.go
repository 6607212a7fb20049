// Package config loads the invoicer configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	OutputDir     string     `yaml:"output_dir"`
	SendersDir    string     `yaml:"senders_dir"`
	RecipientsDir string     `yaml:"recipients_dir"`
	JobsDir       string     `yaml:"jobs_dir"`
	DaysDue       int        `yaml:"days_due"`
	HTTP          HTTPConfig `yaml:"http"`
	Log           LogConfig  `yaml:"log"`
}

// HTTPConfig holds the serve-mode listener settings.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		OutputDir:     "./invoices",
		SendersDir:    "./records/senders",
		RecipientsDir: "./records/recipients",
		JobsDir:       "./jobs",
		DaysDue:       30,
		HTTP:          HTTPConfig{Addr: ":8080"},
		Log:           LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DaysDue < 0 {
		return nil, fmt.Errorf("config %s: days_due must not be negative", path)
	}
	return cfg, nil
}
