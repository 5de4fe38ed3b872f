package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the scraper settings
type Config struct {
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Fetch struct {
		UserAgent      string `yaml:"user_agent"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		DelaySeconds   int    `yaml:"delay_seconds"`
	} `yaml:"fetch"`
	Limits struct {
		DocumentLimit          int `yaml:"document_limit"`
		MaxPageCeiling         int `yaml:"max_page_ceiling"`
		MaxConsecutiveFailures int `yaml:"max_consecutive_failures"`
	} `yaml:"limits"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Output.Dir == "" {
		// Sibling data directory, matching where downstream consumers
		// expect the dumps.
		c.Output.Dir = "../data"
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = 30
	}
	if c.Limits.DocumentLimit <= 0 {
		c.Limits.DocumentLimit = 1000
	}
	if c.Limits.MaxPageCeiling <= 0 {
		c.Limits.MaxPageCeiling = 500
	}
	if c.Limits.MaxConsecutiveFailures <= 0 {
		c.Limits.MaxConsecutiveFailures = 3
	}
}

// FetchTimeout returns the per-page fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// FetchDelay returns the pause between requests to the same domain.
func (c *Config) FetchDelay() time.Duration {
	return time.Duration(c.Fetch.DelaySeconds) * time.Second
}
