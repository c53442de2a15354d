package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds the tunable knobs of an audit run. Zero or missing values
// in a loaded file keep their defaults.
type Config struct {
	SampleSize          int      `yaml:"sample_size"`
	TimeoutSec          int      `yaml:"timeout_sec"`
	DialTimeoutSec      int      `yaml:"dial_timeout_sec"`
	MaxConcurrentFetch  int      `yaml:"max_concurrent_fetches"`
	SizeCapBytes        int      `yaml:"size_cap_bytes"`
	UserAgent           string   `yaml:"user_agent"`
	ExcludePathPatterns []string `yaml:"exclude_path_patterns"`
	LogLevel            string   `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SampleSize:         10,
		TimeoutSec:         15,
		DialTimeoutSec:     5,
		MaxConcurrentFetch: 5,
		SizeCapBytes:       2 << 20,
		UserAgent:          "newsvis-audit/1.0 (+https://github.com/newsvis/newsvis-go-audit)",
		LogLevel:           "info",
	}
}

// Load reads a YAML file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults backfills fields an explicit file zeroed out.
func (c *Config) applyDefaults() {
	def := Default()
	if c.SampleSize <= 0 {
		c.SampleSize = def.SampleSize
	}
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = def.TimeoutSec
	}
	if c.DialTimeoutSec <= 0 {
		c.DialTimeoutSec = def.DialTimeoutSec
	}
	if c.MaxConcurrentFetch <= 0 {
		c.MaxConcurrentFetch = def.MaxConcurrentFetch
	}
	if c.SizeCapBytes <= 0 {
		c.SizeCapBytes = def.SizeCapBytes
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Timeout is the per-request deadline.
func (c *Config) Timeout() time.Duration { return time.Duration(c.TimeoutSec) * time.Second }

// DialTimeout is the connection-establishment deadline.
func (c *Config) DialTimeout() time.Duration { return time.Duration(c.DialTimeoutSec) * time.Second }
