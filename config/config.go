// Package config provides configuration loading and management for stripsolve.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete stripsolve configuration
type Config struct {
	Planner PlannerConfig `yaml:"planner"`
	NATS    NATSConfig    `yaml:"nats"`
	Metrics MetricsConfig `yaml:"metrics"`
	Watch   WatchConfig   `yaml:"watch"`
}

// PlannerConfig configures the search settings
type PlannerConfig struct {
	// SolveTimeout bounds a single solve; zero means no limit
	SolveTimeout time.Duration `yaml:"solve_timeout"`
}

// NATSConfig configures the NATS connection used by the serve command
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// Stream is the JetStream stream solve requests are consumed from
	Stream string `yaml:"stream"`
}

// MetricsConfig configures the Prometheus metrics endpoint
type MetricsConfig struct {
	// Addr is the listen address for /metrics (empty = disabled)
	Addr string `yaml:"addr"`
}

// WatchConfig configures the file watcher used by solve --watch
type WatchConfig struct {
	// Debounce is how long to wait after the last write before re-solving
	Debounce time.Duration `yaml:"debounce"`
	// Patterns are doublestar globs selecting the files to watch
	Patterns []string `yaml:"patterns"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Planner: PlannerConfig{
			SolveTimeout: 30 * time.Second,
		},
		NATS: NATSConfig{
			URL:    "nats://localhost:4222",
			Stream: "PLANNING",
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
			Patterns: []string{"**/*.pddl"},
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Planner.SolveTimeout < 0 {
		return fmt.Errorf("planner.solve_timeout must not be negative")
	}
	if c.NATS.URL == "" {
		return fmt.Errorf("nats.url is required")
	}
	if c.NATS.Stream == "" {
		return fmt.Errorf("nats.stream is required")
	}
	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("watch.debounce must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Planner
	if other.Planner.SolveTimeout != 0 {
		c.Planner.SolveTimeout = other.Planner.SolveTimeout
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Stream != "" {
		c.NATS.Stream = other.NATS.Stream
	}

	// Metrics
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if len(other.Watch.Patterns) > 0 {
		c.Watch.Patterns = other.Watch.Patterns
	}
}
