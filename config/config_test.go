package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Planner.SolveTimeout != 30*time.Second {
		t.Errorf("expected default solve timeout 30s, got %v", cfg.Planner.SolveTimeout)
	}
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected default NATS URL nats://localhost:4222, got %s", cfg.NATS.URL)
	}
	if cfg.NATS.Stream != "PLANNING" {
		t.Errorf("expected default stream PLANNING, got %s", cfg.NATS.Stream)
	}
	if len(cfg.Watch.Patterns) != 1 || cfg.Watch.Patterns[0] != "**/*.pddl" {
		t.Errorf("expected default watch pattern **/*.pddl, got %v", cfg.Watch.Patterns)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "negative solve timeout",
			modify:  func(c *Config) { c.Planner.SolveTimeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "zero solve timeout allowed",
			modify:  func(c *Config) { c.Planner.SolveTimeout = 0 },
			wantErr: false,
		},
		{
			name:    "missing nats url",
			modify:  func(c *Config) { c.NATS.URL = "" },
			wantErr: true,
		},
		{
			name:    "missing stream",
			modify:  func(c *Config) { c.NATS.Stream = "" },
			wantErr: true,
		},
		{
			name:    "zero debounce",
			modify:  func(c *Config) { c.Watch.Debounce = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
planner:
  solve_timeout: 2m
nats:
  url: "nats://test:4222"
  stream: "SOLVES"
metrics:
  addr: ":9102"
watch:
  debounce: 250ms
  patterns:
    - "domains/**/*.pddl"
    - "problems/*.pddl"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Planner.SolveTimeout != 2*time.Minute {
		t.Errorf("expected solve timeout 2m, got %v", cfg.Planner.SolveTimeout)
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
	if cfg.NATS.Stream != "SOLVES" {
		t.Errorf("expected stream SOLVES, got %s", cfg.NATS.Stream)
	}
	if cfg.Metrics.Addr != ":9102" {
		t.Errorf("expected metrics addr :9102, got %s", cfg.Metrics.Addr)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Patterns) != 2 {
		t.Errorf("expected 2 watch patterns, got %d", len(cfg.Watch.Patterns))
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Planner: PlannerConfig{
			SolveTimeout: time.Minute,
		},
		NATS: NATSConfig{
			URL: "nats://override:4222",
		},
	}

	base.Merge(override)

	if base.Planner.SolveTimeout != time.Minute {
		t.Errorf("expected solve timeout 1m, got %v", base.Planner.SolveTimeout)
	}
	if base.NATS.URL != "nats://override:4222" {
		t.Errorf("expected NATS URL nats://override:4222, got %s", base.NATS.URL)
	}
	// Stream should remain from base since override didn't set it
	if base.NATS.Stream != "PLANNING" {
		t.Errorf("expected stream to remain default, got %s", base.NATS.Stream)
	}
	if len(base.Watch.Patterns) != 1 {
		t.Errorf("expected watch patterns to remain default, got %v", base.Watch.Patterns)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.NATS.Stream = "SAVED"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.NATS.Stream != "SAVED" {
		t.Errorf("expected stream SAVED, got %s", loaded.NATS.Stream)
	}
}
