package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
output:
  dir: /var/scrapes
fetch:
  user_agent: test-agent
  timeout_seconds: 10
  delay_seconds: 1
limits:
  document_limit: 200
  max_page_ceiling: 50
  max_consecutive_failures: 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Output.Dir != "/var/scrapes" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
	if cfg.Fetch.UserAgent != "test-agent" {
		t.Errorf("Fetch.UserAgent = %q", cfg.Fetch.UserAgent)
	}
	if cfg.FetchTimeout() != 10*time.Second {
		t.Errorf("FetchTimeout() = %v", cfg.FetchTimeout())
	}
	if cfg.FetchDelay() != 1*time.Second {
		t.Errorf("FetchDelay() = %v", cfg.FetchDelay())
	}
	if cfg.Limits.DocumentLimit != 200 {
		t.Errorf("Limits.DocumentLimit = %d", cfg.Limits.DocumentLimit)
	}
	if cfg.Limits.MaxPageCeiling != 50 {
		t.Errorf("Limits.MaxPageCeiling = %d", cfg.Limits.MaxPageCeiling)
	}
	if cfg.Limits.MaxConsecutiveFailures != 5 {
		t.Errorf("Limits.MaxConsecutiveFailures = %d", cfg.Limits.MaxConsecutiveFailures)
	}
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("output:\n  dir: out\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Limits.DocumentLimit != 1000 {
		t.Errorf("default DocumentLimit = %d, want 1000", cfg.Limits.DocumentLimit)
	}
	if cfg.Limits.MaxPageCeiling != 500 {
		t.Errorf("default MaxPageCeiling = %d, want 500", cfg.Limits.MaxPageCeiling)
	}
	if cfg.Fetch.TimeoutSeconds != 30 {
		t.Errorf("default TimeoutSeconds = %d, want 30", cfg.Fetch.TimeoutSeconds)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() on a missing file should fail")
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	if cfg.Output.Dir != "../data" {
		t.Errorf("default Output.Dir = %q, want ../data", cfg.Output.Dir)
	}
	if cfg.Limits.DocumentLimit != 1000 {
		t.Errorf("default DocumentLimit = %d, want 1000", cfg.Limits.DocumentLimit)
	}
	if cfg.Limits.MaxConsecutiveFailures != 3 {
		t.Errorf("default MaxConsecutiveFailures = %d, want 3", cfg.Limits.MaxConsecutiveFailures)
	}
}
