// ABOUTME: Tests for configuration loading, defaults, env overrides, and validation.
// ABOUTME: Uses t.TempDir for config files and t.Setenv for override isolation.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	want := DefaultConfig()
	if cfg.ServerURL != want.ServerURL {
		t.Errorf("ServerURL = %q, want %q", cfg.ServerURL, want.ServerURL)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout())
	}
}

func TestLoadFromPathReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server_url: http://example.com:9000\nrequest_timeout_seconds: 5\nhistory_path: /tmp/runs.db\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.ServerURL != "http://example.com:9000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout())
	}
	if cfg.HistoryPath != "/tmp/runs.db" {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath)
	}
}

func TestLoadFromPathPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server_url: http://other:1234\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.ServerURL != "http://other:1234" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.RequestTimeoutSeconds != 30 {
		t.Errorf("RequestTimeoutSeconds = %d, want default 30", cfg.RequestTimeoutSeconds)
	}
}

func TestLoadFromPathMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server_url: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected parse error for malformed yaml")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ALGOSCOPE_SERVER", "http://env-wins:8080")
	t.Setenv("ALGOSCOPE_HISTORY", "/tmp/env.db")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server_url: http://file-loses:1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.ServerURL != "http://env-wins:8080" {
		t.Errorf("ServerURL = %q, env should win over file", cfg.ServerURL)
	}
	if cfg.HistoryPath != "/tmp/env.db" {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath)
	}
}

func TestValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("request_timeout_seconds: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "must be positive") {
		t.Errorf("expected positive-timeout validation error, got %v", err)
	}
}
