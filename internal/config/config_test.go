package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VETTER_CONFIG", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8081" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.MaxBodyBytes != 1<<20 {
		t.Fatalf("max body = %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Log.Level != "info" || cfg.Probe.Enabled || cfg.Probe.Timeout != 25*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Style.CacheTTL != 10*time.Minute {
		t.Fatalf("cache ttl = %v", cfg.Style.CacheTTL)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vetter.yaml")
	body := "server:\n  addr: \":9000\"\nprobe:\n  enabled: true\n  timeout: 5s\nuser_agent: from-file\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VETTER_CONFIG", path)
	t.Setenv("VETTER_LOG_LEVEL", "debug")
	t.Setenv("VETTER_USER_AGENT", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" || !cfg.Probe.Enabled || cfg.Probe.Timeout != 5*time.Second {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("env override not applied: %q", cfg.Log.Level)
	}
	if cfg.UserAgent != "from-env" {
		t.Fatalf("user agent = %q, want env value", cfg.UserAgent)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("VETTER_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadRejectsBadBodyLimit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VETTER_CONFIG", "")
	t.Setenv("VETTER_SERVER_MAX_BODY_BYTES", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero body limit")
	}
}
