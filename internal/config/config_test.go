package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("redis:\n  addr: localhost:6379\n  ttl: 5m\ndefinition:\n  dir: ./definitions\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Definition.ID != "rag-assessment" {
		t.Fatalf("expected defaults kept, got %+v", cfg)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Definition.Dir != "./definitions" {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if got := TTLDuration(cfg.Redis.TTL, time.Minute); got != 5*time.Minute {
		t.Fatalf("expected 5m ttl, got %v", got)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for empty, got %v", got)
	}
	if got := TTLDuration("soon", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for garbage, got %v", got)
	}
}
