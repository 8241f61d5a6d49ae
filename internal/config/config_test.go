package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesYAMLAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yamlBody := `
env: staging
http:
  addr: ":9090"
auth:
  jwt_secret: from-yaml
  idle_ttl: 20m
feed:
  swipe_threshold: 900
`
	if err := os.WriteFile(path, []byte(yamlBody), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SESSION_IDLE_TTL", "5m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Env != "staging" {
		t.Fatalf("unexpected env: got %q want %q", cfg.Env, "staging")
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: got %q want %q", cfg.HTTP.Addr, ":9090")
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("env override lost: got %q want %q", cfg.Auth.JWTSecret, "from-env")
	}
	if cfg.Auth.IdleTTL != 5*time.Minute {
		t.Fatalf("unexpected idle ttl: got %v want %v", cfg.Auth.IdleTTL, 5*time.Minute)
	}
	if cfg.Feed.SwipeThreshold != 900 {
		t.Fatalf("unexpected swipe threshold: got %v want %v", cfg.Feed.SwipeThreshold, 900.0)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	def := Default()
	if cfg.HTTP.Addr != def.HTTP.Addr {
		t.Fatalf("unexpected http addr: got %q want %q", cfg.HTTP.Addr, def.HTTP.Addr)
	}
	if cfg.Feed.SwipeThreshold != def.Feed.SwipeThreshold {
		t.Fatalf("unexpected swipe threshold: got %v want %v", cfg.Feed.SwipeThreshold, def.Feed.SwipeThreshold)
	}
}

func TestLoadRejectsBadDurationEnv(t *testing.T) {
	t.Setenv("SESSION_IDLE_TTL", "not-a-duration")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid duration env")
	}
}
