package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearWorkflowEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENROUTER_API_KEY", "alfred_workflow_cache", "ALFRED_WORKFLOW_DEBUG",
		"MODELS_TTL", "ENDPOINTS_TTL", "ICONS_TTL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearWorkflowEnv(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ModelsTTL != 1440*time.Minute {
		t.Fatalf("expected default models TTL, got %v", cfg.ModelsTTL)
	}
	if cfg.EndpointsTTL != 30*time.Minute {
		t.Fatalf("expected default endpoints TTL, got %v", cfg.EndpointsTTL)
	}
	if cfg.CacheDir == "" {
		t.Fatal("expected a fallback cache dir")
	}
}

func TestLoadParsesFile(t *testing.T) {
	clearWorkflowEnv(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	err := os.WriteFile(path, []byte(`api_key = "sk-test"
cache_dir = "/tmp/or-cache"
models_ttl = 60
`), 0o644)
	if err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "sk-test" {
		t.Fatalf("expected api key from file, got %q", cfg.APIKey)
	}
	if cfg.CacheDir != "/tmp/or-cache" {
		t.Fatalf("expected cache dir from file, got %q", cfg.CacheDir)
	}
	if cfg.ModelsTTL != time.Hour {
		t.Fatalf("expected 60m models TTL, got %v", cfg.ModelsTTL)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearWorkflowEnv(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(path, []byte(`api_key = "sk-file"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OPENROUTER_API_KEY", "sk-env")
	t.Setenv("alfred_workflow_cache", tmp)
	t.Setenv("ENDPOINTS_TTL", "5")
	t.Setenv("ALFRED_WORKFLOW_DEBUG", "1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "sk-env" {
		t.Fatalf("expected env api key to win, got %q", cfg.APIKey)
	}
	if cfg.CacheDir != tmp {
		t.Fatalf("expected env cache dir, got %q", cfg.CacheDir)
	}
	if cfg.EndpointsTTL != 5*time.Minute {
		t.Fatalf("expected 5m endpoints TTL, got %v", cfg.EndpointsTTL)
	}
	if !cfg.Debug {
		t.Fatal("expected debug mode from env")
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := Config{CacheDir: "/tmp/x"}
	if got := cfg.IconsDir(); got != filepath.Join("/tmp/x", "icons") {
		t.Fatalf("unexpected icons dir %q", got)
	}
	if got := cfg.EndpointsDir(); got != filepath.Join("/tmp/x", "endpoints") {
		t.Fatalf("unexpected endpoints dir %q", got)
	}
}
