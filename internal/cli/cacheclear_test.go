package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbettag/alfred-openrouter/internal/config"
)

func seedCache(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.CacheDir = t.TempDir()
	for _, name := range []string{"models.json", "icons.json"} {
		if err := os.WriteFile(filepath.Join(cfg.CacheDir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	for _, dir := range []string{"endpoints", "icons"} {
		if err := os.MkdirAll(filepath.Join(cfg.CacheDir, dir), 0o755); err != nil {
			t.Fatalf("seed %s: %v", dir, err)
		}
	}
	return cfg
}

func TestClearCacheTargets(t *testing.T) {
	cfg := seedCache(t)
	out := clearCache(cfg, "models")
	if out != "Cleared: Models" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(cfg.CacheDir, "models.json")); !os.IsNotExist(err) {
		t.Fatal("models.json should be gone")
	}
	if _, err := os.Stat(filepath.Join(cfg.CacheDir, "endpoints")); err != nil {
		t.Fatal("endpoints must survive a models-only clear")
	}
}

func TestClearCacheAll(t *testing.T) {
	cfg := seedCache(t)
	out := clearCache(cfg, "all")
	for _, label := range []string{"Models", "Endpoints", "Icons", "Icons Metadata"} {
		if !strings.Contains(out, label) {
			t.Fatalf("output %q missing %q", out, label)
		}
	}
	entries, err := os.ReadDir(cfg.CacheDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("cache dir should be empty, found %d entries", len(entries))
	}
}

func TestClearCacheEmpty(t *testing.T) {
	cfg := config.Default()
	cfg.CacheDir = t.TempDir()
	if out := clearCache(cfg, "all"); out != "No cache cleared (or empty)" {
		t.Fatalf("unexpected output %q", out)
	}
}
