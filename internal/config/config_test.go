package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Port != "8001" || cfg.SubjectTable != "subjects" || cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explorer.yaml")
	yml := "port: \"9000\"\nbackend_url: http://backend:8000\nhttp_timeout: 5s\nallowed_origins:\n  - http://a\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != "9000" || cfg.BackendURL != "http://backend:8000" || cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("file not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://a" {
		t.Fatalf("origins %v", cfg.AllowedOrigins)
	}

	env := map[string]string{
		"PORT":            "9100",
		"ALLOWED_ORIGINS": "http://x, http://y,",
		"LOG_LEVEL":       "debug",
	}
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Port != "9100" || cfg.LogLevel != "debug" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://y" {
		t.Fatalf("origins %v", cfg.AllowedOrigins)
	}
	if cfg.BackendURL != "http://backend:8000" {
		t.Fatalf("file value lost: %s", cfg.BackendURL)
	}
}

func TestBadTimeout(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) string {
		if k == "HTTP_TIMEOUT" {
			return "soon"
		}
		return ""
	})
	if err == nil {
		t.Fatalf("expected error for bad duration")
	}
}
