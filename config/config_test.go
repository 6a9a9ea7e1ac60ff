package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[store]
backend = "nats"
url = "nats://localhost:4222"
bucket = "tasks"

[issuance]
default_ttl = "48h"
rate_capacity = 100
rate_window = "1m"

[bus]
enabled = true

[archive]
enabled = true
path = "/var/lib/annokit/index.bleve"

[logging]
level = "DEBUG"
`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Store.Backend != "nats" {
		t.Errorf("expected nats backend, got %s", cfg.Store.Backend)
	}
	if cfg.Store.URL != "nats://localhost:4222" {
		t.Errorf("unexpected store url: %s", cfg.Store.URL)
	}
	if cfg.Issuance.DefaultTTL.Std() != 48*time.Hour {
		t.Errorf("expected 48h ttl, got %v", cfg.Issuance.DefaultTTL.Std())
	}
	if cfg.Issuance.RateCapacity != 100 {
		t.Errorf("expected capacity 100, got %d", cfg.Issuance.RateCapacity)
	}
	if !cfg.Archive.Enabled || cfg.Archive.Path == "" {
		t.Error("archive section not applied")
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("expected DEBUG, got %s", cfg.Logging.Level)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse(`[logging]
level = "WARN"
`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("absent store section should keep memory backend, got %s", cfg.Store.Backend)
	}
	if cfg.Store.Bucket != "annokit-work-packages" {
		t.Errorf("default bucket lost: %s", cfg.Store.Bucket)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"unknown backend", "[store]\nbackend = \"redis\"\n"},
		{"nats without url", "[store]\nbackend = \"nats\"\n"},
		{"capacity without window", "[issuance]\nrate_capacity = 5\nrate_window = \"0s\"\n"},
		{"negative ttl", "[issuance]\ndefault_ttl = \"-1h\"\n"},
		{"bad level", "[logging]\nlevel = \"verbose\"\n"},
	}

	for _, tc := range cases {
		if _, err := Parse(tc.content); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annokit.toml")
	content := "[store]\nbackend = \"memory\"\nbucket = \"b\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Bucket != "b" {
		t.Errorf("expected bucket b, got %s", cfg.Store.Bucket)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
