package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.API.BaseURL == "" {
		t.Fatalf("expected a default base URL")
	}
	if cfg.List.FilterPolicy != FilterPolicyGTE {
		t.Fatalf("expected gte default, got %q", cfg.List.FilterPolicy)
	}
	if cfg.Session.ReloginOnEmailChange {
		t.Fatalf("expected email change to keep the session by default")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.TimeoutSeconds != DefaultConfig().API.TimeoutSeconds {
		t.Fatalf("expected defaults for missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://example.test"
	cfg.API.TimeoutSeconds = 7
	cfg.List.FilterPolicy = FilterPolicyLTE
	cfg.Session.ReloginOnEmailChange = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.API.BaseURL != "https://example.test" {
		t.Fatalf("base url not preserved: %q", loaded.API.BaseURL)
	}
	if loaded.API.TimeoutSeconds != 7 {
		t.Fatalf("timeout not preserved: %d", loaded.API.TimeoutSeconds)
	}
	if loaded.List.FilterPolicy != FilterPolicyLTE {
		t.Fatalf("filter policy not preserved: %q", loaded.List.FilterPolicy)
	}
	if !loaded.Session.ReloginOnEmailChange {
		t.Fatalf("session policy not preserved")
	}
}

func TestLoadRejectsBadFilterPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.List.FilterPolicy = "between"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for unknown filter policy")
	}
}
