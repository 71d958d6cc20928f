package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("loading with missing file: %v", err)
	}
	if cfg.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.DataDir != "data" {
		t.Errorf("expected default data dir, got %q", cfg.DataDir)
	}
	if len(cfg.CacheAssets) == 0 {
		t.Error("expected a default cache manifest")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".schoolpos.yml")
	content := "port: 8080\ndata_dir: /var/lib/pos\nallow_all_cors: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.DataDir != "/var/lib/pos" {
		t.Errorf("expected data dir from file, got %q", cfg.DataDir)
	}
	if !cfg.AllowAllCORS {
		t.Error("expected allow_all_cors true")
	}
	// Untouched keys keep their defaults.
	if cfg.StaticDir != "static" {
		t.Errorf("expected default static dir, got %q", cfg.StaticDir)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".schoolpos.yml")
	if err := os.WriteFile(path, []byte("port: 8080\n"), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("SCHOOLPOS_PORT", "9999")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Port != 9999 {
		t.Errorf("expected env override 9999, got %d", cfg.Port)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".schoolpos.yml")

	cfg := DefaultConfig()
	cfg.Port = 7070
	if err := cfg.Save(path); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if loaded.Port != 7070 {
		t.Errorf("expected port 7070 after round trip, got %d", loaded.Port)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero port", func(c *Config) { c.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"missing data dir", func(c *Config) { c.DataDir = "" }, true},
		{"missing server url", func(c *Config) { c.ServerURL = "" }, true},
		{"server url without scheme", func(c *Config) { c.ServerURL = "localhost:5000" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
