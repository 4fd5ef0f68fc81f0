package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Output != "events.json" {
		t.Errorf("output = %q, want events.json", cfg.Output)
	}
	if cfg.Months != 12 {
		t.Errorf("months = %d, want 12", cfg.Months)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Parallel {
		t.Error("parallel should default to false")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
output: /tmp/shows.json
months: 6
timeout: 10s
venues:
  - bowery
  - mideast
parallel: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Output != "/tmp/shows.json" {
		t.Errorf("output = %q, want file value", cfg.Output)
	}
	if cfg.Months != 6 {
		t.Errorf("months = %d, want 6", cfg.Months)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.Timeout)
	}
	if !reflect.DeepEqual(cfg.Venues, []string{"bowery", "mideast"}) {
		t.Errorf("venues = %v, want [bowery mideast]", cfg.Venues)
	}
	if !cfg.Parallel {
		t.Error("parallel should be true")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("months: 6\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BOSTONSHOWS_MONTHS", "3")
	t.Setenv("BOSTONSHOWS_OUTPUT", "/tmp/env.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Months != 3 {
		t.Errorf("months = %d, want env override 3", cfg.Months)
	}
	if cfg.Output != "/tmp/env.json" {
		t.Errorf("output = %q, want env override", cfg.Output)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"empty output", func(c *Config) { c.Output = "" }, true},
		{"zero months", func(c *Config) { c.Months = 0 }, true},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
