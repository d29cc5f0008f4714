package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.ContentRoot != "." {
		t.Errorf("expected default content_root %q, got %q", ".", cfg.ContentRoot)
	}
	if cfg.Trees.OLevelP2 != "public/OP2" {
		t.Errorf("expected default olevel_p2 %q, got %q", "public/OP2", cfg.Trees.OLevelP2)
	}
	if cfg.LogMode != LogDev {
		t.Errorf("expected default log_mode %q, got %q", LogDev, cfg.LogMode)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.tutorsite.yml")

	original := DefaultConfig()
	original.Port = 8081
	original.ContentRoot = "/srv/site"
	original.MaxDocumentBytes = 1 << 20
	original.AllowAllOrigins = true
	original.LogMode = LogProd
	original.Trees.Intermediate = "content/inter"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.ContentRoot != original.ContentRoot {
		t.Errorf("content_root: got %q, want %q", loaded.ContentRoot, original.ContentRoot)
	}
	if loaded.MaxDocumentBytes != original.MaxDocumentBytes {
		t.Errorf("max_document_bytes: got %d, want %d", loaded.MaxDocumentBytes, original.MaxDocumentBytes)
	}
	if !loaded.AllowAllOrigins {
		t.Error("allow_all_origins: got false, want true")
	}
	if loaded.LogMode != LogProd {
		t.Errorf("log_mode: got %q, want %q", loaded.LogMode, LogProd)
	}
	if loaded.Trees.Intermediate != "content/inter" {
		t.Errorf("trees.intermediate: got %q, want %q", loaded.Trees.Intermediate, "content/inter")
	}
	if loaded.Trees.OLevelP1 != "public/OP1" {
		t.Errorf("trees.olevel_p1: got %q, want default", loaded.Trees.OLevelP1)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	os.Setenv("TUTORSITE_CONTENT_ROOT", "/var/www")
	defer os.Unsetenv("TUTORSITE_CONTENT_ROOT")
	os.Setenv("TUTORSITE_PORT", "9090")
	defer os.Unsetenv("TUTORSITE_PORT")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ContentRoot != "/var/www" {
		t.Errorf("env override failed: got %q, want %q", loaded.ContentRoot, "/var/www")
	}
	if loaded.Port != 9090 {
		t.Errorf("env override failed: got %d, want 9090", loaded.Port)
	}
}

func TestValidateValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative port", func(c *Config) { c.Port = -1 }},
		{"huge port", func(c *Config) { c.Port = 70000 }},
		{"empty content root", func(c *Config) { c.ContentRoot = "" }},
		{"zero document limit", func(c *Config) { c.MaxDocumentBytes = 0 }},
		{"zero body limit", func(c *Config) { c.MaxBodyBytes = 0 }},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -1 }},
		{"bad log mode", func(c *Config) { c.LogMode = "verbose" }},
		{"empty tree", func(c *Config) { c.Trees.OLevelP1 = "" }},
		{"absolute tree", func(c *Config) { c.Trees.OLevelP2 = "/etc" }},
		{"escaping tree", func(c *Config) { c.Trees.Intermediate = "../secrets" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTreeDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentRoot = "/srv"
	if got := cfg.TreeDir(cfg.Trees.OLevelP2); got != filepath.Join("/srv", "public", "OP2") {
		t.Errorf("TreeDir = %q", got)
	}
}
