package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TUTORSITE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// TUTORSITE_CONTENT_ROOT -> content_root, TUTORSITE_TREES.OLEVEL_P2 -> trees.olevel_p2.
	if err := k.Load(env.Provider("TUTORSITE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "TUTORSITE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogModes = map[LogMode]bool{
	LogDev:       true,
	LogProd:      true,
	"production": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ContentRoot == "" {
		return fmt.Errorf("content_root is required")
	}
	if c.MaxDocumentBytes <= 0 {
		return fmt.Errorf("max_document_bytes must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout_seconds must be non-negative")
	}
	if c.LogMode != "" && !validLogModes[c.LogMode] {
		return fmt.Errorf("invalid log_mode %q: must be one of dev, prod", c.LogMode)
	}

	for name, dir := range map[string]string{
		"trees.olevel_p1":    c.Trees.OLevelP1,
		"trees.olevel_p2":    c.Trees.OLevelP2,
		"trees.intermediate": c.Trees.Intermediate,
	} {
		if err := validateTreeDir(name, dir); err != nil {
			return err
		}
	}

	return nil
}

// validateTreeDir requires a relative directory that stays inside content_root.
func validateTreeDir(name, dir string) error {
	if dir == "" {
		return fmt.Errorf("%s is required", name)
	}
	if filepath.IsAbs(dir) {
		return fmt.Errorf("%s must be relative to content_root", name)
	}
	clean := filepath.Clean(dir)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s must not leave content_root", name)
	}
	return nil
}

// TreeDir joins a tree's relative directory onto the content root.
func (c *Config) TreeDir(rel string) string {
	return filepath.Join(c.ContentRoot, rel)
}
