package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/srazzak/tutorsite/internal/config"
	"github.com/srazzak/tutorsite/internal/contenttree"
	"github.com/srazzak/tutorsite/internal/logger"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `tutorsite init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the logger for cfg. --verbose forces development output.
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	mode := string(cfg.LogMode)
	if verbose {
		mode = string(config.LogDev)
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return log, nil
}

// buildRegistry creates the three content trees under the content root.
func buildRegistry(cfg *config.Config) (*contenttree.Registry, error) {
	return contenttree.NewRegistry(
		contenttree.OLevelP1(cfg.TreeDir(cfg.Trees.OLevelP1)),
		contenttree.OLevelP2(cfg.TreeDir(cfg.Trees.OLevelP2)),
		contenttree.Intermediate(cfg.TreeDir(cfg.Trees.Intermediate)),
	)
}

// pdfRoot returns the PDF directory, relative paths being taken from the
// content root.
func pdfRoot(cfg *config.Config) string {
	if filepath.IsAbs(cfg.PDFRoot) {
		return cfg.PDFRoot
	}
	return cfg.TreeDir(cfg.PDFRoot)
}
