package contenttree

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches convertible documents anywhere in a tree.
var DefaultInclude = []string{"**/*.docx"}

// DefaultExclude skips Word lock files and hidden entries.
var DefaultExclude = []string{"**/~$*", "**/.*"}

// Entry is one document found on disk.
type Entry struct {
	RelPath  string // slash-separated, relative to the tree base
	Subdir   string // first path element, empty for files at the base
	Filename string
	Size     int64
}

// Inventory lists the documents present under a tree's base directory.
// A missing base directory yields an empty list rather than an error.
func Inventory(t *Tree, include, exclude []string) ([]Entry, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	if exclude == nil {
		exclude = DefaultExclude
	}

	base, err := filepath.Abs(t.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("inventory: resolve base: %w", err)
	}

	var entries []Entry
	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == base {
				return fs.SkipAll
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(rel, include) || matchesAny(rel, exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		e := Entry{RelPath: rel, Filename: d.Name(), Size: info.Size()}
		if i := strings.IndexByte(rel, '/'); i >= 0 {
			e.Subdir = rel[:i]
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("inventory %s: %w", t.Name, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].RelPath < entries[j].RelPath })
	return entries, nil
}

// matchesAny checks relPath, and its base name, against doublestar patterns.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, filepath.Base(relPath)); err == nil && matched {
			return true
		}
	}
	return false
}
