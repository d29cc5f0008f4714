// Package contenttree maps logical document requests onto files inside a
// fixed, allow-listed content directory.
package contenttree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind identifies a content tree variant.
type Kind string

const (
	KindOLevelP1     Kind = "olevel-p1"
	KindOLevelP2     Kind = "olevel-p2"
	KindIntermediate Kind = "intermediate"
)

// DocumentRequest is the JSON body sent by the viewer. Which of Folder,
// UnitPath and Level is consulted depends on the tree kind.
type DocumentRequest struct {
	Filename string `json:"filename"`
	Folder   string `json:"folder,omitempty"`
	UnitPath string `json:"unitPath,omitempty"`
	Level    string `json:"level,omitempty"`
}

// Tree is one content tree: a base directory plus the rules for choosing a
// subdirectory from the request.
type Tree struct {
	Kind    Kind
	Name    string
	Route   string
	BaseDir string

	// Field is the JSON name of the discriminator, for error messages and docs.
	Field string
	// Allowed lists the accepted discriminator values. When empty, Pattern is used.
	Allowed []string
	Pattern *regexp.Regexp
	// Default is used when the request leaves the discriminator empty.
	Default  string
	Required bool
}

var unitPattern = regexp.MustCompile(`^Unit[0-9]+$`)

// OLevelP1 serves O Level Paper 1 notes. Documents live either directly under
// base or under a Unit<n> subdirectory.
func OLevelP1(base string) *Tree {
	return &Tree{
		Kind:    KindOLevelP1,
		Name:    "O Level Paper 1",
		Route:   "/api/convert-document",
		BaseDir: base,
		Field:   "unitPath",
		Pattern: unitPattern,
	}
}

// OLevelP2 serves O Level Paper 2 notes split into notes/ and important_topics/.
func OLevelP2(base string) *Tree {
	return &Tree{
		Kind:    KindOLevelP2,
		Name:    "O Level Paper 2",
		Route:   "/api/convert-document-p2",
		BaseDir: base,
		Field:   "folder",
		Allowed: []string{"notes", "important_topics"},
		Default: "notes",
	}
}

// Intermediate serves intermediate class notes under xi/ and xii/.
func Intermediate(base string) *Tree {
	return &Tree{
		Kind:     KindIntermediate,
		Name:     "Intermediate",
		Route:    "/api/convert-document-intermediate",
		BaseDir:  base,
		Field:    "level",
		Allowed:  []string{"xi", "xii"},
		Required: true,
	}
}

// Discriminator returns the request field this tree routes on.
func (t *Tree) Discriminator(req DocumentRequest) string {
	switch t.Kind {
	case KindOLevelP1:
		return req.UnitPath
	case KindOLevelP2:
		return req.Folder
	case KindIntermediate:
		return req.Level
	default:
		return ""
	}
}

// Subdir validates a discriminator value and returns the subdirectory it
// selects. An empty result means the base directory itself.
func (t *Tree) Subdir(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = t.Default
	}
	if value == "" {
		if t.Required {
			return "", fmt.Errorf("%w: %s is required", ErrNotFound, t.Field)
		}
		return "", nil
	}

	if len(t.Allowed) > 0 {
		for _, a := range t.Allowed {
			if value == a {
				return value, nil
			}
		}
		return "", fmt.Errorf("%w: unknown %s %q", ErrNotFound, t.Field, value)
	}
	if t.Pattern != nil && t.Pattern.MatchString(value) {
		return value, nil
	}
	return "", fmt.Errorf("%w: invalid %s %q", ErrNotFound, t.Field, value)
}

// Resolve turns a request into an absolute path of an existing regular file
// inside the tree.
func (t *Tree) Resolve(req DocumentRequest) (string, error) {
	name := strings.TrimSpace(req.Filename)
	if name == "" {
		return "", ErrFilenameRequired
	}
	if !validFilename(name) {
		return "", fmt.Errorf("%w: invalid filename %q", ErrNotFound, name)
	}

	sub, err := t.Subdir(t.Discriminator(req))
	if err != nil {
		return "", err
	}

	base, err := filepath.Abs(t.BaseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base %s: %w", t.BaseDir, err)
	}
	path := filepath.Join(base, sub, name)
	if !within(base, path) {
		return "", fmt.Errorf("%w: %q escapes %s", ErrNotFound, name, t.Name)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, filepath.Join(sub, name))
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a file", ErrNotFound, filepath.Join(sub, name))
	}

	// A symlink inside the tree must not point outside it.
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("evaluating %s: %w", path, err)
	}
	realBase, err := filepath.EvalSymlinks(base)
	if err != nil {
		return "", fmt.Errorf("evaluating %s: %w", base, err)
	}
	if !within(realBase, resolved) {
		return "", fmt.Errorf("%w: %q links outside %s", ErrNotFound, name, t.Name)
	}

	return path, nil
}

// validFilename accepts a single path element. Catalog filenames contain
// spaces, commas and apostrophes, so only separators and dot names are refused.
func validFilename(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`+"\x00") {
		return false
	}
	return filepath.Base(name) == name
}

func within(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
