package contenttree

import "errors"

var (
	// ErrFilenameRequired is returned when a request carries no filename.
	ErrFilenameRequired = errors.New("filename is required")

	// ErrNotFound is returned when a request does not resolve to an existing
	// file inside the tree. Traversal attempts and unknown folders also map here
	// so the caller learns nothing about the filesystem outside the tree.
	ErrNotFound = errors.New("document not found")
)
