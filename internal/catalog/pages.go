package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageCounter reports page counts of PDF cards found under a root directory.
// Counts are computed once per file and remembered.
type PageCounter struct {
	root  string
	count func(path string) (int, error)

	mu    sync.Mutex
	cache map[string]int
}

// NewPageCounter reads PDFs from root using pdfcpu.
func NewPageCounter(root string) *PageCounter {
	return &PageCounter{
		root:  root,
		count: pdfapi.PageCountFile,
		cache: make(map[string]int),
	}
}

// Count returns the number of pages in the card's file.
func (p *PageCounter) Count(card PDFCard) (int, error) {
	if card.File == "" {
		return 0, fs.ErrNotExist
	}
	path := filepath.Join(p.root, filepath.FromSlash(card.File))

	p.mu.Lock()
	n, ok := p.cache[path]
	p.mu.Unlock()
	if ok {
		return n, nil
	}

	if _, err := os.Stat(path); err != nil {
		return 0, err
	}
	n, err := p.count(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", card.File, err)
	}

	p.mu.Lock()
	p.cache[path] = n
	p.mu.Unlock()
	return n, nil
}

// Label returns "<n> pages" from the file when it can be read, and the
// card's static label otherwise.
func (p *PageCounter) Label(card PDFCard) string {
	if p == nil {
		return card.Pages
	}
	n, err := p.Count(card)
	if err != nil {
		return card.Pages
	}
	if n == 1 {
		return "1 page"
	}
	return fmt.Sprintf("%d pages", n)
}
