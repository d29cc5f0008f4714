// Package docx converts Word .docx documents into HTML fragments.
//
// Paragraph styles named "heading 1" to "heading 6" become h1-h6, bold runs
// become strong, numbered paragraphs become nested lists and tables keep their
// grid. Everything else degrades to plain paragraphs, and anything skipped is
// reported as a warning message rather than an error.
package docx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"golang.org/x/net/html"
)

// Severity classifies a conversion message.
type Severity string

const SeverityWarning Severity = "warning"

// Message is a non-fatal conversion diagnostic.
type Message struct {
	Severity Severity `json:"type"`
	Text     string   `json:"message"`
}

// Result is the output of a conversion.
type Result struct {
	HTML     string
	Messages []Message
}

var (
	// ErrInvalidDocument matches any ConversionError via errors.Is.
	ErrInvalidDocument = errors.New("invalid docx document")

	// ErrTooLarge is returned when a file or one of its parts exceeds the limit.
	ErrTooLarge = errors.New("document too large")
)

// ConversionError reports a byte stream that is not a well-formed document.
type ConversionError struct {
	Op  string
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("docx: %s: %v", e.Op, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool { return target == ErrInvalidDocument }

func invalid(op string, err error) error {
	return &ConversionError{Op: op, Err: err}
}

// Convert turns the bytes of a .docx file into an HTML fragment.
func Convert(data []byte) (*Result, error) {
	return convert(data, 0)
}

// ConvertLimit is Convert with every decompressed part capped at limit
// bytes, and the package as a whole at a few times that. Overflow is a
// ConversionError wrapping ErrTooLarge.
func ConvertLimit(data []byte, limit int64) (*Result, error) {
	return convert(data, limit)
}

func convert(data []byte, limit int64) (*Result, error) {
	pkg, err := openPackage(data, limit)
	if err != nil {
		return nil, err
	}

	main, err := pkg.mainPart()
	if err != nil {
		return nil, err
	}
	doc, err := pkg.readXML(main)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, invalid("locate main document", fmt.Errorf("part %s missing", main))
	}
	body := doc.child("body")
	if body == nil {
		return nil, invalid("parse "+main, errors.New("document has no body"))
	}

	dir := path.Dir(main)
	styles, err := pkg.loadStyles(dir)
	if err != nil {
		return nil, err
	}
	num, err := pkg.loadNumbering(dir)
	if err != nil {
		return nil, err
	}
	rels, err := pkg.relationships(main)
	if err != nil {
		return nil, err
	}

	c := &converter{
		pkg:       pkg,
		styles:    styles,
		numbering: num,
		rels:      rels,
		warned:    map[string]bool{},
	}
	nodes := c.blocks(body.children)
	if c.err != nil {
		return nil, c.err
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, fmt.Errorf("rendering html: %w", err)
		}
	}

	return &Result{HTML: buf.String(), Messages: c.messages}, nil
}

// ConvertFile reads and converts the named file, refusing files larger
// than limit bytes and parts that expand past it. A limit <= 0 disables
// both checks.
func ConvertFile(name string, limit int64) (*Result, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, invalid("read "+name, fmt.Errorf("%w: over %d bytes", ErrTooLarge, limit))
	}

	return convert(data, limit)
}
