package convert

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/srazzak/tutorsite/internal/contenttree"
	"github.com/srazzak/tutorsite/internal/docx"
)

// Client-facing error messages. These strings are part of the API.
const (
	MsgFilenameRequired = "Filename is required"
	MsgNotFound         = "Document not found"
	MsgConversionFailed = "Failed to convert document"
)

// ValidationError is a malformed request. Nothing on disk has been touched.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NotFoundError means the request did not resolve to a document in the tree.
type NotFoundError struct{ Err error }

func (e *NotFoundError) Error() string { return "not found: " + e.Err.Error() }
func (e *NotFoundError) Unwrap() error { return e.Err }

// ConversionError wraps a document that could not be converted.
type ConversionError struct{ Err error }

func (e *ConversionError) Error() string { return "conversion: " + e.Err.Error() }
func (e *ConversionError) Unwrap() error { return e.Err }

// InternalError is anything else: unexpected filesystem failures and the like.
type InternalError struct{ Err error }

func (e *InternalError) Error() string { return "internal: " + e.Err.Error() }
func (e *InternalError) Unwrap() error { return e.Err }

// wrap sorts a pipeline error into the taxonomy above.
func wrap(err error) error {
	var (
		ve *ValidationError
		ne *NotFoundError
		ce *ConversionError
		ie *InternalError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ve), errors.As(err, &ne), errors.As(err, &ce), errors.As(err, &ie):
		return err
	case errors.Is(err, contenttree.ErrFilenameRequired):
		return &ValidationError{Message: MsgFilenameRequired, Err: err}
	case errors.Is(err, contenttree.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return &NotFoundError{Err: err}
	case errors.Is(err, docx.ErrInvalidDocument):
		return &ConversionError{Err: err}
	default:
		return &InternalError{Err: err}
	}
}

// Classify maps an error to the HTTP status and the message shown to the
// client. Causes of conversion and internal failures are never exposed.
func Classify(err error) (int, string) {
	err = wrap(err)

	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}
	var ne *NotFoundError
	if errors.As(err, &ne) {
		return http.StatusNotFound, MsgNotFound
	}
	return http.StatusInternalServerError, MsgConversionFailed
}
