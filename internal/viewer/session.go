// Package viewer models the document viewer: a modal that loads a converted
// document, shows it or an error, and keeps copy protections installed for
// exactly as long as it is open.
//
// The protections are a deterrent for casual copying. They are not a
// security boundary.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/srazzak/tutorsite/internal/contenttree"
)

// State is the viewer lifecycle state.
type State int

const (
	Closed State = iota
	Loading
	Content
	Error
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Loading:
		return "loading"
	case Content:
		return "content"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Document describes what the viewer was asked to show.
type Document struct {
	Title    string
	Kind     contenttree.Kind
	Filename string
	// Discriminator is the unit, folder or level, depending on Kind.
	Discriminator string
}

// Request builds the conversion request body for d.
func (d Document) Request() contenttree.DocumentRequest {
	req := contenttree.DocumentRequest{Filename: d.Filename}
	switch d.Kind {
	case contenttree.KindOLevelP1:
		req.UnitPath = d.Discriminator
	case contenttree.KindOLevelP2:
		req.Folder = d.Discriminator
	case contenttree.KindIntermediate:
		req.Level = d.Discriminator
	}
	return req
}

// Fetcher loads the guarded HTML of a document.
type Fetcher interface {
	Fetch(ctx context.Context, doc Document) (string, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, doc Document) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, doc Document) (string, error) { return f(ctx, doc) }

var (
	// ErrNotRetryable is returned by Retry outside the Error state.
	ErrNotRetryable = errors.New("viewer: nothing to retry")
	// ErrSuperseded is returned by Open or Retry when the viewer was closed or
	// reopened while the fetch was in flight. The response was discarded.
	ErrSuperseded = errors.New("viewer: request superseded")
)

// Snapshot is a consistent view of a session.
type Snapshot struct {
	State    State
	Document Document
	HTML     string
	Err      error
}

// Session is one viewer instance. It is safe for concurrent use.
type Session struct {
	ID string

	fetcher   Fetcher
	protector Protector

	mu    sync.Mutex
	state State
	doc   Document
	html  string
	err   error
	gen   uint64
	lease Lease
}

// NewSession creates a closed viewer. A nil protector installs nothing.
func NewSession(f Fetcher, p Protector) *Session {
	return &Session{
		ID:        uuid.NewString(),
		fetcher:   f,
		protector: p,
	}
}

// Open shows doc. It always fetches, even when doc was shown before. Opening
// while already open replaces the current document.
func (s *Session) Open(ctx context.Context, doc Document) error {
	s.mu.Lock()
	if s.lease == nil && s.protector != nil {
		s.lease = s.protector.Acquire()
	}
	s.doc = doc
	gen := s.begin()
	s.mu.Unlock()

	return s.load(ctx, gen, doc)
}

// Retry repeats the last request after a failure.
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Error {
		s.mu.Unlock()
		return ErrNotRetryable
	}
	doc := s.doc
	gen := s.begin()
	s.mu.Unlock()

	return s.load(ctx, gen, doc)
}

// Close hides the viewer, drops its content and releases the protections.
// Any fetch still in flight is ignored when it completes.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.state = Closed
	s.doc = Document{}
	s.html = ""
	s.err = nil
	if s.lease != nil {
		s.lease.Release()
		s.lease = nil
	}
}

// begin enters Loading and returns the generation of the new request.
// The caller holds s.mu.
func (s *Session) begin() uint64 {
	s.gen++
	s.state = Loading
	s.html = ""
	s.err = nil
	return s.gen
}

func (s *Session) load(ctx context.Context, gen uint64, doc Document) error {
	html, err := s.fetcher.Fetch(ctx, doc)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		return ErrSuperseded
	}
	if err != nil {
		s.state = Error
		s.err = err
		return err
	}
	s.state = Content
	s.html = html
	return nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the current state with its content.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, Document: s.doc, HTML: s.html, Err: s.err}
}
