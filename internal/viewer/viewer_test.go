package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/srazzak/tutorsite/internal/contenttree"
)

// fakeSurface records what the shield installs.
type fakeSurface struct {
	mu        sync.Mutex
	listeners map[EventKind][]*Listener
	locked    bool
	hidden    bool
	blanks    []time.Duration
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{listeners: make(map[EventKind][]*Listener)}
}

func (f *fakeSurface) Listen(kind EventKind, fn Listener) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &fn
	f.listeners[kind] = append(f.listeners[kind], p)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		ls := f.listeners[kind]
		for i, l := range ls {
			if l == p {
				f.listeners[kind] = append(ls[:i], ls[i+1:]...)
				return
			}
		}
	}
}

func (f *fakeSurface) LockSelection(locked bool) { f.locked = locked }
func (f *fakeSurface) Hidden() bool              { return f.hidden }
func (f *fakeSurface) Blank(d time.Duration)     { f.blanks = append(f.blanks, d) }

func (f *fakeSurface) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ls := range f.listeners {
		n += len(ls)
	}
	return n
}

// dispatch fires an event and reports whether any listener cancelled it.
func (f *fakeSurface) dispatch(ev Event) bool {
	f.mu.Lock()
	ls := append([]*Listener(nil), f.listeners[ev.Kind]...)
	f.mu.Unlock()
	cancel := false
	for _, l := range ls {
		if (*l)(ev) {
			cancel = true
		}
	}
	return cancel
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct{ timers []*fakeTimer }

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) fire() {
	timers := c.timers
	c.timers = nil
	for _, t := range timers {
		if !t.stopped {
			t.f()
		}
	}
}

func TestKeyPolicy(t *testing.T) {
	p := DefaultPolicy().Keys
	cases := []struct {
		name string
		ev   KeyEvent
		want bool
	}{
		{"ctrl+c", KeyEvent{Key: "c", Ctrl: true}, true},
		{"meta+C", KeyEvent{Key: "C", Meta: true}, true},
		{"alt+p", KeyEvent{Key: "p", Alt: true}, true},
		{"ctrl+s", KeyEvent{Key: "s", Ctrl: true}, true},
		{"ctrl+j", KeyEvent{Key: "j", Ctrl: true}, true},
		{"F12", KeyEvent{Key: "F12"}, true},
		{"PrintScreen", KeyEvent{Key: "PrintScreen"}, true},
		{"ctrl+shift+I", KeyEvent{Key: "I", Ctrl: true, Shift: true}, true},
		{"ctrl+U", KeyEvent{Key: "U", Ctrl: true}, true},
		{"plain c", KeyEvent{Key: "c"}, false},
		{"shift+c", KeyEvent{Key: "c", Shift: true}, false},
		{"ctrl+b", KeyEvent{Key: "b", Ctrl: true}, false},
		{"arrow", KeyEvent{Key: "ArrowDown"}, false},
		{"F5", KeyEvent{Key: "F5"}, false},
	}
	for _, tc := range cases {
		if got := p.Blocks(tc.ev); got != tc.want {
			t.Errorf("%s: Blocks = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestShieldInstallsAndRemoves(t *testing.T) {
	s := newFakeSurface()
	shield := NewShield(s, DefaultPolicy(), &fakeClock{})

	lease := shield.Acquire()
	if s.count() != 3 {
		t.Fatalf("listeners = %d, want 3", s.count())
	}
	if !s.locked {
		t.Error("selection not locked")
	}
	if !s.dispatch(Event{Kind: EventContextMenu}) {
		t.Error("context menu not cancelled")
	}
	if !s.dispatch(Event{Kind: EventKeyDown, Key: KeyEvent{Key: "c", Ctrl: true}}) {
		t.Error("ctrl+c not cancelled")
	}
	if s.dispatch(Event{Kind: EventKeyDown, Key: KeyEvent{Key: "ArrowUp"}}) {
		t.Error("arrow key cancelled")
	}

	lease.Release()
	lease.Release()
	if s.count() != 0 {
		t.Errorf("listeners after release = %d, want 0", s.count())
	}
	if s.locked {
		t.Error("selection still locked")
	}
	if shield.active() {
		t.Error("shield still active")
	}
}

func TestShieldNestedLeases(t *testing.T) {
	s := newFakeSurface()
	shield := NewShield(s, DefaultPolicy(), &fakeClock{})

	a := shield.Acquire()
	b := shield.Acquire()
	if s.count() != 3 {
		t.Fatalf("listeners = %d, want 3 (installed once)", s.count())
	}
	a.Release()
	a.Release()
	if s.count() != 3 || !shield.active() {
		t.Fatal("releasing one of two leases removed protections")
	}
	b.Release()
	if s.count() != 0 {
		t.Errorf("listeners = %d, want 0", s.count())
	}
}

func TestVisibilityBlanking(t *testing.T) {
	s := newFakeSurface()
	clock := &fakeClock{}
	p := DefaultPolicy()
	shield := NewShield(s, p, clock)
	lease := shield.Acquire()
	defer lease.Release()

	s.hidden = true
	s.dispatch(Event{Kind: EventVisibility})
	if len(clock.timers) != 1 || clock.timers[0].d != 50*time.Millisecond {
		t.Fatalf("timers = %+v, want one 50ms timer", clock.timers)
	}

	s.hidden = false
	clock.fire()
	if len(s.blanks) != 1 || s.blanks[0] != 100*time.Millisecond {
		t.Fatalf("blanks = %v, want [100ms]", s.blanks)
	}
}

func TestVisibilityStillHidden(t *testing.T) {
	s := newFakeSurface()
	clock := &fakeClock{}
	shield := NewShield(s, DefaultPolicy(), clock)
	lease := shield.Acquire()
	defer lease.Release()

	s.hidden = true
	s.dispatch(Event{Kind: EventVisibility})
	clock.fire()
	if len(s.blanks) != 0 {
		t.Errorf("blanked while still hidden: %v", s.blanks)
	}

	// Becoming visible does not schedule anything on its own.
	s.hidden = false
	s.dispatch(Event{Kind: EventVisibility})
	if len(clock.timers) != 0 {
		t.Errorf("timer scheduled on visible event")
	}
}

func TestVisibilityAfterRelease(t *testing.T) {
	s := newFakeSurface()
	clock := &fakeClock{}
	shield := NewShield(s, DefaultPolicy(), clock)
	lease := shield.Acquire()

	s.hidden = true
	s.dispatch(Event{Kind: EventVisibility})
	lease.Release()
	s.hidden = false
	clock.fire()
	if len(s.blanks) != 0 {
		t.Errorf("blanked after release: %v", s.blanks)
	}
}

func docP1() Document {
	return Document{
		Title:         "Binary Represents Data",
		Kind:          contenttree.KindOLevelP1,
		Filename:      "Topic1_BinaryRepresentsData.docx",
		Discriminator: "Unit1",
	}
}

func TestSessionOpenContent(t *testing.T) {
	s := newFakeSurface()
	shield := NewShield(s, DefaultPolicy(), &fakeClock{})
	calls := 0
	sess := NewSession(FetcherFunc(func(ctx context.Context, doc Document) (string, error) {
		calls++
		return "<p>" + doc.Title + "</p>", nil
	}), shield)

	if _, err := uuid.Parse(sess.ID); err != nil {
		t.Errorf("session id %q is not a uuid: %v", sess.ID, err)
	}
	if sess.State() != Closed {
		t.Fatalf("initial state = %v", sess.State())
	}

	if err := sess.Open(context.Background(), docP1()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	snap := sess.Snapshot()
	if snap.State != Content || snap.HTML != "<p>Binary Represents Data</p>" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if !shield.active() {
		t.Error("protections not active while showing content")
	}

	sess.Close()
	snap = sess.Snapshot()
	if snap.State != Closed || snap.HTML != "" || snap.Err != nil {
		t.Errorf("after close = %+v", snap)
	}
	if shield.active() || s.count() != 0 {
		t.Error("protections still installed after close")
	}

	// Reopening the same document fetches again.
	if err := sess.Open(context.Background(), docP1()); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("fetch calls = %d, want 2", calls)
	}
	sess.Close()
}

func TestSessionErrorAndRetry(t *testing.T) {
	shield := NewShield(newFakeSurface(), DefaultPolicy(), &fakeClock{})
	fail := true
	sess := NewSession(FetcherFunc(func(context.Context, Document) (string, error) {
		if fail {
			return "", &FetchError{Status: 500, Message: "Failed to convert document"}
		}
		return "<p>ok</p>", nil
	}), shield)

	if err := sess.Retry(context.Background()); !errors.Is(err, ErrNotRetryable) {
		t.Errorf("Retry while closed = %v, want ErrNotRetryable", err)
	}

	err := sess.Open(context.Background(), docP1())
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Status != 500 {
		t.Fatalf("Open err = %v", err)
	}
	if sess.State() != Error {
		t.Fatalf("state = %v, want error", sess.State())
	}
	if !shield.active() {
		t.Error("lease should be held in the error state")
	}

	fail = false
	if err := sess.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if snap := sess.Snapshot(); snap.State != Content || snap.HTML != "<p>ok</p>" || snap.Err != nil {
		t.Errorf("after retry = %+v", snap)
	}

	if err := sess.Retry(context.Background()); !errors.Is(err, ErrNotRetryable) {
		t.Errorf("Retry from content = %v", err)
	}

	sess.Close()
	if shield.active() {
		t.Error("lease leaked after close from error path")
	}
}

func TestSessionCloseDuringLoad(t *testing.T) {
	shield := NewShield(newFakeSurface(), DefaultPolicy(), &fakeClock{})
	started := make(chan struct{})
	release := make(chan struct{})
	sess := NewSession(FetcherFunc(func(context.Context, Document) (string, error) {
		close(started)
		<-release
		return "<p>late</p>", nil
	}), shield)

	done := make(chan error, 1)
	go func() { done <- sess.Open(context.Background(), docP1()) }()

	<-started
	if sess.State() != Loading {
		t.Fatalf("state = %v, want loading", sess.State())
	}
	sess.Close()
	close(release)

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Errorf("Open err = %v, want ErrSuperseded", err)
	}
	if snap := sess.Snapshot(); snap.State != Closed || snap.HTML != "" {
		t.Errorf("stale response applied: %+v", snap)
	}
	if shield.active() {
		t.Error("lease held after close")
	}
}

func TestSessionWithoutProtector(t *testing.T) {
	sess := NewSession(FetcherFunc(func(context.Context, Document) (string, error) {
		return "x", nil
	}), nil)
	if err := sess.Open(context.Background(), docP1()); err != nil {
		t.Fatal(err)
	}
	sess.Close()
}

func TestDocumentRequest(t *testing.T) {
	cases := []struct {
		doc  Document
		want contenttree.DocumentRequest
	}{
		{docP1(), contenttree.DocumentRequest{Filename: "Topic1_BinaryRepresentsData.docx", UnitPath: "Unit1"}},
		{Document{Kind: contenttree.KindOLevelP2, Filename: "a.docx", Discriminator: "important_topics"},
			contenttree.DocumentRequest{Filename: "a.docx", Folder: "important_topics"}},
		{Document{Kind: contenttree.KindIntermediate, Filename: "b.docx", Discriminator: "xi"},
			contenttree.DocumentRequest{Filename: "b.docx", Level: "xi"}},
	}
	for _, tc := range cases {
		if got := tc.doc.Request(); got != tc.want {
			t.Errorf("Request() = %+v, want %+v", got, tc.want)
		}
	}
}

func TestHTTPFetcher(t *testing.T) {
	var got contenttree.DocumentRequest
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		if got.Filename == "missing.docx" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Document not found"}`))
			return
		}
		w.Write([]byte(`{"html":"<p>hi</p>","messages":[]}`))
	}))
	defer srv.Close()

	reg, err := contenttree.NewRegistry(contenttree.OLevelP1("a"), contenttree.OLevelP2("b"))
	if err != nil {
		t.Fatal(err)
	}
	f := NewHTTPFetcher(srv.URL+"/", reg)

	html, err := f.Fetch(context.Background(), docP1())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if html != "<p>hi</p>" || path != "/api/convert-document" || got.UnitPath != "Unit1" {
		t.Errorf("html=%q path=%q req=%+v", html, path, got)
	}

	_, err = f.Fetch(context.Background(), Document{Kind: contenttree.KindOLevelP2, Filename: "missing.docx"})
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Status != 404 || fe.Message != "Document not found" {
		t.Errorf("err = %v", err)
	}

	if _, err := f.Fetch(context.Background(), Document{Kind: contenttree.KindIntermediate, Filename: "x"}); err == nil {
		t.Error("expected error for unregistered tree")
	}
}

func TestPolicyRoute(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, DefaultPolicy())

	req := httptest.NewRequest(http.MethodGet, "/api/viewer/policy", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var p Policy
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.BlankDelayMS != 50 || p.BlankForMS != 100 {
		t.Errorf("timing = %d/%d, want 50/100", p.BlankDelayMS, p.BlankForMS)
	}
	if len(p.Keys.ModifierKeys) != 14 {
		t.Errorf("modifier keys = %v", p.Keys.ModifierKeys)
	}
	if !p.BlockContextMenu || !p.LockSelection {
		t.Error("protections disabled in served policy")
	}
}
