package viewer

import (
	"sync"
	"time"
)

// Lease is a held protection. Release undoes everything Acquire installed
// and may be called more than once.
type Lease interface {
	Release()
}

// Protector hands out protection leases for the viewer.
type Protector interface {
	Acquire() Lease
}

// EventKind names a host page event the shield listens to.
type EventKind string

const (
	EventContextMenu EventKind = "contextmenu"
	EventKeyDown     EventKind = "keydown"
	EventVisibility  EventKind = "visibilitychange"
)

// Event is delivered to a listener. Key is set for keydown events.
type Event struct {
	Kind EventKind
	Key  KeyEvent
}

// Listener handles an event and returns true to cancel its default action.
type Listener func(Event) bool

// Surface is the host document the shield protects.
type Surface interface {
	// Listen registers fn and returns a function that unregisters it.
	Listen(kind EventKind, fn Listener) (remove func())
	// LockSelection toggles the page-wide text selection lock.
	LockSelection(locked bool)
	// Hidden reports whether the page is currently hidden.
	Hidden() bool
	// Blank covers the page with an opaque overlay for d.
	Blank(d time.Duration)
}

// Timer is a pending callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The zero Shield uses the real clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Shield is a Protector that installs the policy handlers into a Surface while
// at least one lease is held.
type Shield struct {
	surface Surface
	policy  Policy
	clock   Clock

	mu      sync.Mutex
	holders int
	removes []func()
	pending map[Timer]struct{}
}

// NewShield creates a Shield. A nil clock means the real clock.
func NewShield(surface Surface, policy Policy, clock Clock) *Shield {
	if clock == nil {
		clock = realClock{}
	}
	return &Shield{
		surface: surface,
		policy:  policy.normalize(),
		clock:   clock,
		pending: make(map[Timer]struct{}),
	}
}

type lease struct {
	once   sync.Once
	shield *Shield
}

func (l *lease) Release() {
	l.once.Do(l.shield.release)
}

// Acquire installs the protections if this is the first lease.
func (s *Shield) Acquire() Lease {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.holders++
	if s.holders == 1 {
		s.install()
	}
	return &lease{shield: s}
}

// active reports whether any lease is held.
func (s *Shield) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holders > 0
}

func (s *Shield) install() {
	if s.policy.BlockContextMenu {
		s.removes = append(s.removes, s.surface.Listen(EventContextMenu, func(Event) bool { return true }))
	}
	s.removes = append(s.removes,
		s.surface.Listen(EventKeyDown, func(ev Event) bool { return s.policy.Keys.Blocks(ev.Key) }),
		s.surface.Listen(EventVisibility, s.onVisibility),
	)
	if s.policy.LockSelection {
		s.surface.LockSelection(true)
	}
}

func (s *Shield) release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.holders--
	if s.holders > 0 {
		return
	}
	s.holders = 0
	for _, remove := range s.removes {
		remove()
	}
	s.removes = nil
	for t := range s.pending {
		t.Stop()
	}
	s.pending = make(map[Timer]struct{})
	if s.policy.LockSelection {
		s.surface.LockSelection(false)
	}
}

// onVisibility blanks the page briefly when it comes back shortly after
// being hidden, which is what screenshot tools tend to do.
func (s *Shield) onVisibility(Event) bool {
	if !s.surface.Hidden() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var t Timer
	t = s.clock.AfterFunc(s.policy.BlankDelay, func() {
		s.mu.Lock()
		_, live := s.pending[t]
		delete(s.pending, t)
		leased := s.holders > 0
		s.mu.Unlock()

		if live && leased && !s.surface.Hidden() {
			s.surface.Blank(s.policy.BlankFor)
		}
	})
	s.pending[t] = struct{}{}
	return false
}
