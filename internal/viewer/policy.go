package viewer

import (
	"strings"
	"time"
)

// KeyEvent is a keydown as seen by the host page.
type KeyEvent struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl,omitempty"`
	Meta  bool   `json:"meta,omitempty"`
	Alt   bool   `json:"alt,omitempty"`
	Shift bool   `json:"shift,omitempty"`
}

// KeyPolicy decides which key combinations are swallowed while a document
// is open. Letter keys are compared case-insensitively.
type KeyPolicy struct {
	// ModifierKeys are blocked when combined with ctrl, meta or alt.
	ModifierKeys []string `json:"modifierKeys"`
	// CtrlShiftKeys are blocked with ctrl+shift (developer tools).
	CtrlShiftKeys []string `json:"ctrlShiftKeys"`
	// CtrlKeys are blocked with ctrl alone (view source).
	CtrlKeys []string `json:"ctrlKeys"`
	// Keys are blocked with no modifier at all.
	Keys []string `json:"keys"`
}

// Blocks reports whether ev must be suppressed.
func (p KeyPolicy) Blocks(ev KeyEvent) bool {
	if contains(p.Keys, ev.Key) {
		return true
	}
	if ev.Ctrl && ev.Shift && contains(p.CtrlShiftKeys, ev.Key) {
		return true
	}
	if ev.Ctrl && contains(p.CtrlKeys, ev.Key) {
		return true
	}
	if (ev.Ctrl || ev.Meta || ev.Alt) && contains(p.ModifierKeys, ev.Key) {
		return true
	}
	return false
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// Policy is the full set of viewer protections. It is served to the browser
// so the page script and the Go model apply the same rules.
type Policy struct {
	Keys             KeyPolicy `json:"keys"`
	BlockContextMenu bool      `json:"blockContextMenu"`
	LockSelection    bool      `json:"lockSelection"`
	// BlankDelay is how long after the page is hidden the viewer checks
	// whether it is visible again.
	BlankDelay time.Duration `json:"-"`
	// BlankFor is how long the opaque overlay stays up.
	BlankFor     time.Duration `json:"-"`
	BlankDelayMS int64         `json:"blankDelayMs"`
	BlankForMS   int64         `json:"blankForMs"`
	OverlayColor string        `json:"overlayColor"`
	ErrorMessage string        `json:"errorMessage"`
}

// DefaultPolicy returns the protections used by the site.
func DefaultPolicy() Policy {
	p := Policy{
		Keys: KeyPolicy{
			ModifierKeys:  strings.Split("c a s p x v z y u r f h i j", " "),
			CtrlShiftKeys: []string{"I", "C", "J"},
			CtrlKeys:      []string{"U"},
			Keys:          []string{"F12", "PrintScreen"},
		},
		BlockContextMenu: true,
		LockSelection:    true,
		BlankDelay:       50 * time.Millisecond,
		BlankFor:         100 * time.Millisecond,
		OverlayColor:     "black",
		ErrorMessage:     "Failed to load document",
	}
	return p.normalize()
}

// normalize fills the millisecond fields from the durations.
func (p Policy) normalize() Policy {
	p.BlankDelayMS = p.BlankDelay.Milliseconds()
	p.BlankForMS = p.BlankFor.Milliseconds()
	return p
}
