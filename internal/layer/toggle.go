package layer

import (
	"sync"

	"github.com/joeblew999/colegis/internal/mapview"
)

// Toggle owns the visibility of one overlay on one map. Showing attaches the
// overlay layer and every label; hiding detaches all of them.
type Toggle struct {
	overlay *Overlay
	target  *mapview.Map
	noun    string

	mu      sync.Mutex
	visible bool
}

// NewToggle creates a hidden toggle. noun names the overlay in the button
// label, e.g. "Counties".
func NewToggle(o *Overlay, target *mapview.Map, noun string) *Toggle {
	return &Toggle{overlay: o, target: target, noun: noun}
}

// ID returns the overlay layer ID.
func (t *Toggle) ID() string {
	return t.overlay.Layer.ID
}

// Show attaches the overlay and its labels.
func (t *Toggle) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.showLocked()
}

// Hide detaches the overlay and its labels.
func (t *Toggle) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hideLocked()
}

// Toggle flips visibility and returns the new state.
func (t *Toggle) Toggle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.visible {
		t.hideLocked()
	} else {
		t.showLocked()
	}
	return t.visible
}

// IsVisible reports whether the overlay is attached.
func (t *Toggle) IsVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// Label is the control text: "Show <noun>" while hidden, "Hide <noun>"
// while visible.
func (t *Toggle) Label() string {
	if t.IsVisible() {
		return "Hide " + t.noun
	}
	return "Show " + t.noun
}

func (t *Toggle) showLocked() {
	t.target.Attach(t.overlay.Layer, t.overlay.Labels...)
	t.visible = true
}

func (t *Toggle) hideLocked() {
	t.target.Detach(t.overlay.Layer.ID, t.overlay.MarkerIDs()...)
	t.visible = false
}
