package surface

import "github.com/rshade/vlist/internal/events"

// Focus tracks whether a component holds input focus.
type Focus struct {
	has     bool
	changed events.Emitter[bool]
}

// NewFocus returns a tracker with the given initial state.
func NewFocus(has bool) *Focus {
	return &Focus{has: has}
}

// HasFocus reports the current state.
func (f *Focus) HasFocus() bool {
	return f.has
}

// Set updates the state and notifies subscribers on change.
func (f *Focus) Set(has bool) {
	if f.has == has {
		return
	}
	f.has = has
	f.changed.Emit(has)
}

// OnChange subscribes to focus changes.
func (f *Focus) OnChange(fn func(bool)) events.Unsubscribe {
	return f.changed.Subscribe(fn)
}
