// Package surface exposes the display surface a list is rendered into as explicit
// capabilities: a Viewport with a typed size/scroll snapshot and a Focus tracker.
// Components receive them as values and subscribe to their change notifications
// instead of tapping global scroll or resize events.
package surface

import "github.com/rshade/vlist/internal/events"

// Snapshot is a read-only view of the viewport state.
type Snapshot struct {
	Width     int
	Height    int
	ScrollTop int

	// Measured is false until the first Resize; Width and Height are meaningless before that.
	Measured bool
}

// Rect is a vertical extent in content coordinates.
type Rect struct {
	Top    int
	Height int
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Top + r.Height
}

// Viewport tracks the size and scroll offset of a scrollable region.
type Viewport struct {
	snap     Snapshot
	scroll   events.Emitter[Snapshot]
	resize   events.Emitter[Snapshot]
	maxTopFn func() int
}

// NewViewport returns an unmeasured viewport.
func NewViewport() *Viewport {
	return &Viewport{}
}

// Snapshot returns the current state.
func (v *Viewport) Snapshot() Snapshot {
	return v.snap
}

// OnScroll subscribes to scroll offset changes.
func (v *Viewport) OnScroll(fn func(Snapshot)) events.Unsubscribe {
	return v.scroll.Subscribe(fn)
}

// OnResize subscribes to size changes.
func (v *Viewport) OnResize(fn func(Snapshot)) events.Unsubscribe {
	return v.resize.Subscribe(fn)
}

// SetContentBound installs a function reporting the largest valid scroll offset.
// Without one the scroll offset is only clamped at zero.
func (v *Viewport) SetContentBound(fn func() int) {
	v.maxTopFn = fn
}

// Resize records a new size and notifies resize subscribers when it changed.
func (v *Viewport) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if v.snap.Measured && v.snap.Width == width && v.snap.Height == height {
		return
	}
	v.snap.Width = width
	v.snap.Height = height
	v.snap.Measured = true
	v.snap.ScrollTop = v.clamp(v.snap.ScrollTop)
	v.resize.Emit(v.snap)
}

// ScrollTo moves the scroll offset and notifies scroll subscribers when it moved.
func (v *Viewport) ScrollTo(top int) {
	top = v.clamp(top)
	if top == v.snap.ScrollTop {
		return
	}
	v.snap.ScrollTop = top
	v.scroll.Emit(v.snap)
}

// ScrollBy moves the scroll offset by delta lines.
func (v *Viewport) ScrollBy(delta int) {
	v.ScrollTo(v.snap.ScrollTop + delta)
}

// Window returns the rectangle currently on screen.
func (v *Viewport) Window() Rect {
	return Rect{Top: v.snap.ScrollTop, Height: v.snap.Height}
}

// Visible returns the rectangle whose content should be materialized: the window
// extended by overscan screens above and below.
func (v *Viewport) Visible(overscan int) Rect {
	if overscan < 0 {
		overscan = 0
	}
	h := v.snap.Height
	return Rect{
		Top:    v.snap.ScrollTop - overscan*h,
		Height: h * (1 + 2*overscan),
	}
}

func (v *Viewport) clamp(top int) int {
	if v.maxTopFn != nil {
		if maxTop := v.maxTopFn(); top > maxTop {
			top = maxTop
		}
	}
	if top < 0 {
		top = 0
	}
	return top
}
