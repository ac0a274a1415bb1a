package listview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rshade/vlist/internal/events"
	"github.com/rshade/vlist/internal/surface"
	"github.com/rshade/vlist/internal/window"
)

// defaultOverscan is the number of extra screens materialized above and below the viewport.
const defaultOverscan = 1

// maxRevealPasses bounds the scroll corrections made while measurements settle.
const maxRevealPasses = 3

// RenderFunc renders the item at absolute index. focused reports whether the
// item holds the list focus.
type RenderFunc[T any] func(item T, index int, focused bool) string

// Option configures a Model.
type Option func(*options)

type options struct {
	overscan int
	engine   []window.Option
	logger   zerolog.Logger
}

// WithOverscan sets how many screens are materialized beyond the viewport.
func WithOverscan(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.overscan = n
		}
	}
}

// WithEngineOptions passes options to the underlying window engine.
func WithEngineOptions(opts ...window.Option) Option {
	return func(o *options) {
		o.engine = append(o.engine, opts...)
	}
}

// WithLogger sets the logger for relayout diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Model is a virtualized list of T with a focused item. It is not a tea.Model
// by itself; the owning model forwards sizes, scrolls and focus moves.
type Model[T any] struct {
	engine   *window.Engine[T]
	viewport *surface.Viewport
	focus    *surface.Focus
	render   RenderFunc[T]
	overscan int

	// focused is the focused item index, -1 when the list is empty.
	focused int

	// rendered holds the output of the last render phase by page key.
	rendered map[string]string

	// renders counts row renderer calls, for diagnostics.
	renders int

	subs   events.Group
	logger zerolog.Logger
}

// New creates an empty list.
func New[T any](render RenderFunc[T], opts ...Option) *Model[T] {
	o := options{overscan: defaultOverscan, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger.With().Str("component", "listview").Logger()
	engineOpts := append([]window.Option{window.WithLogger(o.logger)}, o.engine...)

	m := &Model[T]{
		engine:   window.New[T](engineOpts...),
		viewport: surface.NewViewport(),
		focus:    surface.NewFocus(true),
		render:   render,
		overscan: o.overscan,
		focused:  -1,
		rendered: make(map[string]string),
		logger:   logger,
	}

	m.viewport.SetContentBound(func() int {
		return max(0, m.engine.TotalHeight()-m.viewport.Window().Height)
	})

	relayout := func(surface.Snapshot) { m.relayout() }
	m.subs.Add(m.viewport.OnScroll(relayout))
	m.subs.Add(m.viewport.OnResize(relayout))
	m.subs.Add(m.focus.OnChange(func(bool) { m.relayout() }))

	return m
}

// Close releases the list's subscriptions. Further scrolls and resizes no
// longer trigger a relayout.
func (m *Model[T]) Close() {
	m.subs.Dispose()
}

// SetItems replaces the items. The focus is kept on the same index when it is
// still valid and moved to the first item otherwise.
func (m *Model[T]) SetItems(items []T) {
	switch {
	case len(items) == 0:
		m.focused = -1
	case m.focused < 0 || m.focused >= len(items):
		m.focused = 0
	}
	m.engine.SetItems(items)
	m.viewport.ScrollTo(m.viewport.Window().Top)
	m.relayout()
}

// SetSize resizes the viewport.
func (m *Model[T]) SetSize(width, height int) {
	m.viewport.Resize(width, height)
}

// SetFocused sets whether the list holds input focus.
func (m *Model[T]) SetFocused(has bool) {
	m.focus.Set(has)
}

// Refresh re-renders the materialized pages without moving anything. Use it
// when render inputs such as selection or column widths changed.
func (m *Model[T]) Refresh() {
	m.relayout()
}

// relayout rebuilds pages for the visible rectangle, renders them and feeds the
// measured heights back. When measurement changed any page height the pages are
// rebuilt once more, reusing the blocks rendered in this pass.
func (m *Model[T]) relayout() {
	if !m.viewport.Snapshot().Measured {
		return
	}

	blocks := make(map[string]string, len(m.rendered))
	renders := 0
	pages := m.engine.Update(m.viewport.Visible(m.overscan))
	renders += m.renderPages(pages, blocks)
	settled := m.measure(pages, blocks)

	if !settled {
		pages = m.engine.Update(m.viewport.Visible(m.overscan))
		renders += m.renderPages(pages, blocks)
		m.measure(pages, blocks)
	}

	m.rendered = blocks
	m.renders += renders

	m.logger.Debug().
		Int("pages", len(pages)).
		Int("renders", renders).
		Bool("settled", settled).
		Int("total_height", m.engine.TotalHeight()).
		Msg("relayout")
}

// renderPages fills blocks for every materialized page not rendered yet and
// returns the number of row renders.
func (m *Model[T]) renderPages(pages []window.Page[T], blocks map[string]string) int {
	hasFocus := m.focus.HasFocus()
	renders := 0
	for _, p := range pages {
		if p.IsSpacer() {
			continue
		}
		if _, done := blocks[p.Key]; done {
			continue
		}
		rows := make([]string, len(p.Items))
		for i, item := range p.Items {
			index := p.StartIndex + i
			rows[i] = m.render(item, index, hasFocus && index == m.focused)
		}
		renders += len(rows)
		blocks[p.Key] = strings.Join(rows, "\n")
	}
	return renders
}

// measure records the rendered height of each page and reports whether every
// page already had that height.
func (m *Model[T]) measure(pages []window.Page[T], blocks map[string]string) bool {
	settled := true
	m.engine.MeasurePages(func(p window.Page[T]) (surface.Rect, bool) {
		block, ok := blocks[p.Key]
		if !ok {
			return surface.Rect{}, false
		}
		h := lipgloss.Height(block)
		if h != p.Height {
			settled = false
		}
		return surface.Rect{Height: h}, true
	})
	return settled
}

// View renders the lines inside the viewport window, padded to its height.
func (m *Model[T]) View() string {
	win := m.viewport.Window()
	if win.Height <= 0 {
		return ""
	}

	lines := make([]string, 0, win.Height)
	y := 0
	for _, p := range m.engine.Pages() {
		if y >= win.Bottom() {
			break
		}
		if p.IsSpacer() {
			y += p.Height
			continue
		}
		for _, line := range strings.Split(m.rendered[p.Key], "\n") {
			if y >= win.Top && y < win.Bottom() {
				lines = append(lines, line)
			}
			y++
		}
	}
	for len(lines) < win.Height {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// MoveFocus moves the focus by delta items and scrolls it into view.
func (m *Model[T]) MoveFocus(delta int) {
	if m.focused < 0 {
		return
	}
	m.SetFocusIndex(m.focused + delta)
}

// SetFocusIndex focuses the item at index, capped to valid bounds, and scrolls
// it into view.
func (m *Model[T]) SetFocusIndex(index int) {
	n := m.engine.ItemCount()
	if n == 0 {
		m.focused = -1
		return
	}
	index = max(0, min(index, n-1))
	if index == m.focused {
		return
	}
	m.focused = index
	if !m.reveal(index) {
		m.relayout()
	}
}

// reveal scrolls until the item at index is inside the window and reports
// whether the viewport moved. Each move relayouts through the scroll
// subscription, which may refine the page heights the next pass uses.
func (m *Model[T]) reveal(index int) bool {
	moved := false
	for range maxRevealPasses {
		target, ok := m.engine.ScrollToIndex(index, m.viewport.Window())
		if !ok {
			break
		}
		before := m.viewport.Window().Top
		m.viewport.ScrollTo(target.Top)
		if m.viewport.Window().Top == before {
			break
		}
		moved = true
	}
	return moved
}

// ScrollBy scrolls the viewport without moving the focus.
func (m *Model[T]) ScrollBy(delta int) {
	m.viewport.ScrollBy(delta)
}

// PageSize returns how many items roughly fit in the window.
func (m *Model[T]) PageSize() int {
	est := m.engine.EstimatedItemHeight()
	h := m.viewport.Window().Height
	if est <= 0 {
		return max(1, h)
	}
	return max(1, int(float64(h)/est))
}

// Focused returns the focused index, or -1 for an empty list.
func (m *Model[T]) Focused() int {
	return m.focused
}

// FocusedItem returns the focused item.
func (m *Model[T]) FocusedItem() (T, bool) {
	var zero T
	items := m.engine.Items()
	if m.focused < 0 || m.focused >= len(items) {
		return zero, false
	}
	return items[m.focused], true
}

// ItemCount returns the number of items.
func (m *Model[T]) ItemCount() int {
	return m.engine.ItemCount()
}

// Engine exposes the window engine.
func (m *Model[T]) Engine() *window.Engine[T] {
	return m.engine
}

// Viewport exposes the scroll surface.
func (m *Model[T]) Viewport() *surface.Viewport {
	return m.viewport
}

// Renders returns the number of row renders since creation.
func (m *Model[T]) Renders() int {
	return m.renders
}
