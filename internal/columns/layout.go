package columns

import (
	"maps"

	"github.com/rs/zerolog"
)

// Input is everything a Layout pass depends on.
type Input struct {
	// Columns are the declared column definitions. When empty, columns are
	// inferred from First.
	Columns []Column

	// Width is the viewport width; it is ignored unless WidthKnown is set.
	Width      int
	WidthKnown bool

	SelectionMode SelectionMode
	LayoutMode    LayoutMode

	// First is the first item of the sequence, used only for inference.
	First FieldLister
}

// Layout keeps the adjusted columns of one table between renders together with
// the user's resize overrides. It is owned by a single component.
type Layout struct {
	metrics   Metrics
	overrides map[string]Override

	last          Input
	computed      bool
	adjusted      []Column
	rowCheckWidth int

	logger zerolog.Logger
}

// NewLayout returns a layout that has not computed anything yet.
func NewLayout(m Metrics, logger zerolog.Logger) *Layout {
	return &Layout{
		metrics:   m,
		overrides: make(map[string]Override),
		logger:    logger.With().Str("component", "columns").Logger(),
	}
}

// Update recomputes the adjusted columns when forced or when the width, the
// selection mode, the layout mode or the column definitions (by reference)
// changed since the last pass. It defers while the width is unknown. It reports
// whether a recomputation happened; when it did not, Columns returns the
// previous slice unchanged.
func (l *Layout) Update(in Input, force bool) bool {
	if !in.WidthKnown {
		l.logger.Debug().Msg("width not measured yet, layout deferred")
		return false
	}

	if !force && l.computed &&
		in.Width == l.last.Width &&
		in.SelectionMode == l.last.SelectionMode &&
		in.LayoutMode == l.last.LayoutMode &&
		sameColumns(in.Columns, l.last.Columns) {
		return false
	}

	cols := in.Columns
	if len(cols) == 0 {
		cols = Infer(in.First, l.metrics)
	}

	l.adjusted = Adjust(cols, l.overrides, Options{
		Width:         in.Width,
		SelectionMode: in.SelectionMode,
		LayoutMode:    in.LayoutMode,
		Metrics:       l.metrics,
	})
	l.rowCheckWidth = RowCheckWidth(in.SelectionMode, l.metrics)
	l.last = in
	l.computed = true

	l.logger.Debug().
		Int("width", in.Width).
		Str("selection_mode", in.SelectionMode.String()).
		Str("layout_mode", in.LayoutMode.String()).
		Int("declared", len(cols)).
		Int("kept", len(l.adjusted)).
		Bool("forced", force).
		Msg("columns adjusted")

	return true
}

// Resize pins the column identified by key to width and forces a recomputation.
// The pinned column no longer collapses. Widths below 1 are raised to 1.
func (l *Layout) Resize(key string, width int) bool {
	if width < 1 {
		width = 1
	}
	l.overrides[key] = Pinned(width)
	return l.Update(l.last, true)
}

// ClearOverrides drops every resize override and forces a recomputation.
func (l *Layout) ClearOverrides() bool {
	clear(l.overrides)
	return l.Update(l.last, true)
}

// Columns returns the adjusted columns of the last pass.
func (l *Layout) Columns() []Column {
	return l.adjusted
}

// Column returns the adjusted column with the given key.
func (l *Layout) Column(key string) (Column, bool) {
	for _, c := range l.adjusted {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// RowCheckWidth returns the checkbox width of the last pass.
func (l *Layout) RowCheckWidth() int {
	return l.rowCheckWidth
}

// Metrics returns the layout constants.
func (l *Layout) Metrics() Metrics {
	return l.metrics
}

// Overrides returns a copy of the resize overrides.
func (l *Layout) Overrides() map[string]Override {
	return maps.Clone(l.overrides)
}

// sameColumns reports whether a and b are the same slice (same backing array and length).
func sameColumns(a, b []Column) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
