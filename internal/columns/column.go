// Package columns allocates widths to table columns.
//
// Adjust runs a two-pass allocation: the first pass places every column at its
// minimum width and drops collapsable columns that do not fit, the second pass
// grows the kept columns toward their maximum, left to right, until the space is
// used. In justified mode the last kept column absorbs whatever is left. Layout
// wraps Adjust with the state a table keeps between renders: the user's resize
// overrides and a gate that skips recomputation when nothing relevant changed.
package columns

import (
	"errors"
	"fmt"
	"strings"
)

// SelectionMode controls whether rows reserve space for a selection checkbox.
type SelectionMode int

// Selection modes.
const (
	SelectionMultiple SelectionMode = iota
	SelectionSingle
	SelectionNone
)

// LayoutMode controls how available width is distributed.
type LayoutMode int

// Layout modes.
const (
	// LayoutJustified fits columns to the available width and stretches the last one.
	LayoutJustified LayoutMode = iota
	// LayoutFixedColumns ignores the available width; columns keep their declared widths.
	LayoutFixedColumns
)

// ErrUnknownMode is returned when a mode string cannot be parsed.
var ErrUnknownMode = errors.New("unknown mode")

// String returns the configuration name of the mode.
func (m SelectionMode) String() string {
	switch m {
	case SelectionNone:
		return "none"
	case SelectionSingle:
		return "single"
	case SelectionMultiple:
		return "multiple"
	default:
		return fmt.Sprintf("SelectionMode(%d)", int(m))
	}
}

// ParseSelectionMode parses none, single or multiple. The empty string yields the default.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "multiple", "multi":
		return SelectionMultiple, nil
	case "single":
		return SelectionSingle, nil
	case "none":
		return SelectionNone, nil
	default:
		return SelectionMultiple, fmt.Errorf("selection mode %q: %w", s, ErrUnknownMode)
	}
}

// String returns the configuration name of the mode.
func (m LayoutMode) String() string {
	switch m {
	case LayoutJustified:
		return "justified"
	case LayoutFixedColumns:
		return "fixed"
	default:
		return fmt.Sprintf("LayoutMode(%d)", int(m))
	}
}

// ParseLayoutMode parses fixed or justified (alias adaptive). The empty string yields the default.
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "justified", "adaptive":
		return LayoutJustified, nil
	case "fixed", "fixedcolumns", "fixed-columns":
		return LayoutFixedColumns, nil
	default:
		return LayoutJustified, fmt.Errorf("layout mode %q: %w", s, ErrUnknownMode)
	}
}

// Column describes one table field. CalculatedWidth is output of the layout and
// is ignored on input.
type Column struct {
	Key       string `json:"key" yaml:"key" toml:"key"`
	Name      string `json:"name" yaml:"name" toml:"name"`
	FieldName string `json:"field_name" yaml:"field_name" toml:"field_name"`

	MinWidth int `json:"min_width,omitempty" yaml:"min_width,omitempty" toml:"min_width,omitempty"`
	MaxWidth int `json:"max_width,omitempty" yaml:"max_width,omitempty" toml:"max_width,omitempty"`

	IsCollapsable      bool `json:"collapsable" yaml:"collapsable" toml:"collapsable"`
	IsClipped          bool `json:"clipped" yaml:"clipped" toml:"clipped"`
	IsSortable         bool `json:"sortable" yaml:"sortable" toml:"sortable"`
	IsSorted           bool `json:"sorted" yaml:"sorted" toml:"sorted"`
	IsSortedDescending bool `json:"sorted_descending" yaml:"sorted_descending" toml:"sorted_descending"`
	IsFilterable       bool `json:"filterable" yaml:"filterable" toml:"filterable"`

	CalculatedWidth int `json:"calculated_width" yaml:"calculated_width" toml:"calculated_width"`
}

// Override is a partial patch merged over a column before layout. Nil fields
// leave the column value untouched.
type Override struct {
	MinWidth      *int
	MaxWidth      *int
	IsCollapsable *bool
}

// Pinned returns the override produced by a manual resize to width.
func Pinned(width int) Override {
	collapsable := false
	return Override{MinWidth: &width, MaxWidth: &width, IsCollapsable: &collapsable}
}

// Apply returns c with the override merged in.
func (o Override) Apply(c Column) Column {
	if o.MinWidth != nil {
		c.MinWidth = *o.MinWidth
	}
	if o.MaxWidth != nil {
		c.MaxWidth = *o.MaxWidth
	}
	if o.IsCollapsable != nil {
		c.IsCollapsable = *o.IsCollapsable
	}
	return c
}

// Metrics holds the width constants of the layout, in whatever unit the renderer uses.
type Metrics struct {
	// CheckboxWidth is reserved per row when selection is enabled.
	CheckboxWidth int
	// ColumnPadding separates adjacent columns.
	ColumnPadding int
	// DefaultMinWidth is used for columns that declare neither minimum nor maximum.
	DefaultMinWidth int
	// InferredMinWidth and InferredMaxWidth bound columns inferred from items.
	InferredMinWidth int
	InferredMaxWidth int
}

// DefaultMetrics returns the reference constants, in pixels.
func DefaultMetrics() Metrics {
	return Metrics{
		CheckboxWidth:    40, //nolint:mnd // Reference checkbox width.
		ColumnPadding:    16, //nolint:mnd // Reference inter-column padding.
		DefaultMinWidth:  150, //nolint:mnd // Reference default column minimum.
		InferredMinWidth: 220, //nolint:mnd // Reference inferred minimum.
		InferredMaxWidth: 300, //nolint:mnd // Reference inferred maximum.
	}
}

// TerminalMetrics returns constants in terminal cells.
func TerminalMetrics() Metrics {
	return Metrics{
		CheckboxWidth:    4,  //nolint:mnd // "[x] "
		ColumnPadding:    2,  //nolint:mnd // Two spaces between cells.
		DefaultMinWidth:  15, //nolint:mnd // Default column minimum in cells.
		InferredMinWidth: 22, //nolint:mnd // Inferred minimum in cells.
		InferredMaxWidth: 30, //nolint:mnd // Inferred maximum in cells.
	}
}

// RowCheckWidth returns the width reserved for the selection checkbox.
func RowCheckWidth(mode SelectionMode, m Metrics) int {
	if mode == SelectionNone {
		return 0
	}
	return m.CheckboxWidth
}
