package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/vlist/internal/columns"
)

// Sort indicators appended to header titles.
const (
	sortAscIndicator  = " ↑"
	sortDescIndicator = " ↓"
)

// Header renders the column titles above the list and turns width changes
// into resize callbacks.
type Header struct {
	// Columns is the adjusted column sequence of the current layout pass.
	Columns       []columns.Column
	LayoutMode    columns.LayoutMode
	SelectionMode columns.SelectionMode
	AllSelected   bool

	CheckWidth int
	Padding    int
	// Width is the viewport width; fixed layouts may exceed it and are cut.
	Width int

	// FocusedColumn is the index of the column receiving resize and sort keys, or -1.
	FocusedColumn int

	// SortKey overrides the columns' own sort flags when non-empty.
	SortKey        string
	SortDescending bool

	Caser func(string) string

	// OnResize is invoked with the column and its requested width.
	OnResize func(col columns.Column, width int)

	// Plain disables styling.
	Plain bool
}

// View renders the header line.
func (h Header) View() string {
	var b strings.Builder
	b.WriteString(h.checkCell())

	titles := make([]string, len(h.Columns))
	for i, c := range h.Columns {
		titles[i] = h.title(c)
	}

	gap := strings.Repeat(" ", max(0, h.Padding))
	for i, c := range h.Columns {
		if i > 0 {
			b.WriteString(gap)
		}
		cell := fit(titles[i], c.CalculatedWidth, true)
		if !h.Plain {
			style := TableHeaderStyle
			if i == h.FocusedColumn {
				style = TableHeaderFocusedStyle
			}
			cell = style.Render(cell)
		}
		b.WriteString(cell)
	}

	line := b.String()
	if h.LayoutMode == columns.LayoutFixedColumns && h.Width > 0 && lipgloss.Width(line) > h.Width {
		line = fit(line, h.Width, true)
	}
	return line
}

func (h Header) checkCell() string {
	if h.CheckWidth <= 0 {
		return ""
	}
	mark := ""
	if h.SelectionMode == columns.SelectionMultiple {
		mark = "[ ]"
		if h.AllSelected {
			mark = "[x]"
		}
	}
	return fit(mark, h.CheckWidth, false)
}

func (h Header) title(c columns.Column) string {
	name := c.Name
	if name == "" {
		name = c.Key
	}
	if h.Caser != nil {
		name = h.Caser(name)
	}

	sorted, desc := c.IsSorted, c.IsSortedDescending
	if h.SortKey != "" {
		sorted = sortField(c) == h.SortKey
		desc = h.SortDescending
	}
	switch {
	case sorted && desc:
		name += sortDescIndicator
	case sorted:
		name += sortAscIndicator
	}
	return name
}

// ResizeFocused asks for the focused column to change width by delta. It
// reports whether a column was focused.
func (h Header) ResizeFocused(delta int) bool {
	if h.FocusedColumn < 0 || h.FocusedColumn >= len(h.Columns) || h.OnResize == nil {
		return false
	}
	c := h.Columns[h.FocusedColumn]
	h.OnResize(c, c.CalculatedWidth+delta)
	return true
}

// sortField returns the record field a column sorts by.
// InitialSort returns the field and direction of the first column flagged as
// sorted. When no columns are declared the columns inferred from first are used.
func InitialSort(declared []columns.Column, first columns.FieldLister) (string, bool) {
	cols := declared
	if len(cols) == 0 {
		cols = columns.Infer(first, columns.TerminalMetrics())
	}
	for _, c := range cols {
		if c.IsSorted {
			return sortField(c), c.IsSortedDescending
		}
	}
	return "", false
}

func sortField(c columns.Column) string {
	if c.FieldName != "" {
		return c.FieldName
	}
	return c.Key
}
