package columns

import "math"

// Options are the inputs of one layout pass besides the columns themselves.
type Options struct {
	Width         int
	SelectionMode SelectionMode
	LayoutMode    LayoutMode
	Metrics       Metrics
}

// Adjust computes the columns that fit in opts.Width and their widths. The
// result keeps input order minus dropped collapsable columns; columns and
// overrides are not modified.
func Adjust(columns []Column, overrides map[string]Override, opts Options) []Column {
	m := opts.Metrics
	available := opts.Width - RowCheckWidth(opts.SelectionMode, m)
	if opts.LayoutMode == LayoutFixedColumns {
		available = math.MaxInt
	}

	adjusted := make([]Column, 0, len(columns))
	total := 0

	// Pass 1: minimum widths, dropping collapsable columns that do not fit.
	for _, c := range columns {
		if o, ok := overrides[c.Key]; ok {
			c = o.Apply(c)
		}
		c = resolveBounds(c, m)

		padding := 0
		if len(adjusted) > 0 {
			padding = m.ColumnPadding
		}

		if !c.IsCollapsable || total+padding+c.MinWidth <= available {
			c.CalculatedWidth = c.MinWidth
			total += padding + c.MinWidth
			adjusted = append(adjusted, c)
		}
	}

	// Pass 2: grow left to right until the space is used.
	for i := 0; i < len(adjusted) && total < available; i++ {
		c := &adjusted[i]
		spaceLeft := available - total
		increment := min(spaceLeft, c.MaxWidth-c.MinWidth)

		if opts.LayoutMode == LayoutJustified && i == len(adjusted)-1 {
			increment = spaceLeft
		}

		c.CalculatedWidth += increment
		total += increment
	}

	return adjusted
}

// resolveBounds fills in missing bounds: minimum falls back to the maximum, then
// to the default; maximum falls back to the minimum and never drops below it.
func resolveBounds(c Column, m Metrics) Column {
	minWidth := c.MinWidth
	if minWidth <= 0 {
		minWidth = c.MaxWidth
	}
	if minWidth <= 0 {
		minWidth = m.DefaultMinWidth
	}

	maxWidth := c.MaxWidth
	if maxWidth < minWidth {
		maxWidth = minWidth
	}

	c.MinWidth = minWidth
	c.MaxWidth = maxWidth
	return c
}

// TotalWidth returns the width a row of the given columns occupies, including
// the checkbox area and padding between columns.
func TotalWidth(columns []Column, mode SelectionMode, m Metrics) int {
	total := RowCheckWidth(mode, m)
	for i, c := range columns {
		if i > 0 {
			total += m.ColumnPadding
		}
		total += c.CalculatedWidth
	}
	return total
}
