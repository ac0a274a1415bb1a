package tui

import (
	"github.com/rshade/vlist/internal/columns"
	"github.com/rshade/vlist/internal/record"
)

// RowRenderer turns a record into one table row for the current column layout.
type RowRenderer struct {
	Columns       []columns.Column
	SelectionMode columns.SelectionMode
	CheckWidth    int
	Padding       int
	Width         int
	Plain         bool
}

// Render renders rec. Focused and selected rows are highlighted unless Plain is set.
func (r RowRenderer) Render(rec record.Record, focused, selected bool) string {
	texts := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		texts[i] = rec.Format(sortField(c))
	}

	line := r.checkCell(selected) + joinCells(texts, r.Columns, r.Padding)
	line = padLine(line, r.Width)

	if r.Plain {
		return line
	}
	switch {
	case focused:
		return FocusedRowStyle.Render(line)
	case selected:
		return SelectedRowStyle.Render(line)
	default:
		return line
	}
}

func (r RowRenderer) checkCell(selected bool) string {
	if r.CheckWidth <= 0 {
		return ""
	}
	var mark string
	switch r.SelectionMode {
	case columns.SelectionMultiple:
		mark = "[ ]"
		if selected {
			mark = "[x]"
		}
	case columns.SelectionSingle:
		mark = "( )"
		if selected {
			mark = "(•)"
		}
	case columns.SelectionNone:
	}
	return fit(mark, r.CheckWidth, false)
}
