package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/vlist/internal/columns"
	"github.com/rshade/vlist/internal/record"
)

// PlainOptions configures RenderPlain.
type PlainOptions struct {
	Columns    []columns.Column
	Width      int
	LayoutMode columns.LayoutMode
	HeaderCase string
	// SortField marks the header of the column the records are sorted by. When
	// empty, records are sorted by the column flagged as sorted, if any.
	SortField      string
	SortDescending bool
	Logger         zerolog.Logger
}

// RenderPlain writes the header and every record as unstyled lines fitted to
// opts.Width. It is used when stdout is not a terminal.
func RenderPlain(w io.Writer, records []record.Record, opts PlainOptions) error {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}

	layout := columns.NewLayout(columns.TerminalMetrics(), opts.Logger)
	var first columns.FieldLister
	if len(records) > 0 {
		first = records[0]
	}
	if opts.SortField == "" {
		opts.SortField, opts.SortDescending = InitialSort(opts.Columns, first)
		if opts.SortField != "" {
			records = record.Sort(records, opts.SortField, opts.SortDescending)
		}
	}
	layout.Update(columns.Input{
		Columns:       opts.Columns,
		Width:         opts.Width,
		WidthKnown:    true,
		SelectionMode: columns.SelectionNone,
		LayoutMode:    opts.LayoutMode,
		First:         first,
	}, true)

	m := layout.Metrics()
	header := Header{
		Columns:        layout.Columns(),
		LayoutMode:     opts.LayoutMode,
		SelectionMode:  columns.SelectionNone,
		Padding:        m.ColumnPadding,
		Width:          opts.Width,
		FocusedColumn:  -1,
		SortKey:        opts.SortField,
		SortDescending: opts.SortDescending,
		Caser:          NewHeaderCaser(opts.HeaderCase),
		Plain:          true,
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(header.View(), " ")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := RowRenderer{
		Columns:       layout.Columns(),
		SelectionMode: columns.SelectionNone,
		Padding:       m.ColumnPadding,
		Plain:         true,
	}
	if opts.LayoutMode == columns.LayoutFixedColumns {
		row.Width = opts.Width
	}
	for _, rec := range records {
		if _, err := fmt.Fprintln(w, strings.TrimRight(row.Render(rec, false, false), " ")); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return nil
}
