package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/vlist/internal/columns"
	"github.com/rshade/vlist/internal/logging"
	"github.com/rshade/vlist/internal/record"
	"github.com/rshade/vlist/internal/tui"
)

type browseFlags struct {
	recordFlags

	itemsPerPage int
	sort         string
	plain        bool
	width        int
}

// NewBrowseCmd creates the browse command. On a terminal it runs the
// interactive table; otherwise, or with --plain, it prints the table once.
func NewBrowseCmd() *cobra.Command {
	var flags browseFlags

	cmd := &cobra.Command{
		Use:   "browse FILE...",
		Short: "Browse records in the interactive table",
		Long: `Loads JSON arrays, YAML sequences or NDJSON streams and shows them in a
windowed table. Only the rows near the screen are rendered, so large files stay
responsive. Use "-" to read standard input.

Keys: j/k move, pgup/pgdown page, g/G jump, space select, a select all,
tab pick a column, </> resize it, r reset widths, s sort, / filter,
y copy the focused row, q quit. Selected keys are printed on exit.`,
		Example: `  vlist browse orders.json
  vlist browse --sort total:desc --selection single orders.json
  cat events.ndjson | vlist browse --format ndjson -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, args, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&flags.itemsPerPage, "items-per-page", 0, "items per materialized page (default from config)")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "initial sort as field[:asc|desc]")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "print the table once instead of running the interactive view")
	cmd.Flags().IntVar(&flags.width, "width", 0, "table width for plain output (default terminal width)")

	return cmd
}

func runBrowse(cmd *cobra.Command, paths []string, flags *browseFlags) error {
	ctx := cmd.Context()
	st := stateFrom(ctx)
	cfg := cloneConfig(st.cfg)

	flags.apply(cmd, cfg)
	if cmd.Flags().Changed("items-per-page") {
		cfg.List.ItemsPerPage = flags.itemsPerPage
	}
	layoutMode, selectionMode, err := tableModes(cfg)
	if err != nil {
		return err
	}

	var sortField string
	var descending bool
	if flags.sort != "" {
		field, order, parseErr := record.ParseSortExpression(flags.sort)
		if parseErr != nil {
			return fmt.Errorf("invalid --sort: %w", parseErr)
		}
		sortField, descending = field, order == record.SortOrderDesc
	}

	records, err := flags.loadRecords(ctx, paths, cfg.List.KeyField)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	stdout, _ := out.(*os.File)
	if tui.DetectOutputMode(flags.plain, stdout) == tui.OutputModePlain {
		if sortField != "" {
			records = record.Sort(records, sortField, descending)
		}
		width := flags.width
		if width <= 0 {
			width = tui.TerminalWidth(stdout, tui.DefaultWidth)
		}
		return tui.RenderPlain(out, records, tui.PlainOptions{
			Columns:        cfg.Table.Columns,
			Width:          width,
			LayoutMode:     layoutMode,
			HeaderCase:     cfg.Table.HeaderCase,
			SortField:      sortField,
			SortDescending: descending,
			Logger:         *logging.FromContext(ctx),
		})
	}

	return runInteractive(tuiContext(ctx, st), out, records, tui.DetailsOptions{
		Columns:             cfg.Table.Columns,
		LayoutMode:          layoutMode,
		SelectionMode:       selectionMode,
		ItemsPerPage:        cfg.List.ItemsPerPage,
		EstimatedItemHeight: cfg.List.EstimatedItemHeight,
		Overscan:            cfg.List.Overscan,
		HeaderCase:          cfg.Table.HeaderCase,
		SortField:           sortField,
		SortDescending:      descending,
	})
}

// tuiContext carries the file logger into the interactive view. Console logs
// would corrupt the alternate screen, so they are dropped.
func tuiContext(ctx context.Context, st *runState) context.Context {
	if st.log != nil && st.log.UsingFile {
		return st.log.Logger.WithContext(ctx)
	}
	nop := zerolog.Nop()
	return nop.WithContext(ctx)
}

func runInteractive(ctx context.Context, out io.Writer, records []record.Record, opts tui.DetailsOptions) error {
	m := tui.NewDetailsModel(ctx, records, opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}

	if opts.SelectionMode == columns.SelectionNone {
		return nil
	}
	for _, key := range m.SelectedKeys() {
		if _, err := fmt.Fprintln(out, key); err != nil {
			return fmt.Errorf("writing selection: %w", err)
		}
	}
	return nil
}

