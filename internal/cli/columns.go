package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/vlist/internal/columns"
	"github.com/rshade/vlist/internal/logging"
	"github.com/rshade/vlist/internal/tui"
)

// Output formats of the columns command.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

const tabPadding = 2

type columnsFlags struct {
	recordFlags

	width  int
	output string
}

// columnsReport is the machine-readable result of one layout pass.
type columnsReport struct {
	Width         int              `json:"width" yaml:"width"`
	LayoutMode    string           `json:"layout_mode" yaml:"layout_mode"`
	SelectionMode string           `json:"selection_mode" yaml:"selection_mode"`
	RowCheckWidth int              `json:"row_check_width" yaml:"row_check_width"`
	TotalWidth    int              `json:"total_width" yaml:"total_width"`
	Columns       []columns.Column `json:"columns" yaml:"columns"`
}

// NewColumnsCmd creates the columns command, which prints the adjusted column
// layout the table would use at a given width.
func NewColumnsCmd() *cobra.Command {
	var flags columnsFlags

	cmd := &cobra.Command{
		Use:   "columns FILE...",
		Short: "Show the column layout for a width",
		Long: `Runs one column layout pass over the configured or inferred columns and
prints the result: which columns survive, and the width each one gets.`,
		Example: `  vlist columns --width 80 users.json
  vlist columns --width 40 --layout fixed --output json users.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(cmd, args, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&flags.width, "width", 0, "viewport width in cells (default terminal width)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", outputTable, "output format: table, json or yaml")

	return cmd
}

func runColumns(cmd *cobra.Command, paths []string, flags *columnsFlags) error {
	ctx := cmd.Context()
	cfg := cloneConfig(stateFrom(ctx).cfg)

	flags.apply(cmd, cfg)
	layoutMode, selectionMode, err := tableModes(cfg)
	if err != nil {
		return err
	}

	output := strings.ToLower(flags.output)
	switch output {
	case outputTable, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unsupported output format: %s", flags.output)
	}

	records, err := flags.loadRecords(ctx, paths, cfg.List.KeyField)
	if err != nil {
		return err
	}

	width := flags.width
	if width <= 0 {
		stdout, _ := cmd.OutOrStdout().(*os.File)
		width = tui.TerminalWidth(stdout, tui.DefaultWidth)
	}

	layout := columns.NewLayout(columns.TerminalMetrics(), *logging.FromContext(ctx))
	in := columns.Input{
		Columns:       cfg.Table.Columns,
		Width:         width,
		WidthKnown:    true,
		SelectionMode: selectionMode,
		LayoutMode:    layoutMode,
	}
	if len(records) > 0 {
		in.First = records[0]
	}
	layout.Update(in, true)

	report := columnsReport{
		Width:         width,
		LayoutMode:    layoutMode.String(),
		SelectionMode: selectionMode.String(),
		RowCheckWidth: layout.RowCheckWidth(),
		TotalWidth:    columns.TotalWidth(layout.Columns(), selectionMode, layout.Metrics()),
		Columns:       layout.Columns(),
	}
	if report.Columns == nil {
		report.Columns = []columns.Column{}
	}

	out := cmd.OutOrStdout()
	switch output {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case outputYAML:
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(report)
	default:
		return renderColumnsTable(out, report)
	}
}

func renderColumnsTable(out io.Writer, report columnsReport) error {
	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(w, "Key\tName\tMin\tMax\tWidth\tCollapsable\tClipped")
	fmt.Fprintln(w, "---\t----\t---\t---\t-----\t-----------\t-------")
	for _, c := range report.Columns {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%t\t%t\n",
			c.Key, c.Name, c.MinWidth, c.MaxWidth, c.CalculatedWidth, c.IsCollapsable, c.IsClipped)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	_, err := fmt.Fprintf(out, "\n%d of %d cells used (%s, selection %s)\n",
		report.TotalWidth, report.Width, report.LayoutMode, report.SelectionMode)
	return err
}
