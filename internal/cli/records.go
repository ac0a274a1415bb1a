package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/vlist/internal/columns"
	"github.com/rshade/vlist/internal/config"
	"github.com/rshade/vlist/internal/record"
)

// recordFlags are the input and table flags shared by browse and columns.
type recordFlags struct {
	format    string
	keyField  string
	layout    string
	selection string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", "input format: json, yaml or ndjson (default from file extension)")
	cmd.Flags().StringVar(&f.keyField, "key-field", "", "field holding the record key (default from config)")
	cmd.Flags().StringVar(&f.layout, "layout", "", "column layout: justified or fixed")
	cmd.Flags().StringVar(&f.selection, "selection", "", "selection mode: none, single or multiple")
}

// apply overrides cfg with the flags that were set on cmd.
func (f *recordFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("key-field") {
		cfg.List.KeyField = f.keyField
	}
	if cmd.Flags().Changed("layout") {
		cfg.Table.LayoutMode = f.layout
	}
	if cmd.Flags().Changed("selection") {
		cfg.Table.SelectionMode = f.selection
	}
}

// tableModes validates cfg after flag overrides and resolves its table modes.
func tableModes(cfg *config.Config) (columns.LayoutMode, columns.SelectionMode, error) {
	if err := cfg.Validate(); err != nil {
		return columns.LayoutJustified, columns.SelectionNone, err
	}
	layoutMode, _ := cfg.LayoutMode()
	selectionMode, _ := cfg.SelectionMode()
	return layoutMode, selectionMode, nil
}

// loadRecords reads every path in argument order.
func (f *recordFlags) loadRecords(ctx context.Context, paths []string, keyField string) ([]record.Record, error) {
	format, err := record.ParseFormat(f.format)
	if err != nil {
		return nil, fmt.Errorf("invalid --format: %w", err)
	}
	records, err := record.LoadFiles(ctx, paths, format, keyField)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("records", len(records)).Int("files", len(paths)).Msg("records loaded")
	return records, nil
}

// cloneConfig copies cfg so flag overrides stay local to one command run.
func cloneConfig(cfg *config.Config) *config.Config {
	c := *cfg
	c.Table.Columns = append([]columns.Column(nil), cfg.Table.Columns...)
	return &c
}
