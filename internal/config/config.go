// Package config loads vlist settings from defaults, YAML or TOML files, a
// project overlay, and the environment.
package config

import (
	"github.com/rshade/vlist/internal/columns"
	"github.com/rshade/vlist/internal/record"
	"github.com/rshade/vlist/internal/window"
)

// Header casing styles.
const (
	HeaderCaseTitle = "title"
	HeaderCaseUpper = "upper"
	HeaderCaseNone  = "none"
)

// Config is the complete vlist configuration.
type Config struct {
	List    ListConfig    `yaml:"list"    toml:"list"    json:"list"`
	Table   TableConfig   `yaml:"table"   toml:"table"   json:"table"`
	Logging LoggingConfig `yaml:"logging" toml:"logging" json:"logging"`
}

// ListConfig tunes the windowed list.
type ListConfig struct {
	ItemsPerPage        int     `yaml:"items_per_page"        toml:"items_per_page"        json:"items_per_page"`
	EstimatedItemHeight float64 `yaml:"estimated_item_height" toml:"estimated_item_height" json:"estimated_item_height"`
	Overscan            int     `yaml:"overscan"              toml:"overscan"              json:"overscan"`
	KeyField            string  `yaml:"key_field"             toml:"key_field"             json:"key_field"`
}

// TableConfig tunes the column layout and header.
type TableConfig struct {
	LayoutMode    string           `yaml:"layout_mode"       toml:"layout_mode"       json:"layout_mode"`
	SelectionMode string           `yaml:"selection_mode"    toml:"selection_mode"    json:"selection_mode"`
	HeaderCase    string           `yaml:"header_case"       toml:"header_case"       json:"header_case"`
	Columns       []columns.Column `yaml:"columns,omitempty" toml:"columns,omitempty" json:"columns,omitempty"`
}

// LoggingConfig selects log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"          toml:"level"          json:"level"`
	Format string `yaml:"format"         toml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" toml:"file,omitempty" json:"file,omitempty"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		List: ListConfig{
			ItemsPerPage:        window.DefaultItemsPerPage,
			EstimatedItemHeight: 1,
			Overscan:            1,
			KeyField:            record.DefaultKeyField,
		},
		Table: TableConfig{
			LayoutMode:    columns.LayoutJustified.String(),
			SelectionMode: columns.SelectionMultiple.String(),
			HeaderCase:    HeaderCaseTitle,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LayoutMode parses Table.LayoutMode.
func (c *Config) LayoutMode() (columns.LayoutMode, error) {
	return columns.ParseLayoutMode(c.Table.LayoutMode)
}

// SelectionMode parses Table.SelectionMode.
func (c *Config) SelectionMode() (columns.SelectionMode, error) {
	return columns.ParseSelectionMode(c.Table.SelectionMode)
}
