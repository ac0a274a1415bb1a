package config

import (
	"fmt"
	"strings"
)

// ValidationError collects every failed check.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks the configuration. All checks run before returning.
func (c *Config) Validate() error {
	var errs []string

	if c.List.ItemsPerPage <= 0 {
		errs = append(errs, "list.items_per_page must be positive")
	}
	if c.List.EstimatedItemHeight <= 0 {
		errs = append(errs, "list.estimated_item_height must be positive")
	}
	if c.List.Overscan < 0 {
		errs = append(errs, "list.overscan must not be negative")
	}
	if strings.TrimSpace(c.List.KeyField) == "" {
		errs = append(errs, "list.key_field must not be empty")
	}

	if _, err := c.LayoutMode(); err != nil {
		errs = append(errs, fmt.Sprintf("table.layout_mode: %v", err))
	}
	if _, err := c.SelectionMode(); err != nil {
		errs = append(errs, fmt.Sprintf("table.selection_mode: %v", err))
	}
	switch c.Table.HeaderCase {
	case "", HeaderCaseTitle, HeaderCaseUpper, HeaderCaseNone:
	default:
		errs = append(errs, fmt.Sprintf("table.header_case %q must be %q, %q or %q",
			c.Table.HeaderCase, HeaderCaseTitle, HeaderCaseUpper, HeaderCaseNone))
	}

	seen := make(map[string]bool, len(c.Table.Columns))
	for i, col := range c.Table.Columns {
		if col.Key == "" {
			errs = append(errs, fmt.Sprintf("table.columns[%d].key must not be empty", i))
			continue
		}
		if seen[col.Key] {
			errs = append(errs, fmt.Sprintf("table.columns[%d].key %q is duplicated", i, col.Key))
		}
		seen[col.Key] = true
		if col.MinWidth < 0 || col.MaxWidth < 0 {
			errs = append(errs, fmt.Sprintf("table.columns[%d] widths must not be negative", i))
		}
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("logging.format %q must be \"console\" or \"json\"", c.Logging.Format))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
