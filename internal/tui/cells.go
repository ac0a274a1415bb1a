package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rshade/vlist/internal/columns"
)

// ellipsis marks text cut by a clipped column.
const ellipsis = "…"

// flattener replaces characters that would break a one-line cell.
//
//nolint:gochecknoglobals // Immutable replacer.
var flattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// fit cuts or pads text to exactly width cells.
func fit(text string, width int, clipped bool) string {
	if width <= 0 {
		return ""
	}
	tail := ""
	if clipped {
		tail = ellipsis
	}
	out := ansi.Truncate(flattener.Replace(text), width, tail)
	if pad := width - ansi.StringWidth(out); pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return out
}

// joinCells lays texts out in the adjusted columns separated by padding.
func joinCells(texts []string, cols []columns.Column, padding int) string {
	var b strings.Builder
	gap := strings.Repeat(" ", max(0, padding))
	for i, c := range cols {
		if i > 0 {
			b.WriteString(gap)
		}
		text := ""
		if i < len(texts) {
			text = texts[i]
		}
		b.WriteString(fit(text, c.CalculatedWidth, c.IsClipped))
	}
	return b.String()
}

// padLine cuts or pads a full line to width cells. A non-positive width leaves it unchanged.
func padLine(line string, width int) string {
	if width <= 0 {
		return line
	}
	return fit(line, width, false)
}

// NewHeaderCaser returns the function applied to column names in the header.
// Underscores and dashes become spaces before casing.
func NewHeaderCaser(style string) func(string) string {
	humanize := strings.NewReplacer("_", " ", "-", " ")
	switch style {
	case "none":
		return func(s string) string { return s }
	case "upper":
		c := cases.Upper(language.Und)
		return func(s string) string { return c.String(humanize.Replace(s)) }
	default:
		c := cases.Title(language.English, cases.NoLower)
		return func(s string) string { return c.String(humanize.Replace(s)) }
	}
}
