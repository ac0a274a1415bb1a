package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
//
//nolint:gochecknoglobals // Style tokens are shared read-only values.
var (
	ColorAccent   = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	ColorSubtle   = lipgloss.AdaptiveColor{Light: "245", Dark: "241"}
	ColorSelected = lipgloss.AdaptiveColor{Light: "153", Dark: "24"}
	ColorFocused  = lipgloss.AdaptiveColor{Light: "254", Dark: "236"}
	ColorError    = lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
)

// Styles used by the details view.
//
//nolint:gochecknoglobals // Style tokens are shared read-only values.
var (
	TableHeaderStyle        = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	TableHeaderFocusedStyle = TableHeaderStyle.Underline(true)
	FocusedRowStyle         = lipgloss.NewStyle().Background(ColorFocused).Bold(true)
	SelectedRowStyle        = lipgloss.NewStyle().Background(ColorSelected)
	SubtleStyle             = lipgloss.NewStyle().Foreground(ColorSubtle)
	StatusStyle             = lipgloss.NewStyle().Foreground(ColorSubtle)
	ErrorStyle              = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	InfoStyle               = lipgloss.NewStyle().Foreground(ColorAccent)
)
