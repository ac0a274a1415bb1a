package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rshade/vlist/internal/columns"
	"github.com/rshade/vlist/internal/events"
	"github.com/rshade/vlist/internal/logging"
	"github.com/rshade/vlist/internal/record"
	"github.com/rshade/vlist/internal/selection"
	listview "github.com/rshade/vlist/internal/tui/list"
	"github.com/rshade/vlist/internal/window"
)

// chromeLines is the number of lines used by the header and the status bar.
const chromeLines = 2

// wheelStep is the number of lines scrolled per mouse wheel notch.
const wheelStep = 3

// DetailsOptions configures a DetailsModel.
type DetailsOptions struct {
	// Columns are the declared columns. When empty they are inferred from the first record.
	Columns       []columns.Column
	LayoutMode    columns.LayoutMode
	SelectionMode columns.SelectionMode

	ItemsPerPage        int
	EstimatedItemHeight float64
	Overscan            int

	HeaderCase string

	// SortField and SortDescending set the initial order.
	SortField      string
	SortDescending bool

	// Clipboard receives copied rows. Defaults to WriteClipboard.
	Clipboard func(string) error
}

// DetailsModel is the interactive records table: a header above a windowed
// list, with selection, column resizing, sorting and filtering.
type DetailsModel struct {
	logger zerolog.Logger
	keys   KeyMap

	// all is the loaded sequence; rows is the filtered and sorted view of it.
	all  []record.Record
	rows []record.Record

	declared   []columns.Column
	layoutMode columns.LayoutMode
	layout     *columns.Layout
	selection  *selection.Selection
	list       *listview.Model[record.Record]

	filter    textinput.Model
	filtering bool

	focusedColumn  int
	sortField      string
	sortDescending bool
	caser          func(string) string
	clipboard      func(string) error

	width  int
	height int
	status string

	subs events.Group
}

// NewDetailsModel builds the model for records. The context carries the logger.
func NewDetailsModel(ctx context.Context, records []record.Record, opts DetailsOptions) *DetailsModel {
	logger := logging.ComponentLogger(*logging.FromContext(ctx), "tui")

	m := &DetailsModel{
		logger:         logger,
		keys:           DefaultKeyMap(),
		all:            records,
		declared:       opts.Columns,
		layoutMode:     opts.LayoutMode,
		layout:         columns.NewLayout(columns.TerminalMetrics(), logger),
		selection:      selection.New(opts.SelectionMode),
		filter:         newFilterInput(),
		sortField:      opts.SortField,
		sortDescending: opts.SortDescending,
		caser:          NewHeaderCaser(opts.HeaderCase),
		clipboard:      opts.Clipboard,
	}
	if m.clipboard == nil {
		m.clipboard = WriteClipboard
	}

	engineOpts := []window.Option{}
	if opts.ItemsPerPage > 0 {
		engineOpts = append(engineOpts, window.WithItemsPerPage(opts.ItemsPerPage))
	}
	if opts.EstimatedItemHeight > 0 {
		engineOpts = append(engineOpts, window.WithEstimatedItemHeight(opts.EstimatedItemHeight))
	}
	m.list = listview.New(m.renderRow,
		listview.WithOverscan(opts.Overscan),
		listview.WithEngineOptions(engineOpts...),
		listview.WithLogger(logger),
	)

	var first columns.FieldLister
	if len(records) > 0 {
		first = records[0]
	}
	if m.sortField == "" {
		m.sortField, m.sortDescending = InitialSort(m.declared, first)
	}

	// Selection spans every loaded record so filtering never drops selected keys.
	keyed := make([]selection.Keyed, len(records))
	for i, r := range records {
		keyed[i] = r
	}
	m.selection.SetItems(keyed, false)
	m.subs.Add(m.selection.OnChange(m.list.Refresh))

	m.applyView()
	return m
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter rows"
	ti.CharLimit = 256 //nolint:mnd // Generous limit for a one-line query.
	return ti
}

// Close releases every subscription held by the model.
func (m *DetailsModel) Close() {
	m.subs.Dispose()
	m.list.Close()
}

// Init implements tea.Model.
func (m *DetailsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *DetailsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateColumns(false)
		m.resizeList()
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterInput(msg)
		}
		return m.handleKey(msg)
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *DetailsModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Button { //nolint:exhaustive // Only the wheel scrolls.
	case tea.MouseButtonWheelUp:
		m.list.ScrollBy(-wheelStep)
	case tea.MouseButtonWheelDown:
		m.list.ScrollBy(wheelStep)
	}
}

func (m *DetailsModel) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filtering = false
		m.filter.Blur()
		m.list.SetFocused(true)
		m.resizeList()
		return m, nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyView()
	}
	return m, cmd
}

//nolint:gocognit,cyclop // One branch per binding.
func (m *DetailsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.list.MoveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.list.MoveFocus(1)
	case key.Matches(msg, m.keys.PageUp):
		m.list.MoveFocus(-m.list.PageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.list.MoveFocus(m.list.PageSize())
	case key.Matches(msg, m.keys.Top):
		m.list.SetFocusIndex(0)
	case key.Matches(msg, m.keys.Bottom):
		m.list.SetFocusIndex(m.list.ItemCount() - 1)
	case key.Matches(msg, m.keys.Toggle):
		if rec, ok := m.list.FocusedItem(); ok {
			m.selection.ToggleKeySelected(rec.Key())
		}
	case key.Matches(msg, m.keys.ToggleAll):
		m.selection.ToggleAllSelected()
	case key.Matches(msg, m.keys.Shrink):
		m.header().ResizeFocused(-1)
	case key.Matches(msg, m.keys.Grow):
		m.header().ResizeFocused(1)
	case key.Matches(msg, m.keys.NextColumn):
		m.moveColumnFocus(1)
	case key.Matches(msg, m.keys.PrevColumn):
		m.moveColumnFocus(-1)
	case key.Matches(msg, m.keys.ResetWidths):
		if m.layout.ClearOverrides() {
			m.list.Refresh()
		}
	case key.Matches(msg, m.keys.Sort):
		m.sortByFocusedColumn()
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.list.SetFocused(false)
		m.resizeList()
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.ClearFilter):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyView()
		}
	case key.Matches(msg, m.keys.Copy):
		m.copyFocused()
	}

	return m, nil
}

// applyView rebuilds the filtered and sorted rows, keeping the focus on the
// same record when it survives.
func (m *DetailsModel) applyView() {
	rec, hadFocus := m.list.FocusedItem()
	if hadFocus {
		m.selection.SetFocusedKey(rec.Key())
	}

	rows := record.Filter(m.all, m.filter.Value())
	if m.sortField != "" {
		rows = record.Sort(rows, m.sortField, m.sortDescending)
	}
	m.rows = rows
	m.list.SetItems(rows)

	if focusKey, ok := m.selection.FocusedKey(); ok && hadFocus {
		for i, r := range rows {
			if r.Key() == focusKey {
				m.list.SetFocusIndex(i)
				break
			}
		}
	}

	m.logger.Debug().
		Int("rows", len(rows)).
		Int("total", len(m.all)).
		Str("filter", m.filter.Value()).
		Str("sort", m.sortField).
		Msg("view applied")
}

// updateColumns runs a column layout pass and re-renders rows when it changed.
func (m *DetailsModel) updateColumns(force bool) {
	var first columns.FieldLister
	if len(m.all) > 0 {
		first = m.all[0]
	}
	changed := m.layout.Update(columns.Input{
		Columns:       m.declared,
		Width:         m.width,
		WidthKnown:    m.width > 0,
		SelectionMode: m.selection.Mode(),
		LayoutMode:    m.layoutMode,
		First:         first,
	}, force)
	if !changed {
		return
	}

	if n := len(m.layout.Columns()); m.focusedColumn >= n {
		m.focusedColumn = max(0, n-1)
	}
	m.list.Refresh()
}

func (m *DetailsModel) resizeList() {
	h := m.height - chromeLines
	if m.filtering {
		h--
	}
	m.list.SetSize(m.width, max(0, h))
}

func (m *DetailsModel) moveColumnFocus(delta int) {
	n := len(m.layout.Columns())
	if n == 0 {
		return
	}
	m.focusedColumn = ((m.focusedColumn+delta)%n + n) % n
}

func (m *DetailsModel) sortByFocusedColumn() {
	cols := m.layout.Columns()
	if m.focusedColumn >= len(cols) {
		return
	}
	col := cols[m.focusedColumn]
	if !col.IsSortable {
		m.status = fmt.Sprintf("column %q is not sortable", col.Name)
		return
	}

	field := sortField(col)
	if m.sortField == field {
		m.sortDescending = !m.sortDescending
	} else {
		m.sortField = field
		m.sortDescending = false
	}
	m.applyView()
}

func (m *DetailsModel) copyFocused() {
	rec, ok := m.list.FocusedItem()
	if !ok {
		return
	}
	if err := m.clipboard(rec.String()); err != nil {
		m.logger.Warn().Err(err).Str("key", rec.Key()).Msg("clipboard copy failed")
		m.status = ErrorStyle.Render("copy failed: " + err.Error())
		return
	}
	m.status = "copied " + rec.Key()
}

// onColumnResize is the header resize callback.
func (m *DetailsModel) onColumnResize(col columns.Column, width int) {
	if m.layout.Resize(col.Key, width) {
		m.list.Refresh()
	}
}

func (m *DetailsModel) header() Header {
	metrics := m.layout.Metrics()
	return Header{
		Columns:        m.layout.Columns(),
		LayoutMode:     m.layoutMode,
		SelectionMode:  m.selection.Mode(),
		AllSelected:    m.selection.IsAllSelected(),
		CheckWidth:     m.layout.RowCheckWidth(),
		Padding:        metrics.ColumnPadding,
		Width:          m.width,
		FocusedColumn:  m.focusedColumn,
		SortKey:        m.sortField,
		SortDescending: m.sortDescending,
		Caser:          m.caser,
		OnResize:       m.onColumnResize,
	}
}

// renderRow is the list's row renderer.
func (m *DetailsModel) renderRow(rec record.Record, _ int, focused bool) string {
	return RowRenderer{
		Columns:       m.layout.Columns(),
		SelectionMode: m.selection.Mode(),
		CheckWidth:    m.layout.RowCheckWidth(),
		Padding:       m.layout.Metrics().ColumnPadding,
		Width:         m.width,
	}.Render(rec, focused, m.selection.IsKeySelected(rec.Key()))
}

// View implements tea.Model.
func (m *DetailsModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading…"
	}

	parts := []string{m.header().View(), m.list.View()}
	if m.filtering {
		parts = append(parts, m.filter.View())
	}
	parts = append(parts, m.statusLine())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *DetailsModel) statusLine() string {
	pos := 0
	if f := m.list.Focused(); f >= 0 {
		pos = f + 1
	}
	segments := []string{fmt.Sprintf("%d/%d", pos, len(m.rows))}
	if len(m.rows) != len(m.all) {
		segments = append(segments, fmt.Sprintf("%d total", len(m.all)))
	}
	if n := m.selection.SelectedCount(); n > 0 {
		segments = append(segments, fmt.Sprintf("%d selected", n))
	}
	if m.sortField != "" {
		order := record.SortOrderAsc
		if m.sortDescending {
			order = record.SortOrderDesc
		}
		segments = append(segments, "sort "+m.sortField+":"+order)
	}
	if q := m.filter.Value(); q != "" && !m.filtering {
		segments = append(segments, "filter "+q)
	}
	if m.status != "" {
		segments = append(segments, m.status)
	}

	help := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		help = append(help, b.Help().Key+" "+b.Help().Desc)
	}

	line := strings.Join(segments, " · ") + "  " + SubtleStyle.Render(strings.Join(help, "  "))
	return StatusStyle.Render(padLine(line, m.width))
}

// SelectedKeys returns the keys of the selected records in view order.
func (m *DetailsModel) SelectedKeys() []string {
	return m.selection.SelectedKeys()
}

// Rows returns the filtered and sorted records.
func (m *DetailsModel) Rows() []record.Record {
	return m.rows
}

// Columns returns the adjusted columns of the last layout pass.
func (m *DetailsModel) Columns() []columns.Column {
	return m.layout.Columns()
}

// FocusedIndex returns the index of the focused row, or -1.
func (m *DetailsModel) FocusedIndex() int {
	return m.list.Focused()
}
