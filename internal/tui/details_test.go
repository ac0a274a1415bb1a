package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vlist/internal/columns"
	"github.com/rshade/vlist/internal/record"
)

func testRecords(n int) []record.Record {
	out := make([]record.Record, n)
	for i := range out {
		key := fmt.Sprintf("r%02d", i)
		out[i] = record.New(key,
			record.Field{Name: "key", Value: key},
			record.Field{Name: "name", Value: fmt.Sprintf("row %d", i)},
			record.Field{Name: "size", Value: 100 - i},
		)
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *DetailsModel, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func newTestDetails(t *testing.T, n int, opts DetailsOptions) *DetailsModel {
	t.Helper()
	opts.EstimatedItemHeight = 1
	m := NewDetailsModel(context.Background(), testRecords(n), opts)
	t.Cleanup(m.Close)
	send(m, tea.WindowSizeMsg{Width: 80, Height: 10})
	return m
}

func viewLines(m *DetailsModel) []string {
	return strings.Split(ansi.Strip(m.View()), "\n")
}

func TestDetailsModel_InitialLayout(t *testing.T) {
	m := newTestDetails(t, 50, DetailsOptions{})

	lines := viewLines(m)
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "[ ] Key ↑"), lines[0])
	assert.Contains(t, lines[1], "row 0")
	assert.Contains(t, lines[8], "row 7")
	assert.Contains(t, lines[9], "1/50")

	widths := []int{}
	for _, c := range m.Columns() {
		widths = append(widths, c.CalculatedWidth)
	}
	assert.Equal(t, []int{28, 22, 22}, widths)
}

func TestDetailsModel_LoadingBeforeSize(t *testing.T) {
	m := NewDetailsModel(context.Background(), testRecords(3), DetailsOptions{})
	t.Cleanup(m.Close)
	assert.Equal(t, "loading…", m.View())
	assert.Empty(t, m.Columns(), "layout waits for a measured width")
}

func TestDetailsModel_Navigation(t *testing.T) {
	m := newTestDetails(t, 50, DetailsOptions{})

	send(m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 3, m.FocusedIndex())

	send(m, runes("G"))
	assert.Equal(t, 49, m.FocusedIndex())
	lines := viewLines(m)
	assert.Contains(t, lines[8], "row 49")

	send(m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 41, m.FocusedIndex())

	send(m, runes("g"))
	assert.Equal(t, 0, m.FocusedIndex())
	assert.Contains(t, viewLines(m)[1], "row 0")
}

func TestDetailsModel_Selection(t *testing.T) {
	m := newTestDetails(t, 5, DetailsOptions{})

	send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, []string{"r00"}, m.SelectedKeys())
	assert.True(t, strings.HasPrefix(viewLines(m)[1], "[x]"))

	send(m, runes("a"))
	assert.Len(t, m.SelectedKeys(), 5)
	assert.True(t, strings.HasPrefix(viewLines(m)[0], "[x]"))

	send(m, runes("a"))
	assert.Empty(t, m.SelectedKeys())
}

func TestDetailsModel_SelectionNoneHasNoCheckbox(t *testing.T) {
	m := newTestDetails(t, 5, DetailsOptions{SelectionMode: columns.SelectionNone})

	send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Empty(t, m.SelectedKeys())
	assert.True(t, strings.HasPrefix(viewLines(m)[0], "Key ↑"))
}

func TestDetailsModel_ResizeColumnThroughHeader(t *testing.T) {
	m := newTestDetails(t, 5, DetailsOptions{})

	send(m, runes(">"))
	cols := m.Columns()
	require.Len(t, cols, 2, "the wider key column pushes the last collapsable column out")
	assert.Equal(t, 29, cols[0].CalculatedWidth)

	send(m, runes("r"))
	require.Len(t, m.Columns(), 3)
	assert.Equal(t, 28, m.Columns()[0].CalculatedWidth)

	send(m, runes("<"))
	assert.Equal(t, 27, m.Columns()[0].CalculatedWidth)
	assert.Len(t, m.Columns(), 3)
}

func TestDetailsModel_SortKeepsFocusedRecord(t *testing.T) {
	m := newTestDetails(t, 50, DetailsOptions{})

	assert.Contains(t, viewLines(m)[9], "sort key:asc")

	send(m, runes("s"))
	assert.Equal(t, "r49", m.Rows()[0].Key())
	assert.Equal(t, 49, m.FocusedIndex(), "focus follows r00")
	assert.Contains(t, viewLines(m)[9], "sort key:desc")

	send(m, runes("s"))
	assert.Equal(t, "r00", m.Rows()[0].Key())
	send(m, runes("s"))

	send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, runes("s"))
	assert.Equal(t, "51", m.Rows()[0].Format("size"))
	assert.Contains(t, viewLines(m)[0], "Size ↑")
}

func TestDetailsModel_InitialSortOption(t *testing.T) {
	m := newTestDetails(t, 10, DetailsOptions{SortField: "size", SortDescending: true})
	assert.Equal(t, "r00", m.Rows()[0].Key())
	assert.Contains(t, viewLines(m)[0], "Size ↓")
}

func TestDetailsModel_Filter(t *testing.T) {
	m := newTestDetails(t, 50, DetailsOptions{})

	_, cmd := m.Update(runes("/"))
	assert.NotNil(t, cmd)
	send(m, runes("row 1"))
	assert.Len(t, m.Rows(), 11)

	lines := viewLines(m)
	require.Len(t, lines, 10)
	assert.Contains(t, lines[8], "/row 1")

	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, viewLines(m)[9], "filter row 1")
	assert.Contains(t, viewLines(m)[9], "50 total")

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.Rows(), 50)
}

func TestDetailsModel_FilterKeepsHiddenSelections(t *testing.T) {
	m := newTestDetails(t, 20, DetailsOptions{})

	send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.Equal(t, []string{"r00"}, m.SelectedKeys())

	send(m, runes("/"), runes("row 5"), tea.KeyMsg{Type: tea.KeyEsc})
	require.Len(t, m.Rows(), 1)
	assert.Equal(t, []string{"r00"}, m.SelectedKeys(), "hidden rows stay selected")

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Len(t, m.Rows(), 20)
	assert.Equal(t, []string{"r00"}, m.SelectedKeys())
	assert.True(t, strings.HasPrefix(viewLines(m)[1], "[x]"))
}

func TestDetailsModel_InferredSortIsApplied(t *testing.T) {
	records := testRecords(5)
	slices.Reverse(records)
	m := NewDetailsModel(context.Background(), records, DetailsOptions{EstimatedItemHeight: 1})
	t.Cleanup(m.Close)
	send(m, tea.WindowSizeMsg{Width: 80, Height: 10})

	assert.Equal(t, "r00", m.Rows()[0].Key(), "the inferred sorted column orders the rows")
	assert.Equal(t, 0, m.FocusedIndex())
	assert.True(t, strings.HasPrefix(viewLines(m)[0], "[ ] Key ↑"))
	assert.True(t, strings.HasPrefix(viewLines(m)[1], "[ ] r00"))
}

func TestDetailsModel_Copy(t *testing.T) {
	var copied string
	m := newTestDetails(t, 3, DetailsOptions{Clipboard: func(s string) error {
		copied = s
		return nil
	}})

	send(m, runes("j"), runes("y"))
	assert.True(t, strings.HasPrefix(copied, "r01\t"))
	assert.Contains(t, viewLines(m)[9], "copied r01")
}

func TestDetailsModel_CopyFailureReported(t *testing.T) {
	m := newTestDetails(t, 3, DetailsOptions{Clipboard: func(string) error {
		return errors.New("no clipboard")
	}})

	send(m, runes("y"))
	assert.Contains(t, viewLines(m)[9], "copy failed: no clipboard")
}

func TestDetailsModel_MouseWheelScrollsWithoutMovingFocus(t *testing.T) {
	m := newTestDetails(t, 50, DetailsOptions{})

	send(m, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 0, m.FocusedIndex())
	assert.Contains(t, viewLines(m)[1], "row 3")
}

func TestDetailsModel_Quit(t *testing.T) {
	m := newTestDetails(t, 3, DetailsOptions{})

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDetailsModel_EmptyRecords(t *testing.T) {
	m := newTestDetails(t, 0, DetailsOptions{})

	send(m, runes("j"), runes("y"), runes("s"), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, -1, m.FocusedIndex())
	assert.Contains(t, viewLines(m)[9], "0/0")
}
