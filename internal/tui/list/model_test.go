package listview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vlist/internal/window"
)

func ints(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func renderInt(item, _ int, focused bool) string {
	marker := " "
	if focused {
		marker = ">"
	}
	return fmt.Sprintf("%s item %d", marker, item)
}

func newTestModel(t *testing.T, n, height int) *Model[int] {
	t.Helper()
	m := New(renderInt, WithEngineOptions(window.WithEstimatedItemHeight(1)))
	t.Cleanup(m.Close)
	m.SetSize(20, height)
	m.SetItems(ints(n))
	return m
}

func lines(s string) []string {
	return strings.Split(s, "\n")
}

func TestModel_RendersOnlyMaterializedPages(t *testing.T) {
	m := newTestModel(t, 1000, 5)

	got := lines(m.View())
	require.Len(t, got, 5)
	assert.Equal(t, "> item 0", got[0])
	assert.Equal(t, "  item 4", got[4])

	// One screen of overscan below a five line window reaches into page 0 only.
	assert.Equal(t, 10, m.Renders())
	assert.Equal(t, 1000, m.Engine().TotalHeight())
}

func TestModel_MoveFocusScrollsMinimally(t *testing.T) {
	m := newTestModel(t, 100, 5)

	m.MoveFocus(7)
	assert.Equal(t, 7, m.Focused())
	assert.Equal(t, 3, m.Viewport().Window().Top)

	got := lines(m.View())
	assert.Equal(t, "  item 3", got[0])
	assert.Equal(t, "> item 7", got[4])

	m.MoveFocus(-1)
	assert.Equal(t, 3, m.Viewport().Window().Top, "item 6 already visible")
}

func TestModel_SetFocusIndexClampsAndReachesEnd(t *testing.T) {
	m := newTestModel(t, 100, 5)

	m.SetFocusIndex(500)
	assert.Equal(t, 99, m.Focused())
	assert.Equal(t, 95, m.Viewport().Window().Top)

	got := lines(m.View())
	assert.Equal(t, "  item 95", got[0])
	assert.Equal(t, "> item 99", got[4])

	item, ok := m.FocusedItem()
	require.True(t, ok)
	assert.Equal(t, 99, item)

	m.SetFocusIndex(-3)
	assert.Equal(t, 0, m.Focused())
	assert.Equal(t, 0, m.Viewport().Window().Top)
}

func TestModel_MeasuresMultiLineRows(t *testing.T) {
	m := New(func(item, index int, focused bool) string {
		if item%2 == 0 {
			return fmt.Sprintf("item %d\n  detail", item)
		}
		return fmt.Sprintf("item %d", item)
	}, WithEngineOptions(window.WithEstimatedItemHeight(1)), WithOverscan(0))
	t.Cleanup(m.Close)

	m.SetSize(20, 4)
	m.SetItems(ints(40))

	h, ok := m.Engine().Cache().Get(0, 10)
	require.True(t, ok)
	assert.Equal(t, 15, h)
	assert.InDelta(t, 1.5, m.Engine().EstimatedItemHeight(), 0.0001)

	got := lines(m.View())
	require.Len(t, got, 4)
	assert.Equal(t, []string{"item 0", "  detail", "item 1", "item 2"}, got)
}

func TestModel_ScrollByDoesNotMoveFocus(t *testing.T) {
	m := newTestModel(t, 100, 5)

	m.ScrollBy(20)
	assert.Equal(t, 0, m.Focused())
	assert.Equal(t, 20, m.Viewport().Window().Top)
	assert.Equal(t, "  item 20", lines(m.View())[0])

	m.ScrollBy(1000)
	assert.Equal(t, 95, m.Viewport().Window().Top, "clamped to content")
}

func TestModel_FocusLossRerendersWithoutMarker(t *testing.T) {
	m := newTestModel(t, 20, 3)

	m.SetFocused(false)
	assert.Equal(t, "  item 0", lines(m.View())[0])

	m.SetFocused(true)
	assert.Equal(t, "> item 0", lines(m.View())[0])
}

func TestModel_EmptyAndReplacedItems(t *testing.T) {
	m := newTestModel(t, 0, 3)

	assert.Equal(t, -1, m.Focused())
	assert.Equal(t, []string{"", "", ""}, lines(m.View()))
	_, ok := m.FocusedItem()
	assert.False(t, ok)
	m.MoveFocus(1)
	assert.Equal(t, -1, m.Focused())

	m.SetItems(ints(5))
	assert.Equal(t, 0, m.Focused())
	m.SetFocusIndex(4)

	m.SetItems(ints(2))
	assert.Equal(t, 0, m.Focused(), "focus past the end resets to the first item")
	assert.Equal(t, 2, m.ItemCount())
}

func TestModel_CloseStopsRelayout(t *testing.T) {
	m := newTestModel(t, 100, 5)
	before := m.Renders()

	m.Close()
	m.SetSize(20, 8)
	m.ScrollBy(30)

	assert.Equal(t, before, m.Renders())
}

func TestModel_PageSize(t *testing.T) {
	m := newTestModel(t, 100, 6)
	assert.Equal(t, 6, m.PageSize())
}
