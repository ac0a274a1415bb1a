package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vlist/internal/surface"
)

func TestEngine_ItemExtent(t *testing.T) {
	e := New[int](WithEstimatedItemHeight(1))
	e.SetItems(makeItems(35))
	e.Update(surface.Rect{Top: 0, Height: 10})
	e.Measure(0, 20) // first page renders two lines per item

	tests := []struct {
		index int
		want  surface.Rect
	}{
		{0, surface.Rect{Top: 0, Height: 2}},
		{9, surface.Rect{Top: 18, Height: 2}},
		{10, surface.Rect{Top: 20, Height: 2}},
		{34, surface.Rect{Top: 68, Height: 2}},
	}
	for _, tt := range tests {
		got, ok := e.ItemExtent(tt.index)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "index %d", tt.index)
	}

	_, ok := e.ItemExtent(35)
	assert.False(t, ok)
	_, ok = e.ItemTop(-1)
	assert.False(t, ok)
}

func TestEngine_ScrollToIndex(t *testing.T) {
	e := New[int](WithEstimatedItemHeight(1))
	e.SetItems(makeItems(100))
	window := surface.Rect{Top: 20, Height: 10}
	e.Update(window)

	tests := []struct {
		name    string
		index   int
		want    surface.Rect
		changed bool
	}{
		{name: "already visible", index: 25, want: window, changed: false},
		{name: "last visible row", index: 29, want: window, changed: false},
		{name: "below window aligns bottom", index: 45, want: surface.Rect{Top: 36, Height: 10}, changed: true},
		{name: "above window aligns top", index: 3, want: surface.Rect{Top: 3, Height: 10}, changed: true},
		{name: "out of range", index: 100, want: window, changed: false},
		{name: "negative", index: -4, want: window, changed: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := e.ScrollToIndex(tt.index, window)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_ScrollToIndexTallItemAlignsTop(t *testing.T) {
	e := New[int](WithItemsPerPage(1), WithEstimatedItemHeight(1))
	e.SetItems(makeItems(10))
	e.Update(surface.Rect{Top: 0, Height: 5})
	e.Measure(0, 1)
	e.Update(surface.Rect{Top: 0, Height: 20})
	e.Measure(3, 12)

	got, changed := e.ScrollToIndex(3, surface.Rect{Top: 0, Height: 5})

	require.True(t, changed)
	top, _ := e.ItemTop(3)
	assert.Equal(t, surface.Rect{Top: top, Height: 5}, got)
}
