package window

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vlist/internal/surface"
)

func makeItems(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func pageKeys(pages []Page[int]) []string {
	keys := make([]string, len(pages))
	for i, p := range pages {
		keys[i] = p.Key
	}
	return keys
}

func TestEngine_MaterializesOverlappingPages(t *testing.T) {
	e := New[int]()
	e.SetItems(makeItems(100))

	pages := e.Update(surface.Rect{Top: 650, Height: 400})

	require.Equal(t, []string{StartSpacerKey, "page-20", "page-30", EndSpacerKey}, pageKeys(pages))

	start := pages[0]
	assert.True(t, start.IsSpacer())
	assert.Equal(t, -1, start.StartIndex)
	assert.Equal(t, 20, start.ItemCount)
	assert.Equal(t, 600, start.Style.Height)

	assert.Equal(t, 20, pages[1].StartIndex)
	assert.Equal(t, []int{20, 21, 22, 23, 24, 25, 26, 27, 28, 29}, pages[1].Items)
	assert.Equal(t, 30, pages[1].EndIndex())
	assert.Nil(t, pages[1].ClientRect)

	end := pages[3]
	assert.Equal(t, 60, end.ItemCount)
	assert.Equal(t, 1800, end.Style.Height)
	assert.Equal(t, 3000, e.TotalHeight())
}

func TestEngine_TrailingSpacerAlwaysPresent(t *testing.T) {
	e := New[int]()
	e.SetItems(makeItems(15))

	pages := e.Update(surface.Rect{Top: 0, Height: 10000})

	require.Equal(t, []string{StartSpacerKey, "page-0", "page-10", EndSpacerKey}, pageKeys(pages))
	assert.Equal(t, 0, pages[3].Style.Height)
	assert.Equal(t, 0, pages[3].ItemCount)
	assert.Equal(t, 5, pages[2].ItemCount)
}

func TestEngine_NothingVisibleFoldsIntoStartSpacer(t *testing.T) {
	e := New[int]()
	e.SetItems(makeItems(25))

	pages := e.Update(surface.Rect{Top: 5000, Height: 100})

	require.Len(t, pages, 2)
	assert.Equal(t, 25, pages[0].ItemCount)
	assert.Equal(t, 750, pages[0].Style.Height)
	assert.Equal(t, 0, pages[1].ItemCount)
}

func TestEngine_PageCoverage(t *testing.T) {
	for _, n := range []int{1, 9, 10, 11, 57, 100, 1003} {
		for _, per := range []int{1, 3, 10, 64} {
			for _, top := range []int{-500, 0, 137, 2999, 40000} {
				t.Run(fmt.Sprintf("n=%d/per=%d/top=%d", n, per, top), func(t *testing.T) {
					e := New[int](WithItemsPerPage(per))
					e.SetItems(makeItems(n))
					pages := e.Update(surface.Rect{Top: top, Height: 900})

					total := 0
					next := 0
					for _, p := range pages {
						total += p.ItemCount
						if !p.IsSpacer() {
							require.Equal(t, next, p.StartIndex, "materialized pages must be contiguous")
							require.Len(t, p.Items, p.ItemCount)
							require.Equal(t, p.StartIndex, p.Items[0])
							next = p.EndIndex()
						} else if p.Key == StartSpacerKey {
							next = p.ItemCount
						}
					}
					assert.Equal(t, n, total)
					assert.Equal(t, EndSpacerKey, pages[len(pages)-1].Key)
				})
			}
		}
	}
}

func TestEngine_SpacerHeightConservation(t *testing.T) {
	e := New[int](WithItemsPerPage(7), WithEstimatedItemHeight(3))
	e.SetItems(makeItems(200))
	e.Update(surface.Rect{Top: 120, Height: 60})

	// Measure with uneven heights so the pass mixes measured and estimated pages.
	e.MeasurePages(func(p Page[int]) (surface.Rect, bool) {
		return surface.Rect{Height: p.ItemCount*2 + 5}, true
	})

	pages := e.Update(surface.Rect{Top: 300, Height: 90})

	expected := 0
	for index := 0; index < 200; index += 7 {
		count := min(7, 200-index)
		h, _ := e.pageHeight(index, count)
		expected += h
	}

	sum := 0
	for _, p := range pages {
		if p.IsSpacer() {
			assert.Equal(t, p.Style.Height, p.Height)
		}
		sum += p.Height
	}
	assert.Equal(t, expected, sum)
	assert.Equal(t, expected, e.TotalHeight())
}

func TestEngine_MeasurementRefinesEstimate(t *testing.T) {
	e := New[int]()
	e.SetItems(makeItems(100))
	e.Update(surface.Rect{Top: 0, Height: 400})

	require.Equal(t, float64(DefaultEstimatedItemHeight), e.EstimatedItemHeight())

	e.Measure(0, 200)
	assert.InDelta(t, 20.0, e.EstimatedItemHeight(), 0.0001)

	e.Measure(10, 100)
	assert.InDelta(t, 15.0, e.EstimatedItemHeight(), 0.0001)

	pages := e.Update(surface.Rect{Top: 0, Height: 250})
	require.Equal(t, "page-0", pages[1].Key)
	require.NotNil(t, pages[1].ClientRect)
	assert.Equal(t, 200, pages[1].Height)
	assert.Equal(t, 100, pages[2].Height)

	// 8 unmeasured pages at the refined estimate of 15 per item.
	assert.Equal(t, 200+100+8*150, e.TotalHeight())
}

func TestEngine_MeasureIgnoresSpacersAndUnknownPages(t *testing.T) {
	e := New[int]()
	e.SetItems(makeItems(100))
	e.Update(surface.Rect{Top: 0, Height: 100})

	e.Measure(-1, 50)
	e.Measure(90, 50)

	assert.Equal(t, 0, e.Cache().Len())
	assert.Equal(t, float64(DefaultEstimatedItemHeight), e.EstimatedItemHeight())
}

func TestEngine_MeasurePagesSkipsMissingMeasurements(t *testing.T) {
	e := New[int]()
	e.SetItems(makeItems(100))
	e.Update(surface.Rect{Top: 0, Height: 700})

	e.MeasurePages(func(p Page[int]) (surface.Rect, bool) {
		if p.StartIndex == 10 {
			return surface.Rect{}, false
		}
		return surface.Rect{Height: 100}, true
	})

	_, ok := e.Cache().Get(10, 10)
	assert.False(t, ok)
	h, ok := e.Cache().Get(0, 10)
	assert.True(t, ok)
	assert.Equal(t, 100, h)
}

func TestEngine_EmptyItemsNoOp(t *testing.T) {
	e := New[int]()

	assert.Empty(t, e.Update(surface.Rect{Top: 0, Height: 100}))
	assert.Equal(t, 0, e.TotalHeight())

	e.SetItems(makeItems(5))
	require.NotEmpty(t, e.Pages())

	assert.Empty(t, e.SetItems(nil))
	assert.Empty(t, e.Update(surface.Rect{Top: 0, Height: 100}))
}

func TestEngine_SetItemsUsesLastVisible(t *testing.T) {
	e := New[int]()
	e.Update(surface.Rect{Top: 300, Height: 10})

	pages := e.SetItems(makeItems(40))

	require.Equal(t, []string{StartSpacerKey, "page-10", EndSpacerKey}, pageKeys(pages))
}

func TestEngine_InvalidOptionsIgnored(t *testing.T) {
	e := New[int](WithItemsPerPage(0), WithEstimatedItemHeight(-1))

	assert.Equal(t, DefaultItemsPerPage, e.ItemsPerPage())
	assert.Equal(t, float64(DefaultEstimatedItemHeight), e.EstimatedItemHeight())
}

func TestHeightCache_ReplaceKeepsTotals(t *testing.T) {
	c := NewHeightCache()
	c.Set(0, 10, 10)
	c.Set(0, 30, 10)
	c.Set(10, 10, 5)
	c.Set(-1, 100, 10)

	avg, ok := c.AverageItemHeight()
	require.True(t, ok)
	assert.InDelta(t, 40.0/15.0, avg, 0.0001)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get(10, 10)
	assert.False(t, ok, "entry measured with a different item count is not reused")
}
