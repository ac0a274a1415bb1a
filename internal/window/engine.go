package window

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/rshade/vlist/internal/surface"
)

// DefaultItemsPerPage is the number of items grouped into one page.
const DefaultItemsPerPage = 10

// DefaultEstimatedItemHeight is the item height assumed before anything has been measured.
const DefaultEstimatedItemHeight = 30

// Option configures an Engine.
type Option func(*config)

type config struct {
	itemsPerPage        int
	estimatedItemHeight float64
	logger              zerolog.Logger
}

// WithItemsPerPage sets the page size. Values below 1 are ignored.
func WithItemsPerPage(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.itemsPerPage = n
		}
	}
}

// WithEstimatedItemHeight sets the initial per-item height estimate. Values below 0 are ignored.
func WithEstimatedItemHeight(h float64) Option {
	return func(c *config) {
		if h >= 0 {
			c.estimatedItemHeight = h
		}
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Engine is a windowed list over items of type T. It is owned by a single
// component and is not safe for concurrent use.
type Engine[T any] struct {
	// items is the full sequence; the engine never mutates it.
	items []T

	// itemsPerPage is the target number of items per page.
	itemsPerPage int

	// estimatedItemHeight is used for pages without a cached measurement.
	estimatedItemHeight float64

	// cache holds measured page heights keyed by start index.
	cache *HeightCache

	// pages is the output of the last pass.
	pages []Page[T]

	// visible is the rectangle used by the last pass.
	visible surface.Rect

	// totalHeight is the sum of page heights of the last pass.
	totalHeight int

	logger zerolog.Logger
}

// New creates an engine with no items.
func New[T any](opts ...Option) *Engine[T] {
	c := config{
		itemsPerPage:        DefaultItemsPerPage,
		estimatedItemHeight: DefaultEstimatedItemHeight,
		logger:              zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&c)
	}

	return &Engine[T]{
		itemsPerPage:        c.itemsPerPage,
		estimatedItemHeight: c.estimatedItemHeight,
		cache:               NewHeightCache(),
		logger:              c.logger.With().Str("component", "window").Logger(),
	}
}

// SetItems replaces the item sequence and rebuilds pages for the last visible
// rectangle. An empty sequence drops the current pages.
func (e *Engine[T]) SetItems(items []T) []Page[T] {
	e.items = items
	if len(items) == 0 {
		e.pages = nil
		e.totalHeight = 0
		return e.pages
	}
	return e.Update(e.visible)
}

// Update rebuilds the pages for the given visible rectangle. With no items it is
// a no-op and returns the previous pages.
func (e *Engine[T]) Update(visible surface.Rect) []Page[T] {
	e.visible = visible
	if len(e.items) == 0 {
		return e.pages
	}

	e.pages, e.totalHeight = e.buildPages(visible)

	e.logger.Debug().
		Int("items", len(e.items)).
		Int("pages", len(e.pages)).
		Int("visible_top", visible.Top).
		Int("visible_height", visible.Height).
		Int("total_height", e.totalHeight).
		Msg("pages rebuilt")

	return e.pages
}

func (e *Engine[T]) buildPages(visible surface.Rect) ([]Page[T], int) {
	start := newSpacer[T](StartSpacerKey)
	end := newSpacer[T](EndSpacerKey)

	pages := make([]Page[T], 1, 3) //nolint:mnd // start spacer, at least one page, end spacer.
	visibleTop := visible.Top
	visibleBottom := visible.Bottom()
	pageTop := 0

	for index := 0; index < len(e.items); index += e.itemsPerPage {
		count := min(e.itemsPerPage, len(e.items)-index)
		height, measured := e.pageHeight(index, count)
		pageBottom := pageTop + height

		if pageBottom > visibleTop && pageTop < visibleBottom {
			page := Page[T]{
				Key:        PageKey(index),
				StartIndex: index,
				ItemCount:  count,
				Items:      e.items[index : index+count : index+count],
				Height:     height,
			}
			if measured {
				page.ClientRect = &surface.Rect{Top: pageTop, Height: height}
			}
			pages = append(pages, page)
		} else if len(pages) == 1 {
			start.absorb(height, count)
		} else {
			end.absorb(height, count)
		}

		pageTop = pageBottom
	}

	pages[0] = start
	pages = append(pages, end)

	return pages, pageTop
}

// pageHeight returns the cached height of the page or an estimate, and whether it was measured.
func (e *Engine[T]) pageHeight(startIndex, count int) (int, bool) {
	if h, ok := e.cache.Get(startIndex, count); ok {
		return h, true
	}
	return int(math.Round(e.estimatedItemHeight * float64(count))), false
}

// Measure records the rendered height of the materialized page starting at
// startIndex. Spacers and start indexes not materialized in the last pass are ignored.
func (e *Engine[T]) Measure(startIndex, height int) {
	if e.record(startIndex, height) {
		e.refineEstimate()
	}
}

// MeasurePages calls measure for every materialized page of the last pass and
// caches the reported heights. Pages for which measure reports false keep
// their estimate.
func (e *Engine[T]) MeasurePages(measure func(Page[T]) (surface.Rect, bool)) {
	recorded := false
	for _, p := range e.pages {
		if p.IsSpacer() {
			continue
		}
		rect, ok := measure(p)
		if !ok {
			continue
		}
		if e.record(p.StartIndex, rect.Height) {
			recorded = true
		}
	}
	if recorded {
		e.refineEstimate()
	}
}

func (e *Engine[T]) record(startIndex, height int) bool {
	for _, p := range e.pages {
		if !p.IsSpacer() && p.StartIndex == startIndex {
			e.cache.Set(startIndex, height, p.ItemCount)
			return true
		}
	}
	return false
}

func (e *Engine[T]) refineEstimate() {
	if avg, ok := e.cache.AverageItemHeight(); ok {
		e.estimatedItemHeight = avg
	}
}

// Pages returns the pages of the last pass.
func (e *Engine[T]) Pages() []Page[T] {
	return e.pages
}

// Items returns the current item sequence.
func (e *Engine[T]) Items() []T {
	return e.items
}

// ItemCount returns the number of items.
func (e *Engine[T]) ItemCount() int {
	return len(e.items)
}

// ItemsPerPage returns the configured page size.
func (e *Engine[T]) ItemsPerPage() int {
	return e.itemsPerPage
}

// EstimatedItemHeight returns the current per-item estimate.
func (e *Engine[T]) EstimatedItemHeight() float64 {
	return e.estimatedItemHeight
}

// TotalHeight returns the scrollable height of the last pass.
func (e *Engine[T]) TotalHeight() int {
	return e.totalHeight
}

// Visible returns the rectangle used by the last pass.
func (e *Engine[T]) Visible() surface.Rect {
	return e.visible
}

// Cache exposes the measured page heights.
func (e *Engine[T]) Cache() *HeightCache {
	return e.cache
}
