package window

import "github.com/rshade/vlist/internal/surface"

// ItemExtent returns the vertical extent of the item at index using measured page
// heights where available and the current estimate elsewhere. Items inside a page
// share the page height evenly.
func (e *Engine[T]) ItemExtent(index int) (surface.Rect, bool) {
	if index < 0 || index >= len(e.items) {
		return surface.Rect{}, false
	}

	pageTop := 0
	pageStart := 0
	for ; pageStart+e.itemsPerPage <= index; pageStart += e.itemsPerPage {
		h, _ := e.pageHeight(pageStart, e.itemsPerPage)
		pageTop += h
	}

	count := min(e.itemsPerPage, len(e.items)-pageStart)
	pageH, _ := e.pageHeight(pageStart, count)
	k := index - pageStart
	top := pageH * k / count
	bottom := pageH * (k + 1) / count

	return surface.Rect{Top: pageTop + top, Height: bottom - top}, true
}

// ItemTop returns the top offset of the item at index.
func (e *Engine[T]) ItemTop(index int) (int, bool) {
	r, ok := e.ItemExtent(index)
	return r.Top, ok
}

// ScrollToIndex computes the window that brings the item at index into view.
// It returns the window unchanged and false when the index is out of range or the
// item is already fully inside it; otherwise it returns the window moved by the
// smallest distance that shows the item, and true. Applying the result to the
// viewport is the caller's job and triggers the next Update.
func (e *Engine[T]) ScrollToIndex(index int, window surface.Rect) (surface.Rect, bool) {
	ext, ok := e.ItemExtent(index)
	if !ok {
		e.logger.Debug().Int("index", index).Int("items", len(e.items)).Msg("scroll target out of range")
		return window, false
	}

	if ext.Top >= window.Top && ext.Bottom() <= window.Bottom() {
		return window, false
	}

	top := ext.Top
	if ext.Top > window.Top && ext.Height <= window.Height {
		top = ext.Bottom() - window.Height
	}

	e.logger.Debug().Int("index", index).Int("from", window.Top).Int("to", top).Msg("scroll to index")

	return surface.Rect{Top: top, Height: window.Height}, true
}
