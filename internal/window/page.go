package window

import (
	"strconv"

	"github.com/rshade/vlist/internal/surface"
)

// Keys of the two spacer pages. They are constant so renderers can keep stable
// child identities across passes.
const (
	StartSpacerKey = "startSpacer"
	EndSpacerKey   = "endSpacer"
)

// Style carries layout hints for a page.
type Style struct {
	// Height is the explicit height reserved by a spacer.
	Height int
}

// Page is a contiguous run of items, or a spacer standing in for items that are
// not rendered.
type Page[T any] struct {
	Key        string
	StartIndex int // -1 for spacers
	ItemCount  int
	Items      []T           // nil for spacers
	ClientRect *surface.Rect // last measured extent, nil until measured
	Style      Style

	// Height is the height this page occupied in the pass that built it:
	// measured or estimated for materialized pages, Style.Height for spacers.
	Height int
}

// IsSpacer reports whether the page is a placeholder.
func (p Page[T]) IsSpacer() bool {
	return p.Items == nil
}

// EndIndex returns the exclusive end of the materialized range, or -1 for spacers.
func (p Page[T]) EndIndex() int {
	if p.IsSpacer() {
		return -1
	}
	return p.StartIndex + p.ItemCount
}

// PageKey returns the key of the materialized page starting at startIndex.
func PageKey(startIndex int) string {
	return "page-" + strconv.Itoa(startIndex)
}

func newSpacer[T any](key string) Page[T] {
	return Page[T]{Key: key, StartIndex: -1}
}

func (p *Page[T]) absorb(height, count int) {
	p.Style.Height += height
	p.Height += height
	p.ItemCount += count
}
