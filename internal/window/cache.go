package window

type pageMeasure struct {
	height    int
	itemCount int
}

// HeightCache maps a page start index to the last measured height of that page.
// It keeps running totals so the average item height is available in O(1).
// Entries are never evicted; the cache lives as long as its engine.
type HeightCache struct {
	entries     map[int]pageMeasure
	totalHeight int
	totalItems  int
}

// NewHeightCache returns an empty cache.
func NewHeightCache() *HeightCache {
	return &HeightCache{entries: make(map[int]pageMeasure)}
}

// Set stores the measured height of the page at startIndex holding itemCount items.
func (c *HeightCache) Set(startIndex, height, itemCount int) {
	if startIndex < 0 || itemCount <= 0 || height < 0 {
		return
	}
	if old, ok := c.entries[startIndex]; ok {
		c.totalHeight -= old.height
		c.totalItems -= old.itemCount
	}
	c.entries[startIndex] = pageMeasure{height: height, itemCount: itemCount}
	c.totalHeight += height
	c.totalItems += itemCount
}

// Get returns the cached height for startIndex if it was measured with itemCount items.
func (c *HeightCache) Get(startIndex, itemCount int) (int, bool) {
	m, ok := c.entries[startIndex]
	if !ok || m.itemCount != itemCount {
		return 0, false
	}
	return m.height, true
}

// Len returns the number of measured pages.
func (c *HeightCache) Len() int {
	return len(c.entries)
}

// AverageItemHeight returns total measured height over total measured items.
func (c *HeightCache) AverageItemHeight() (float64, bool) {
	if c.totalItems == 0 {
		return 0, false
	}
	return float64(c.totalHeight) / float64(c.totalItems), true
}
