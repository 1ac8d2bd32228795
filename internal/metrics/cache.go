package metrics

import (
	"sync"
	"sync/atomic"
)

// Cache memoizes glyph advances per FontKey. Lookups hit a read-locked
// map; misses measure through the Provider and store the result. Safe
// for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	provider Provider
	tables   map[FontKey]map[rune]float64
	hits     atomic.Uint64
	misses   atomic.Uint64
}

// NewCache creates a cache backed by the given provider.
func NewCache(provider Provider) *Cache {
	return &Cache{
		provider: provider,
		tables:   make(map[FontKey]map[rune]float64),
	}
}

// Advance returns the advance width of r under key, measuring and
// caching on first use.
func (c *Cache) Advance(key FontKey, r rune) float64 {
	c.mu.RLock()
	table, ok := c.tables[key]
	if ok {
		if adv, ok := table[r]; ok {
			c.mu.RUnlock()
			c.hits.Add(1)
			return adv
		}
	}
	c.mu.RUnlock()

	c.misses.Add(1)
	adv := c.provider.GlyphAdvance(key.Font, key.Size, key.DPIScale, r)

	c.mu.Lock()
	table, ok = c.tables[key]
	if !ok {
		table = make(map[rune]float64)
		c.tables[key] = table
	}
	table[r] = adv
	c.mu.Unlock()

	return adv
}

// LineAdvances returns the cumulative advance at every column boundary
// of text: element 0 is always 0 and element i is the pixel offset of
// column i. The slice has one more element than text has runes.
func (c *Cache) LineAdvances(key FontKey, text string) []float64 {
	runes := []rune(text)
	out := make([]float64, len(runes)+1)

	var x float64
	for i, r := range runes {
		out[i] = x
		x += c.Advance(key, r)
	}
	out[len(runes)] = x
	return out
}

// LineWidth returns the total advance of text under key.
func (c *Cache) LineWidth(key FontKey, text string) float64 {
	var x float64
	for _, r := range text {
		x += c.Advance(key, r)
	}
	return x
}

// Invalidate drops the table for one key.
func (c *Cache) Invalidate(key FontKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tables, key)
}

// InvalidateFont drops every table measured for a font, across all
// sizes and scales. Used when a font file is replaced on disk.
func (c *Cache) InvalidateFont(font FontID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.tables {
		if key.Font == font {
			delete(c.tables, key)
		}
	}
}

// InvalidateAll clears the whole cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables = make(map[FontKey]map[rune]float64)
}

// SetProvider swaps the measurement source and clears the cache, since
// old measurements no longer apply.
func (c *Cache) SetProvider(provider Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.provider = provider
	c.tables = make(map[FontKey]map[rune]float64)
}

// Size returns the number of cached glyph entries across all keys.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, table := range c.tables {
		n += len(table)
	}
	return n
}

// Stats reports hit and miss counters since the last reset.
func (c *Cache) Stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Size:    c.Size(),
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
	}
}

// ResetStats zeroes the hit and miss counters.
func (c *Cache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Size    int
	Hits    uint64
	Misses  uint64
	HitRate float64
}
