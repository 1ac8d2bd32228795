// Package metrics caches per-glyph advance widths so layout and hit
// testing never measure the same rune twice for the same font setup.
package metrics

// FontID identifies a font face by family name.
type FontID string

// FontKey identifies one measurement context. Advances differ between
// keys even for the same rune, so each key owns its own table.
type FontKey struct {
	Font     FontID
	Size     float64
	DPIScale float64
}

// Provider measures glyph advances. Implementations wrap whatever
// rasterizer or terminal metric source the host supplies; a terminal
// host returns cell multiples, a GUI host asks its font engine.
type Provider interface {
	GlyphAdvance(font FontID, size, dpiScale float64, r rune) float64
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(font FontID, size, dpiScale float64, r rune) float64

// GlyphAdvance calls f.
func (f ProviderFunc) GlyphAdvance(font FontID, size, dpiScale float64, r rune) float64 {
	return f(font, size, dpiScale, r)
}
