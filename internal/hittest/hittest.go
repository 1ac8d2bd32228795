// Package hittest maps pixel coordinates to document positions using
// cached glyph advances and a uniform line height.
package hittest

import "sort"

// Geometry is the per-line layout the tester reads. The document facade
// satisfies it by combining the buffer with the glyph metrics cache.
type Geometry interface {
	LineCount() int

	// LineAdvances returns cumulative column boundary offsets for a
	// line: element 0 is 0, element i is the x offset of column i.
	LineAdvances(line int) []float64
}

// Tester resolves clicks to (line, column) positions. Both lookups are
// binary searches, so a hit test costs O(log lines + log columns).
type Tester struct {
	geom       Geometry
	lineHeight float64
}

// New creates a tester. lineHeight must be positive.
func New(geom Geometry, lineHeight float64) *Tester {
	if lineHeight <= 0 {
		lineHeight = 1
	}
	return &Tester{geom: geom, lineHeight: lineHeight}
}

// SetLineHeight updates the row height, normally after a font change.
func (t *Tester) SetLineHeight(h float64) {
	if h > 0 {
		t.lineHeight = h
	}
}

// Locate maps a pixel coordinate to the nearest valid document
// position. Clicks outside the document clamp: above maps to the start
// of line 0, below to the end of the last line, and x outside a line's
// horizontal extent maps to the line's first or last column.
func (t *Tester) Locate(x, y float64) (line, col int) {
	count := t.geom.LineCount()
	if count == 0 {
		return 0, 0
	}

	if y < 0 {
		return 0, 0
	}

	line = t.LineAt(y)
	if line >= count {
		line = count - 1
		adv := t.geom.LineAdvances(line)
		return line, len(adv) - 1
	}

	return line, ColumnForX(t.geom.LineAdvances(line), x)
}

// LineAt returns the line whose vertical band contains y. The result
// may equal LineCount when y is below the document; Locate clamps it.
func (t *Tester) LineAt(y float64) int {
	count := t.geom.LineCount()

	// Line i occupies [i*h, (i+1)*h). Tops are monotonic, so search
	// for the first line whose bottom edge is past y.
	return sort.Search(count, func(i int) bool {
		return float64(i+1)*t.lineHeight > y
	})
}

// ColumnForX resolves an x offset against a line's cumulative advances
// by nearest-boundary rounding: a click left of a glyph's midpoint
// lands on the glyph's column, right of the midpoint on the next.
func ColumnForX(advances []float64, x float64) int {
	last := len(advances) - 1
	if last <= 0 {
		return 0
	}
	if x <= advances[0] {
		return 0
	}
	if x >= advances[last] {
		return last
	}

	// First boundary at or past x.
	i := sort.Search(len(advances), func(j int) bool {
		return advances[j] >= x
	})
	if advances[i] == x {
		return i
	}

	if x-advances[i-1] < advances[i]-x {
		return i - 1
	}
	return i
}
