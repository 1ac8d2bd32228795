package cursor

import (
	"fmt"

	"github.com/dshills/fountainkit/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Cursor is an insertion point with a remembered preferred column.
// PreferredColumn is the column vertical movement aims for; it is only
// rewritten by horizontal movement and explicit placement, and is not
// clamped until it is used against a concrete line.
type Cursor struct {
	Line            int
	Column          int
	PreferredColumn int
}

// At creates a cursor at the given position with the preferred column
// set to the actual column.
func At(line, column int) Cursor {
	if line < 0 {
		line = 0
	}
	if column < 0 {
		column = 0
	}
	return Cursor{Line: line, Column: column, PreferredColumn: column}
}

// Point returns the cursor's position.
func (c Cursor) Point() Point {
	return Point{Line: c.Line, Column: c.Column}
}

// WithPoint returns a cursor moved to p, keeping the preferred column.
func (c Cursor) WithPoint(p Point) Cursor {
	c.Line = p.Line
	c.Column = p.Column
	return c
}

// String returns a human-readable representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d:%d pref %d)", c.Line, c.Column, c.PreferredColumn)
}
