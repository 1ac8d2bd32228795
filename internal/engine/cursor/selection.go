package cursor

import (
	"fmt"

	"github.com/dshills/fountainkit/internal/engine/buffer"
)

// Selection is a range of selected text. Anchor is the fixed end, Head
// the moving end where typing occurs. Anchor == Head means no selection.
type Selection struct {
	Anchor Cursor
	Head   Cursor
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor.Point() == s.Head.Point()
}

// Span returns the selection as an ordered range regardless of which
// endpoint is anchor and which is head.
func (s Selection) Span() buffer.Range {
	return buffer.Range{Start: s.Anchor.Point(), End: s.Head.Point()}.Normalize()
}

// Collapse returns the selection collapsed to a cursor at the head.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Head, Head: s.Head}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return s.Head.String()
	}
	return fmt.Sprintf("Selection(%s..%s)", s.Anchor.Point(), s.Head.Point())
}
