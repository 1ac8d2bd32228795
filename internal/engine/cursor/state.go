package cursor

import "github.com/dshills/fountainkit/internal/engine/buffer"

// State holds the live cursor/selection for one document and applies
// movement against the buffer's current line index.
type State struct {
	sel Selection
}

// NewState creates cursor state at the start of the document.
func NewState() *State {
	return &State{}
}

// Cursor returns the head cursor.
func (s *State) Cursor() Cursor {
	return s.sel.Head
}

// Selection returns the current selection.
func (s *State) Selection() Selection {
	return s.sel
}

// HasSelection returns true if a non-empty selection exists.
func (s *State) HasSelection() bool {
	return !s.sel.IsEmpty()
}

// Span returns the ordered selection span.
func (s *State) Span() buffer.Range {
	return s.sel.Span()
}

// MoveTo collapses any selection and places the cursor, clamped to the
// buffer. The preferred column becomes the landing column.
func (s *State) MoveTo(b *buffer.Buffer, line, column int) {
	p := b.ClampPoint(Point{Line: line, Column: column})
	c := At(p.Line, p.Column)
	s.sel = Selection{Anchor: c, Head: c}
}

// MoveBy moves the cursor by whole lines and/or columns, collapsing any
// selection. Vertical movement targets the preferred column, so the
// caret travels naturally across lines of different length; only
// horizontal movement rewrites the preferred column.
func (s *State) MoveBy(b *buffer.Buffer, deltaLine, deltaColumn int) {
	head := s.movedHead(b, deltaLine, deltaColumn)
	s.sel = Selection{Anchor: head, Head: head}
}

// ExtendBy moves the head as MoveBy does but keeps the anchor fixed.
func (s *State) ExtendBy(b *buffer.Buffer, deltaLine, deltaColumn int) {
	s.sel.Head = s.movedHead(b, deltaLine, deltaColumn)
}

func (s *State) movedHead(b *buffer.Buffer, deltaLine, deltaColumn int) Cursor {
	head := s.sel.Head

	if deltaLine != 0 {
		line := head.Line + deltaLine
		if line < 0 {
			line = 0
		}
		if last := b.LineCount() - 1; line > last {
			line = last
		}
		head.Line = line
		head.Column = head.PreferredColumn
		if max := b.LineLen(line); head.Column > max {
			head.Column = max
		}
	}

	if deltaColumn != 0 {
		col := head.Column + deltaColumn
		if col < 0 {
			col = 0
		}
		if max := b.LineLen(head.Line); col > max {
			col = max
		}
		head.Column = col
		head.PreferredColumn = col
	}

	return head
}

// ExtendTo moves the head to the given position, keeping the anchor
// fixed. Starting an extension from a collapsed state anchors at the
// current cursor.
func (s *State) ExtendTo(b *buffer.Buffer, line, column int) {
	p := b.ClampPoint(Point{Line: line, Column: column})
	s.sel.Head = At(p.Line, p.Column)
}

// Collapse drops the selection, leaving the cursor at the head.
func (s *State) Collapse() {
	s.sel = s.sel.Collapse()
}

// SetCaret collapses to the given position without clamping checks;
// used for caret placement returned by a buffer edit, which is valid by
// construction.
func (s *State) SetCaret(p Point) {
	c := At(p.Line, p.Column)
	s.sel = Selection{Anchor: c, Head: c}
}

// Clamp re-validates cursor and selection against the buffer after a
// mutation. A cursor on a deleted line moves to the nearest surviving
// line at the same column; a column past a shortened line clamps to the
// line length. Preferred columns are deliberately left untouched.
func (s *State) Clamp(b *buffer.Buffer) {
	s.sel.Anchor = clampCursor(b, s.sel.Anchor)
	s.sel.Head = clampCursor(b, s.sel.Head)
}

func clampCursor(b *buffer.Buffer, c Cursor) Cursor {
	p := b.ClampPoint(c.Point())
	c.Line = p.Line
	c.Column = p.Column
	return c
}
