package cursor

import (
	"testing"

	"github.com/dshills/fountainkit/internal/engine/buffer"
)

func TestAtClampsNegative(t *testing.T) {
	c := At(-1, -5)
	if c.Line != 0 || c.Column != 0 {
		t.Errorf("expected (0:0), got %v", c)
	}
}

func TestMoveToCollapsesAndClamps(t *testing.T) {
	b := buffer.FromText("one\nlonger line")
	s := NewState()

	s.MoveTo(b, 0, 99)
	if got := s.Cursor().Point(); got != (Point{Line: 0, Column: 3}) {
		t.Errorf("expected clamp to line end, got %v", got)
	}
	if s.HasSelection() {
		t.Error("MoveTo should collapse the selection")
	}
	if s.Cursor().PreferredColumn != 3 {
		t.Errorf("preferred column should follow explicit moves, got %d",
			s.Cursor().PreferredColumn)
	}
}

func TestVerticalMovementKeepsPreferredColumn(t *testing.T) {
	b := buffer.FromText("a long first line\nst\nanother long line")
	s := NewState()

	s.MoveTo(b, 0, 10)

	// Down onto the short line: column clamps, preferred survives.
	s.MoveBy(b, 1, 0)
	if got := s.Cursor(); got.Column != 2 || got.PreferredColumn != 10 {
		t.Errorf("expected column 2 with preferred 10, got %v", got)
	}

	// Down again: the caret springs back out to the preferred column.
	s.MoveBy(b, 1, 0)
	if got := s.Cursor(); got.Column != 10 {
		t.Errorf("expected return to column 10, got %v", got)
	}
}

func TestHorizontalMovementRewritesPreferredColumn(t *testing.T) {
	b := buffer.FromText("a long first line\nst")
	s := NewState()

	s.MoveTo(b, 0, 10)
	s.MoveBy(b, 0, -3)
	if got := s.Cursor(); got.Column != 7 || got.PreferredColumn != 7 {
		t.Errorf("expected column and preferred 7, got %v", got)
	}
}

func TestMoveByClampsAtDocumentEdges(t *testing.T) {
	b := buffer.FromText("one\ntwo")
	s := NewState()

	s.MoveBy(b, -5, 0)
	if s.Cursor().Line != 0 {
		t.Errorf("expected line 0, got %d", s.Cursor().Line)
	}

	s.MoveBy(b, 10, 0)
	if s.Cursor().Line != 1 {
		t.Errorf("expected last line, got %d", s.Cursor().Line)
	}

	s.MoveBy(b, 0, 99)
	if s.Cursor().Column != 3 {
		t.Errorf("expected end of line, got %d", s.Cursor().Column)
	}
}

func TestExtendToKeepsAnchor(t *testing.T) {
	b := buffer.FromText("one\ntwo\nthree")
	s := NewState()

	s.MoveTo(b, 0, 1)
	s.ExtendTo(b, 2, 2)

	if !s.HasSelection() {
		t.Fatal("expected a selection")
	}
	span := s.Span()
	if span.Start != (Point{Line: 0, Column: 1}) {
		t.Errorf("expected anchor at (0:1), got %v", span.Start)
	}
	if span.End != (Point{Line: 2, Column: 2}) {
		t.Errorf("expected head at (2:2), got %v", span.End)
	}
}

func TestSpanOrdersBackwardSelection(t *testing.T) {
	b := buffer.FromText("one\ntwo\nthree")
	s := NewState()

	s.MoveTo(b, 2, 2)
	s.ExtendTo(b, 0, 1)

	span := s.Span()
	if span.Start != (Point{Line: 0, Column: 1}) || span.End != (Point{Line: 2, Column: 2}) {
		t.Errorf("backward selection should normalize, got %v", span)
	}
}

func TestCollapse(t *testing.T) {
	b := buffer.FromText("one\ntwo")
	s := NewState()

	s.MoveTo(b, 0, 0)
	s.ExtendTo(b, 1, 2)
	s.Collapse()

	if s.HasSelection() {
		t.Error("collapse should drop the selection")
	}
	if got := s.Cursor().Point(); got != (Point{Line: 1, Column: 2}) {
		t.Errorf("collapse should land on the head, got %v", got)
	}
}

func TestClampAfterLineDeleted(t *testing.T) {
	b := buffer.FromText("one\ntwo\nthree")
	s := NewState()
	s.MoveTo(b, 2, 3)

	// Delete the cursor's line.
	if _, err := b.Delete(buffer.Range{
		Start: Point{Line: 1, Column: 3},
		End:   Point{Line: 2, Column: 5},
	}); err != nil {
		t.Fatal(err)
	}
	s.Clamp(b)

	if got := s.Cursor().Point(); got != (Point{Line: 1, Column: 3}) {
		t.Errorf("cursor should land on nearest surviving line, got %v", got)
	}
}

func TestClampAfterLineShortened(t *testing.T) {
	b := buffer.FromText("a long line here")
	s := NewState()
	s.MoveTo(b, 0, 16)

	if _, err := b.Delete(buffer.Range{
		Start: Point{Line: 0, Column: 6},
		End:   Point{Line: 0, Column: 16},
	}); err != nil {
		t.Fatal(err)
	}
	s.Clamp(b)

	if got := s.Cursor(); got.Column != 6 {
		t.Errorf("column should clamp to new line length, got %d", got.Column)
	}
	if got := s.Cursor(); got.PreferredColumn != 16 {
		t.Errorf("preferred column must survive clamping, got %d", got.PreferredColumn)
	}
}

func TestCursorAlwaysValidAcrossEditSequence(t *testing.T) {
	b := buffer.FromText("INT. HOUSE - DAY\n\nJOHN\nHello there.")
	s := NewState()
	s.MoveTo(b, 3, 5)

	steps := []func(){
		func() { _, _ = b.Insert(Point{Line: 0, Column: 0}, "X") },
		func() { _, _ = b.Delete(buffer.Range{Start: Point{Line: 2, Column: 0}, End: Point{Line: 3, Column: 0}}) },
		func() { _, _ = b.JoinLines(0) },
		func() { _, _ = b.Delete(buffer.Range{Start: Point{Line: 0, Column: 0}, End: Point{Line: 1, Column: 0}}) },
	}

	for i, step := range steps {
		step()
		s.Clamp(b)
		c := s.Cursor()
		if c.Line < 0 || c.Line >= b.LineCount() {
			t.Fatalf("step %d: cursor line %d out of range", i, c.Line)
		}
		if c.Column < 0 || c.Column > b.LineLen(c.Line) {
			t.Fatalf("step %d: cursor column %d out of range", i, c.Column)
		}
	}
}
