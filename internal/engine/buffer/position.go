package buffer

import "fmt"

// Point is a line and column position. Both are 0-indexed and the column
// counts runes from the start of the line.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// Range is a span of text between two points. Start must not come after
// End; use Normalize to order an arbitrary pair.
type Range struct {
	Start Point
	End   Point
}

// Normalize returns the range with Start <= End.
func (r Range) Normalize() Range {
	if r.Start.Compare(r.End) > 0 {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// IsEmpty returns true if the range spans no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s]", r.Start, r.End)
}

// DirtySpan is the inclusive span of lines invalidated by an edit,
// together with the change in total line count. Lines above Last shift
// by LineDelta; lines below First are unaffected.
type DirtySpan struct {
	First     int
	Last      int
	LineDelta int
}

// Union merges two dirty spans into one covering both.
func (d DirtySpan) Union(other DirtySpan) DirtySpan {
	out := d
	if other.First < out.First {
		out.First = other.First
	}
	if other.Last > out.Last {
		out.Last = other.Last
	}
	out.LineDelta += other.LineDelta
	return out
}
