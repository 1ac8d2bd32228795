// Package dirty tracks the set of lines invalidated by edits.
//
// One mark set feeds two independent consumers: the incremental parser
// and the host renderer drain on their own cadence, so each consumer has
// its own pending queue and a drain returns exactly the lines marked
// since that consumer's last drain.
package dirty

// LineSpan is an inclusive range of line indices.
type LineSpan struct {
	First int
	Last  int
}

// Span creates a line span, swapping the bounds if needed.
func Span(first, last int) LineSpan {
	if last < first {
		first, last = last, first
	}
	return LineSpan{First: first, Last: last}
}

// Line creates a span covering a single line.
func Line(line int) LineSpan {
	return LineSpan{First: line, Last: line}
}

// IsEmpty returns true if the span covers no lines.
func (s LineSpan) IsEmpty() bool {
	return s.Last < s.First
}

// Count returns the number of lines covered.
func (s LineSpan) Count() int {
	if s.IsEmpty() {
		return 0
	}
	return s.Last - s.First + 1
}

// Contains returns true if the span covers the given line.
func (s LineSpan) Contains(line int) bool {
	return line >= s.First && line <= s.Last
}

// mergeable returns true if the spans overlap or touch.
func (s LineSpan) mergeable(other LineSpan) bool {
	return s.First <= other.Last+1 && other.First <= s.Last+1
}

// merge returns the union of two overlapping or adjacent spans.
func (s LineSpan) merge(other LineSpan) LineSpan {
	if other.First < s.First {
		s.First = other.First
	}
	if other.Last > s.Last {
		s.Last = other.Last
	}
	return s
}

// coalesce merges overlapping and adjacent spans in place and returns
// the compacted slice sorted by first line.
func coalesce(spans []LineSpan) []LineSpan {
	if len(spans) <= 1 {
		return spans
	}

	// Insertion sort; the queues stay small between drains.
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].First < spans[j-1].First; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}

	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if last.mergeable(s) {
			*last = last.merge(s)
		} else {
			out = append(out, s)
		}
	}
	return out
}
