package dirty

import "sync"

// Consumer identifies one of the tracker's drain cursors.
type Consumer uint8

const (
	// ForParser is the incremental parser's drain cursor.
	ForParser Consumer = iota

	// ForRenderer is the host renderer's drain cursor.
	ForRenderer
)

// Tracker accumulates dirty line spans for both consumers.
type Tracker struct {
	mu      sync.Mutex
	pending [2][]LineSpan
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Mark records a span as dirty for both consumers.
func (t *Tracker) Mark(span LineSpan) {
	if span.IsEmpty() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.pending {
		t.pending[i] = appendSpan(t.pending[i], span)
	}
}

// MarkLine records a single line as dirty for both consumers.
func (t *Tracker) MarkLine(line int) {
	t.Mark(Line(line))
}

// MarkFor records a span as dirty for one consumer only. Used when the
// parser reclassifies lines past an edit: those need repainting but not
// another parse.
func (t *Tracker) MarkFor(c Consumer, span LineSpan) {
	if span.IsEmpty() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[c] = appendSpan(t.pending[c], span)
}

// ShiftLines adjusts pending marks when lines are inserted or deleted.
// Marks at or above from move by delta; a mark shifted below from is
// clamped to it, since the text that used to live there changed.
func (t *Tracker) ShiftLines(from, delta int) {
	if delta == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.pending {
		for j, s := range t.pending[i] {
			if s.Last < from {
				continue
			}
			if s.First >= from {
				s.First += delta
			}
			s.Last += delta
			if s.First < from && delta < 0 {
				s.First = from
			}
			if s.First < 0 {
				s.First = 0
			}
			if s.Last < s.First {
				s.Last = s.First
			}
			t.pending[i][j] = s
		}
	}
}

// Drain returns the coalesced spans marked since the consumer's last
// drain and clears its queue. The other consumer's queue is untouched.
func (t *Tracker) Drain(c Consumer) []LineSpan {
	t.mu.Lock()
	defer t.mu.Unlock()

	spans := coalesce(t.pending[c])
	if len(spans) == 0 {
		return nil
	}
	out := make([]LineSpan, len(spans))
	copy(out, spans)
	t.pending[c] = t.pending[c][:0]
	return out
}

// HasPending returns true if the consumer has undrained marks.
func (t *Tracker) HasPending(c Consumer) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending[c]) > 0
}

// IsLineDirty returns true if the line is pending for the consumer.
func (t *Tracker) IsLineDirty(c Consumer, line int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range t.pending[c] {
		if s.Contains(line) {
			return true
		}
	}
	return false
}

// appendSpan adds a span, merging eagerly with an existing overlapping
// or adjacent span when possible.
func appendSpan(spans []LineSpan, span LineSpan) []LineSpan {
	for i, s := range spans {
		if s.mergeable(span) {
			spans[i] = s.merge(span)
			return spans
		}
	}
	return append(spans, span)
}
