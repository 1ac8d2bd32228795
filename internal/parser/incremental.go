package parser

// LineSource is the read-only view of the document the parser consumes.
// *buffer.Buffer satisfies it.
type LineSource interface {
	LineCount() int
	LineText(line int) string
}

// Parser keeps the classification table for one document.
type Parser struct {
	kinds []Kind
}

// New creates a parser with an empty table.
func New() *Parser {
	return &Parser{}
}

// Kind returns the stored classification of a line. Out-of-range lines
// report KindUnknown.
func (p *Parser) Kind(line int) Kind {
	if line < 0 || line >= len(p.kinds) {
		return KindUnknown
	}
	return p.kinds[line]
}

// LineCount returns the number of lines in the parse table.
func (p *Parser) LineCount() int {
	return len(p.kinds)
}

// ReparseAll rebuilds the whole table. Used at document load.
func (p *Parser) ReparseAll(src LineSource) {
	count := src.LineCount()
	p.kinds = make([]Kind, count)

	prev := KindEmpty
	for i := 0; i < count; i++ {
		k := Classify(src.LineText(i), prev)
		p.kinds[i] = k
		prev = k
	}
}

// ApplyEdit updates the table for an edit that dirtied the inclusive
// line span [first, last] and changed the document line count by delta.
// It reparses the dirty lines and then propagates downward until a
// line's classification stops changing, and returns the inclusive span
// of lines whose classification actually changed (ok is false when
// nothing changed).
func (p *Parser) ApplyEdit(src LineSource, first, last, delta int) (changedFirst, changedLast int, ok bool) {
	count := src.LineCount()
	if first < 0 {
		first = 0
	}
	if last >= count {
		last = count - 1
	}

	p.resize(first, delta, count)

	changedFirst, changedLast = -1, -1
	prev := KindEmpty
	if first > 0 {
		prev = p.kinds[first-1]
	}

	for i := first; i < count; i++ {
		k := Classify(src.LineText(i), prev)
		if i > last && k == p.kinds[i] {
			// Fixed point: this line and everything below it already
			// agree with their context.
			break
		}
		if k != p.kinds[i] {
			if changedFirst < 0 {
				changedFirst = i
			}
			changedLast = i
			p.kinds[i] = k
		}
		prev = k
	}

	return changedFirst, changedLast, changedFirst >= 0
}

// Resize reconciles the table length after an edit that changed the
// line count, without reclassifying anything. Inserted slots hold
// KindUnknown until a reparse covers them, so the table can stay in
// step with the buffer while classification is deferred.
func (p *Parser) Resize(first, delta, count int) {
	p.resize(first, delta, count)
}

// resize reconciles the table length with the buffer after an edit at
// first that changed the line count by delta. Inserted slots start as
// KindUnknown and are classified by the caller's reparse pass.
func (p *Parser) resize(first, delta, count int) {
	switch {
	case delta > 0:
		at := first
		if at > len(p.kinds) {
			at = len(p.kinds)
		}
		fresh := make([]Kind, delta)
		p.kinds = append(p.kinds[:at], append(fresh, p.kinds[at:]...)...)
	case delta < 0:
		at := first
		end := at - delta
		if end > len(p.kinds) {
			end = len(p.kinds)
		}
		if at > end {
			at = end
		}
		p.kinds = append(p.kinds[:at], p.kinds[end:]...)
	}

	// Guard against drift between table and buffer.
	if len(p.kinds) != count {
		p.kinds = make([]Kind, count)
	}
}
