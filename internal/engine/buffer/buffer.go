package buffer

import (
	"errors"
	"strings"
	"sync"

	"github.com/dshills/fountainkit/internal/engine/rope"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfBounds reports a position or range outside the document.
	// The buffer is left unchanged.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrInvalidEdit reports a structurally malformed edit, such as an
	// inverted range. The buffer is left unchanged.
	ErrInvalidEdit = errors.New("invalid edit")
)

// Revision identifies a buffer state. Every mutation produces a new one.
type Revision uint64

// Buffer is the mutable, line-oriented text store for one document.
// All methods are safe for concurrent use.
type Buffer struct {
	mu       sync.RWMutex
	rope     rope.Rope
	revision Revision
}

// New creates an empty buffer holding a single empty line.
func New() *Buffer {
	return &Buffer{rope: rope.New()}
}

// FromText creates a buffer from raw text. CRLF and bare CR line endings
// are normalized to LF at ingest, matching what serialization emits.
func FromText(text string) *Buffer {
	return &Buffer{rope: rope.FromString(normalizeNewlines(text))}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Text returns the full document as LF-delimited plain text.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// SetText replaces the entire document. The returned span covers every
// line of the new document.
func (b *Buffer) SetText(text string) DirtySpan {
	b.mu.Lock()
	defer b.mu.Unlock()

	oldLines := b.rope.LineCount()
	b.rope = rope.FromString(normalizeNewlines(text))
	b.revision++

	newLines := b.rope.LineCount()
	return DirtySpan{First: 0, Last: newLines - 1, LineDelta: newLines - oldLines}
}

// Revision returns the current buffer revision.
func (b *Buffer) Revision() Revision {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineCount returns the number of lines. Never less than 1.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineCount()
}

// CharCount returns the total number of characters (runes), counting
// each newline as one.
func (b *Buffer) CharCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.RuneCount()
}

// LineText returns the text of a line without its newline. Out-of-range
// lines yield the empty string.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= b.rope.LineCount() {
		return ""
	}
	return b.rope.LineText(line)
}

// LineLen returns the length of a line in characters, excluding the
// newline. Out-of-range lines yield 0.
func (b *Buffer) LineLen(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineLenLocked(line)
}

func (b *Buffer) lineLenLocked(line int) int {
	if line < 0 || line >= b.rope.LineCount() {
		return 0
	}
	start := b.rope.LineStartOffset(line)
	end := b.rope.LineEndOffset(line)
	return b.rope.RuneForByte(end) - b.rope.RuneForByte(start)
}

// LineStartChar returns the character offset at which a line begins.
func (b *Buffer) LineStartChar(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.RuneForByte(b.rope.LineStartOffset(line))
}

// PointToChar converts a line/column point to an absolute character
// offset. The point is clamped first.
func (b *Buffer) PointToChar(p Point) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p = b.clampLocked(p)
	return b.rope.RuneForByte(b.pointToByteLocked(p))
}

// CharToPoint converts an absolute character offset to a line/column
// point. The offset is clamped to the document.
func (b *Buffer) CharToPoint(char int) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	byteOff := b.rope.ByteForRune(char)
	line := b.rope.LineOfOffset(byteOff)
	lineStart := b.rope.LineStartOffset(line)
	return Point{
		Line:   line,
		Column: b.rope.RuneForByte(byteOff) - b.rope.RuneForByte(lineStart),
	}
}

// ClampPoint clamps a point to the nearest valid position: the line to
// the last line, the column to that line's length.
func (b *Buffer) ClampPoint(p Point) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.clampLocked(p)
}

func (b *Buffer) clampLocked(p Point) Point {
	if p.Line < 0 {
		p.Line = 0
	}
	if last := b.rope.LineCount() - 1; p.Line > last {
		p.Line = last
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if maxCol := b.lineLenLocked(p.Line); p.Column > maxCol {
		p.Column = maxCol
	}
	return p
}

// pointToByteLocked converts a valid point to a byte offset.
func (b *Buffer) pointToByteLocked(p Point) int {
	lineStart := b.rope.LineStartOffset(p.Line)
	startRune := b.rope.RuneForByte(lineStart)
	return b.rope.ByteForRune(startRune + p.Column)
}

// validLocked reports whether p addresses an existing position.
func (b *Buffer) validLocked(p Point) bool {
	if p.Line < 0 || p.Line >= b.rope.LineCount() {
		return false
	}
	return p.Column >= 0 && p.Column <= b.lineLenLocked(p.Line)
}

// Insert inserts text at a position. Newlines in the text split lines.
// The position must be valid or the edit is rejected with ErrOutOfBounds
// before any mutation.
func (b *Buffer) Insert(pos Point, text string) (DirtySpan, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validLocked(pos) {
		return DirtySpan{}, ErrOutOfBounds
	}
	if text == "" {
		return DirtySpan{First: pos.Line, Last: pos.Line}, nil
	}

	text = normalizeNewlines(text)
	b.rope = b.rope.Insert(b.pointToByteLocked(pos), text)
	b.revision++

	newlines := strings.Count(text, "\n")
	return DirtySpan{
		First:     pos.Line,
		Last:      pos.Line + newlines,
		LineDelta: newlines,
	}, nil
}

// InsertNewline splits the line at the position. The original line and
// the newly created line are both dirtied.
func (b *Buffer) InsertNewline(pos Point) (DirtySpan, error) {
	return b.Insert(pos, "\n")
}

// Delete removes the text in the range. An inverted range is rejected
// with ErrInvalidEdit; endpoints outside the document with
// ErrOutOfBounds. No partial application occurs.
func (b *Buffer) Delete(r Range) (DirtySpan, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.Start.Compare(r.End) > 0 {
		return DirtySpan{}, ErrInvalidEdit
	}
	if !b.validLocked(r.Start) || !b.validLocked(r.End) {
		return DirtySpan{}, ErrOutOfBounds
	}
	if r.IsEmpty() {
		return DirtySpan{First: r.Start.Line, Last: r.Start.Line}, nil
	}

	start := b.pointToByteLocked(r.Start)
	end := b.pointToByteLocked(r.End)
	b.rope = b.rope.Delete(start, end)
	b.revision++

	// Whatever the range spanned collapses into the start line.
	return DirtySpan{
		First:     r.Start.Line,
		Last:      r.Start.Line,
		LineDelta: r.Start.Line - r.End.Line,
	}, nil
}

// JoinLines merges the given line with the one below it by removing the
// separating newline. Joining the last line is rejected.
func (b *Buffer) JoinLines(line int) (DirtySpan, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if line < 0 || line >= b.rope.LineCount()-1 {
		return DirtySpan{}, ErrOutOfBounds
	}

	nl := b.rope.LineEndOffset(line)
	b.rope = b.rope.Delete(nl, nl+1)
	b.revision++

	return DirtySpan{First: line, Last: line, LineDelta: -1}, nil
}

// Backspace deletes the character before the position, joining with the
// previous line at column 0. It returns the resulting caret position.
// At the start of the document it is a no-op.
func (b *Buffer) Backspace(pos Point) (Point, DirtySpan, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validLocked(pos) {
		return pos, DirtySpan{}, ErrOutOfBounds
	}

	if pos.Column > 0 {
		start := b.pointToByteLocked(Point{Line: pos.Line, Column: pos.Column - 1})
		end := b.pointToByteLocked(pos)
		b.rope = b.rope.Delete(start, end)
		b.revision++
		return Point{Line: pos.Line, Column: pos.Column - 1},
			DirtySpan{First: pos.Line, Last: pos.Line}, nil
	}

	if pos.Line == 0 {
		return pos, DirtySpan{First: 0, Last: 0}, nil
	}

	prevLen := b.lineLenLocked(pos.Line - 1)
	nl := b.rope.LineEndOffset(pos.Line - 1)
	b.rope = b.rope.Delete(nl, nl+1)
	b.revision++

	return Point{Line: pos.Line - 1, Column: prevLen},
		DirtySpan{First: pos.Line - 1, Last: pos.Line - 1, LineDelta: -1}, nil
}

// DeleteForward deletes the character at the position, joining with the
// next line at end of line. At the end of the document it is a no-op.
func (b *Buffer) DeleteForward(pos Point) (DirtySpan, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validLocked(pos) {
		return DirtySpan{}, ErrOutOfBounds
	}

	if pos.Column < b.lineLenLocked(pos.Line) {
		start := b.pointToByteLocked(pos)
		end := b.pointToByteLocked(Point{Line: pos.Line, Column: pos.Column + 1})
		b.rope = b.rope.Delete(start, end)
		b.revision++
		return DirtySpan{First: pos.Line, Last: pos.Line}, nil
	}

	if pos.Line >= b.rope.LineCount()-1 {
		return DirtySpan{First: pos.Line, Last: pos.Line}, nil
	}

	nl := b.rope.LineEndOffset(pos.Line)
	b.rope = b.rope.Delete(nl, nl+1)
	b.revision++
	return DirtySpan{First: pos.Line, Last: pos.Line, LineDelta: -1}, nil
}

// TextRange returns the text between two points, including any newlines
// the range spans. Points are clamped.
func (b *Buffer) TextRange(r Range) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r = r.Normalize()
	start := b.pointToByteLocked(b.clampLocked(r.Start))
	end := b.pointToByteLocked(b.clampLocked(r.End))
	return b.rope.Slice(start, end)
}
