package buffer

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// GraphemeStep returns the position one grapheme cluster away from pos
// in the given direction (negative is left, positive is right). Steps
// cross line boundaries: right from end of line lands at the start of
// the next line, left from column 0 at the end of the previous line.
// Stepping never lands inside a cluster, so a combining sequence or
// emoji moves as one unit.
func (b *Buffer) GraphemeStep(pos Point, dir int) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos = b.clampLocked(pos)
	if dir == 0 {
		return pos
	}

	line := b.rope.LineText(pos.Line)
	if dir > 0 {
		if pos.Column >= b.lineLenLocked(pos.Line) {
			if pos.Line+1 < b.rope.LineCount() {
				return Point{Line: pos.Line + 1, Column: 0}
			}
			return pos
		}
		rest := line[byteForColumn(line, pos.Column):]
		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
		return Point{Line: pos.Line, Column: pos.Column + utf8.RuneCountInString(cluster)}
	}

	if pos.Column == 0 {
		if pos.Line > 0 {
			return Point{Line: pos.Line - 1, Column: b.lineLenLocked(pos.Line - 1)}
		}
		return pos
	}

	// Walk cluster boundaries from the line start; the last boundary
	// before pos.Column is the landing column.
	prev := 0
	col := 0
	rest := line
	state := -1
	for len(rest) > 0 && col < pos.Column {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		prev = col
		col += utf8.RuneCountInString(cluster)
	}
	return Point{Line: pos.Line, Column: prev}
}

// byteForColumn returns the byte index of a rune column within a line.
func byteForColumn(line string, col int) int {
	if col <= 0 {
		return 0
	}
	n := 0
	for i := range line {
		if n == col {
			return i
		}
		n++
	}
	return len(line)
}
