package rope

import "strings"

// Rope is an immutable rope. The zero value is an empty rope.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeaf("")}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}

	chunks := make([]string, 0, len(s)/maxLeafBytes+1)
	for len(s) > maxLeafBytes {
		cut := maxLeafBytes
		// Never split a UTF-8 sequence across leaves.
		for cut > 0 && s[cut]&0xC0 == 0x80 {
			cut--
		}
		if cut == 0 {
			cut = maxLeafBytes
		}
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	chunks = append(chunks, s)
	return Rope{root: buildBalanced(chunks)}
}

// Len returns the total byte length.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.sum.Bytes
}

// RuneCount returns the total number of runes.
func (r Rope) RuneCount() int {
	if r.root == nil {
		return 0
	}
	return r.root.sum.Runes
}

// LineCount returns the number of lines (newlines + 1).
// An empty rope has one (empty) line.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.sum.Lines + 1
}

// String returns the full text. Use sparingly on large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.root.sum.Bytes)
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in byte range [start, end), clamped to the rope.
func (r Rope) Slice(start, end int) string {
	if r.root == nil {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end > r.root.sum.Bytes {
		end = r.root.sum.Bytes
	}
	if start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.textInRange(&sb, start, end)
	return sb.String()
}

// Insert inserts text at the byte offset, returning a new rope.
// The offset is clamped to [0, Len].
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil || r.Len() == 0 {
		return FromString(text)
	}
	if offset <= 0 {
		return Rope{root: rebalanced(concatNodes(FromString(text).root, r.root))}
	}
	if offset >= r.Len() {
		return Rope{root: rebalanced(concatNodes(r.root, FromString(text).root))}
	}

	left, right := splitNode(r.root, offset)
	joined := concatNodes(concatNodes(left, FromString(text).root), right)
	return Rope{root: rebalanced(joined)}
}

// Delete removes the byte range [start, end), returning a new rope.
// The range is clamped to the rope.
func (r Rope) Delete(start, end int) Rope {
	if r.root == nil {
		return r
	}
	if start < 0 {
		start = 0
	}
	if end > r.Len() {
		end = r.Len()
	}
	if start >= end {
		return r
	}
	if start == 0 && end == r.Len() {
		return New()
	}
	if start == 0 {
		_, right := splitNode(r.root, end)
		return Rope{root: rebalanced(right)}
	}
	if end == r.Len() {
		left, _ := splitNode(r.root, start)
		return Rope{root: rebalanced(left)}
	}

	left, rest := splitNode(r.root, start)
	_, right := splitNode(rest, end-start)
	return Rope{root: rebalanced(concatNodes(left, right))}
}

// LineStartOffset returns the byte offset of the start of a line.
// Lines are 0-indexed; out-of-range lines map to Len.
func (r Rope) LineStartOffset(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line > r.root.sum.Lines {
		return r.root.sum.Bytes
	}
	return lineStartInNode(r.root, line)
}

// LineEndOffset returns the byte offset of the end of a line, not
// including its newline.
func (r Rope) LineEndOffset(line int) int {
	if r.root == nil {
		return 0
	}
	if line >= r.root.sum.Lines {
		return r.root.sum.Bytes
	}
	return r.LineStartOffset(line+1) - 1
}

// LineText returns the text of a line without its newline.
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}

// LineOfOffset returns the 0-indexed line containing the byte offset.
func (r Rope) LineOfOffset(offset int) int {
	if r.root == nil {
		return 0
	}
	return linesBeforeByte(r.root, offset)
}

// ByteForRune maps a rune index to a byte offset.
func (r Rope) ByteForRune(runeIdx int) int {
	if r.root == nil || runeIdx <= 0 {
		return 0
	}
	if runeIdx >= r.root.sum.Runes {
		return r.root.sum.Bytes
	}
	return byteForRuneInNode(r.root, runeIdx)
}

// RuneForByte maps a byte offset to a rune index.
func (r Rope) RuneForByte(byteIdx int) int {
	if r.root == nil || byteIdx <= 0 {
		return 0
	}
	if byteIdx >= r.root.sum.Bytes {
		return r.root.sum.Runes
	}
	return runeForByteInNode(r.root, byteIdx)
}

// Height returns the tree height. Useful for balance tests.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return r.root.height
}
