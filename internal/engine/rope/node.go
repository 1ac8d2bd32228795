package rope

import "strings"

const (
	// maxLeafBytes bounds the text held by a single leaf.
	maxLeafBytes = 256

	// heightSlack is the allowed excess over the ideal tree height
	// before a rebuild is triggered.
	heightSlack = 4
)

// node is either a leaf (children nil, text set) or an internal node
// (left/right set, text empty). Nodes are immutable once constructed.
type node struct {
	text   string
	left   *node
	right  *node
	sum    Summary
	height int
	leaves int
}

func newLeaf(text string) *node {
	return &node{
		text:   text,
		sum:    Summarize(text),
		height: 1,
		leaves: 1,
	}
}

func (n *node) isLeaf() bool {
	return n.left == nil
}

func newInternal(left, right *node) *node {
	h := left.height
	if right.height > h {
		h = right.height
	}
	return &node{
		left:   left,
		right:  right,
		sum:    left.sum.Add(right.sum),
		height: h + 1,
		leaves: left.leaves + right.leaves,
	}
}

// concatNodes joins two subtrees, merging adjacent small leaves.
func concatNodes(a, b *node) *node {
	if a == nil || a.sum.Bytes == 0 {
		return b
	}
	if b == nil || b.sum.Bytes == 0 {
		return a
	}
	if a.isLeaf() && b.isLeaf() && a.sum.Bytes+b.sum.Bytes <= maxLeafBytes {
		return newLeaf(a.text + b.text)
	}
	return newInternal(a, b)
}

// splitNode splits the subtree at a byte offset in (0, n.sum.Bytes).
func splitNode(n *node, offset int) (*node, *node) {
	if n.isLeaf() {
		return newLeaf(n.text[:offset]), newLeaf(n.text[offset:])
	}

	leftBytes := n.left.sum.Bytes
	switch {
	case offset < leftBytes:
		l, r := splitNode(n.left, offset)
		return l, concatNodes(r, n.right)
	case offset > leftBytes:
		l, r := splitNode(n.right, offset-leftBytes)
		return concatNodes(n.left, l), r
	default:
		return n.left, n.right
	}
}

// appendTo writes the subtree's text to the builder in order.
func (n *node) appendTo(sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		sb.WriteString(n.text)
		return
	}
	n.left.appendTo(sb)
	n.right.appendTo(sb)
}

// textInRange writes the text in byte range [start, end) to the builder.
// The range must already be clamped to the subtree.
func (n *node) textInRange(sb *strings.Builder, start, end int) {
	if n == nil || start >= end {
		return
	}
	if n.isLeaf() {
		if end > len(n.text) {
			end = len(n.text)
		}
		sb.WriteString(n.text[start:end])
		return
	}

	leftBytes := n.left.sum.Bytes
	if start < leftBytes {
		leftEnd := end
		if leftEnd > leftBytes {
			leftEnd = leftBytes
		}
		n.left.textInRange(sb, start, leftEnd)
	}
	if end > leftBytes {
		rightStart := start - leftBytes
		if rightStart < 0 {
			rightStart = 0
		}
		n.right.textInRange(sb, rightStart, end-leftBytes)
	}
}

// lineStartInNode returns the byte offset just past the nth newline.
// n must satisfy 1 <= line <= sum.Lines.
func lineStartInNode(n *node, line int) int {
	if n.isLeaf() {
		return findNthNewline(n.text, line) + 1
	}
	if n.left.sum.Lines >= line {
		return lineStartInNode(n.left, line)
	}
	return n.left.sum.Bytes + lineStartInNode(n.right, line-n.left.sum.Lines)
}

// byteForRuneInNode maps a rune index in [0, sum.Runes] to a byte offset.
func byteForRuneInNode(n *node, runeIdx int) int {
	if n.isLeaf() {
		return byteForRuneInString(n.text, runeIdx)
	}
	if runeIdx < n.left.sum.Runes {
		return byteForRuneInNode(n.left, runeIdx)
	}
	return n.left.sum.Bytes + byteForRuneInNode(n.right, runeIdx-n.left.sum.Runes)
}

// runeForByteInNode maps a byte offset in [0, sum.Bytes] to a rune index.
func runeForByteInNode(n *node, byteIdx int) int {
	if n.isLeaf() {
		return runeForByteInString(n.text, byteIdx)
	}
	if byteIdx < n.left.sum.Bytes {
		return runeForByteInNode(n.left, byteIdx)
	}
	return n.left.sum.Runes + runeForByteInNode(n.right, byteIdx-n.left.sum.Bytes)
}

// linesBeforeByte counts newlines in the byte range [0, byteIdx).
func linesBeforeByte(n *node, byteIdx int) int {
	if byteIdx <= 0 {
		return 0
	}
	if byteIdx >= n.sum.Bytes {
		return n.sum.Lines
	}
	if n.isLeaf() {
		count := 0
		for i := 0; i < byteIdx; i++ {
			if n.text[i] == '\n' {
				count++
			}
		}
		return count
	}
	if byteIdx <= n.left.sum.Bytes {
		return linesBeforeByte(n.left, byteIdx)
	}
	return n.left.sum.Lines + linesBeforeByte(n.right, byteIdx-n.left.sum.Bytes)
}

// collectLeafText appends each leaf's text to dst in order.
func collectLeafText(n *node, dst []string) []string {
	if n == nil {
		return dst
	}
	if n.isLeaf() {
		return append(dst, n.text)
	}
	dst = collectLeafText(n.left, dst)
	return collectLeafText(n.right, dst)
}

// buildBalanced constructs a balanced tree from leaf text bottom-up.
func buildBalanced(texts []string) *node {
	if len(texts) == 0 {
		return newLeaf("")
	}

	nodes := make([]*node, 0, len(texts))
	for _, t := range texts {
		nodes = append(nodes, newLeaf(t))
	}

	for len(nodes) > 1 {
		parents := make([]*node, 0, (len(nodes)+1)/2)
		for i := 0; i < len(nodes); i += 2 {
			if i+1 < len(nodes) {
				parents = append(parents, concatNodes(nodes[i], nodes[i+1]))
			} else {
				parents = append(parents, nodes[i])
			}
		}
		nodes = parents
	}
	return nodes[0]
}

// idealHeight is the height of a perfectly balanced tree with the given
// leaf count (a single leaf has height 1).
func idealHeight(leaves int) int {
	h := 1
	for n := 1; n < leaves; n *= 2 {
		h++
	}
	return h
}

// rebalanced returns an equivalent tree, rebuilt if the height has
// drifted too far from ideal. Repeated splits and concats at one end can
// skew the tree; the rebuild keeps edits O(log n) amortized.
func rebalanced(n *node) *node {
	if n == nil || n.isLeaf() {
		return n
	}
	if n.height <= idealHeight(n.leaves)+heightSlack {
		return n
	}
	return buildBalanced(packTexts(collectLeafText(n, nil)))
}

// packTexts greedily joins adjacent small texts so the rebuilt tree's
// leaf count stays proportional to total bytes rather than edit count.
func packTexts(texts []string) []string {
	packed := make([]string, 0, len(texts))
	var sb strings.Builder
	for _, t := range texts {
		if sb.Len()+len(t) > maxLeafBytes && sb.Len() > 0 {
			packed = append(packed, sb.String())
			sb.Reset()
		}
		if len(t) > maxLeafBytes {
			packed = append(packed, t)
			continue
		}
		sb.WriteString(t)
	}
	if sb.Len() > 0 {
		packed = append(packed, sb.String())
	}
	return packed
}
