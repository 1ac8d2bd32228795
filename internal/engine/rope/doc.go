// Package rope provides an immutable rope for screenplay text storage.
//
// The rope is a height-balanced binary tree whose leaves hold short text
// chunks and whose internal nodes carry aggregated metrics (bytes, runes,
// newlines). Edits split and rejoin the tree, so insertion and deletion are
// O(log n) in document size and never touch text outside the edited region.
//
// Operations return new Rope values; the original is never modified. This
// keeps snapshots cheap and makes concurrent reads safe.
//
// Positions at this layer are byte offsets. Line and rune addressing is
// derived from the node metrics; the buffer package layers character-column
// positions on top.
package rope
