// Package buffer provides the line-oriented text buffer for a screenplay
// document.
//
// The buffer wraps an immutable rope and exposes character-addressed,
// line/column positions (columns count runes, not bytes). Every mutation
// validates its position or range before touching the rope, returns the
// span of lines it dirtied, and bumps the buffer revision.
//
// The buffer is the single owner of character data. Line addressing (the
// line index) is derived from rope metrics and is therefore always
// consistent with the text; it is never mutated independently.
package buffer
