// Package cursor provides cursor and selection state for a screenplay
// document.
//
// A Cursor is a line/column position plus the preferred column remembered
// across vertical movement. A Selection is an anchor/head pair of cursors;
// when they coincide there is no selection. Both are plain value types;
// State wraps them with movement and clamping operations that consult the
// buffer's line index, so cursor state can never outlive the text it
// points into.
package cursor
