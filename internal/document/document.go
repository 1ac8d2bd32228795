// Package document is the facade over the editing core. It owns one
// buffer, one cursor state, one dirty tracker, one parser, and the
// glyph geometry for a single open screenplay, and it enforces the edit
// transaction order: buffer mutation, then line index, then cursor
// re-clamp, then dirty marking, before control returns to the host.
package document

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/fountainkit/internal/engine/buffer"
	"github.com/dshills/fountainkit/internal/engine/cursor"
	"github.com/dshills/fountainkit/internal/engine/dirty"
	"github.com/dshills/fountainkit/internal/hittest"
	"github.com/dshills/fountainkit/internal/metrics"
	"github.com/dshills/fountainkit/internal/parser"
)

// ErrNoProvider reports construction without a glyph metrics provider.
// There is no heuristic fallback: geometry queries need real advances.
var ErrNoProvider = errors.New("glyph metrics provider required")

// Options configures a new document.
type Options struct {
	// Provider measures glyph advances. Required.
	Provider metrics.Provider

	// Font selects the measurement context for geometry queries.
	Font metrics.FontKey

	// LineHeight is the vertical extent of one line in pixels.
	// Defaults to 16 when unset.
	LineHeight float64
}

// Document is a single open screenplay.
type Document struct {
	id      uuid.UUID
	buf     *buffer.Buffer
	cursors *cursor.State
	tracker *dirty.Tracker
	parse   *parser.Parser
	glyphs  *metrics.Cache
	tester  *hittest.Tester
	font    metrics.FontKey
}

// New creates an empty document.
func New(opts Options) (*Document, error) {
	return FromText("", opts)
}

// FromText creates a document holding the given text, fully classified.
func FromText(text string, opts Options) (*Document, error) {
	if opts.Provider == nil {
		return nil, ErrNoProvider
	}
	if opts.LineHeight <= 0 {
		opts.LineHeight = 16
	}

	d := &Document{
		id:      uuid.New(),
		buf:     buffer.FromText(text),
		cursors: cursor.NewState(),
		tracker: dirty.NewTracker(),
		parse:   parser.New(),
		glyphs:  metrics.NewCache(opts.Provider),
		font:    opts.Font,
	}
	d.tester = hittest.New(d, opts.LineHeight)
	d.parse.ReparseAll(d.buf)
	return d, nil
}

// SessionID returns the document's unique session identifier.
func (d *Document) SessionID() string {
	return d.id.String()
}

// Text returns the full document text.
func (d *Document) Text() string { return d.buf.Text() }

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return d.buf.LineCount() }

// LineText returns the text of one line without its newline.
func (d *Document) LineText(line int) string { return d.buf.LineText(line) }

// CharCount returns the total character count.
func (d *Document) CharCount() int { return d.buf.CharCount() }

// Revision returns the buffer revision.
func (d *Document) Revision() buffer.Revision { return d.buf.Revision() }

// SetText replaces the whole document, reclassifies it, and moves the
// cursor to the start.
func (d *Document) SetText(text string) {
	span := d.buf.SetText(text)
	d.cursors.MoveTo(d.buf, 0, 0)

	d.parse.ReparseAll(d.buf)
	d.tracker.Drain(dirty.ForParser) // table is already current
	d.tracker.MarkFor(dirty.ForRenderer, dirty.Span(span.First, span.Last))
}

// EditKind selects the buffer operation an Edit performs.
type EditKind uint8

const (
	// EditInsert inserts Text at Pos.
	EditInsert EditKind = iota

	// EditNewline splits the line at Pos.
	EditNewline

	// EditDelete removes Range.
	EditDelete

	// EditBackspace deletes the character before Pos.
	EditBackspace

	// EditDeleteForward deletes the character at Pos.
	EditDeleteForward

	// EditJoinLines merges Line with the line below it.
	EditJoinLines
)

// Edit is one explicit-position edit operation.
type Edit struct {
	Kind  EditKind
	Pos   buffer.Point
	Range buffer.Range
	Text  string
	Line  int
}

// ApplyEdit runs one edit as a transaction. On error the document is
// unchanged; on success the cursor has moved to the edit's natural
// caret position and the dirtied lines are marked for both consumers.
func (d *Document) ApplyEdit(e Edit) (buffer.DirtySpan, error) {
	var (
		span  buffer.DirtySpan
		caret buffer.Point
		err   error
	)

	switch e.Kind {
	case EditInsert:
		span, err = d.buf.Insert(e.Pos, e.Text)
		caret = caretAfterInsert(e.Pos, e.Text)
	case EditNewline:
		span, err = d.buf.InsertNewline(e.Pos)
		caret = buffer.Point{Line: e.Pos.Line + 1, Column: 0}
	case EditDelete:
		r := e.Range.Normalize()
		span, err = d.buf.Delete(r)
		caret = r.Start
	case EditBackspace:
		caret, span, err = d.buf.Backspace(e.Pos)
	case EditDeleteForward:
		span, err = d.buf.DeleteForward(e.Pos)
		caret = e.Pos
	case EditJoinLines:
		caret = buffer.Point{Line: e.Line, Column: d.buf.LineLen(e.Line)}
		span, err = d.buf.JoinLines(e.Line)
	default:
		return buffer.DirtySpan{}, buffer.ErrInvalidEdit
	}

	if err != nil {
		return buffer.DirtySpan{}, err
	}

	d.finishEdit(span, caret)
	return span, nil
}

// finishEdit completes the transaction after a successful buffer
// mutation: cursor placement and re-clamp, then index shift and dirty
// marking. The rope updated its line index during the mutation, so by
// the time marks land every component agrees on line numbers.
func (d *Document) finishEdit(span buffer.DirtySpan, caret buffer.Point) {
	d.cursors.SetCaret(caret)
	d.cursors.Clamp(d.buf)

	if span.LineDelta != 0 {
		d.tracker.ShiftLines(span.First+1, span.LineDelta)
		d.parse.Resize(span.First, span.LineDelta, d.buf.LineCount())
	}
	d.tracker.Mark(dirty.Span(span.First, span.Last))
}

// caretAfterInsert returns where the caret lands after inserting text
// at pos.
func caretAfterInsert(pos buffer.Point, text string) buffer.Point {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		return buffer.Point{
			Line:   pos.Line + strings.Count(text, "\n"),
			Column: utf8.RuneCountInString(text[i+1:]),
		}
	}
	return buffer.Point{Line: pos.Line, Column: pos.Column + utf8.RuneCountInString(text)}
}

// InsertText inserts at the cursor, replacing any selection.
func (d *Document) InsertText(text string) error {
	if d.cursors.HasSelection() {
		if err := d.DeleteSelection(); err != nil {
			return err
		}
	}
	_, err := d.ApplyEdit(Edit{Kind: EditInsert, Pos: d.cursors.Cursor().Point(), Text: text})
	return err
}

// InsertNewline splits the line at the cursor, replacing any selection.
func (d *Document) InsertNewline() error {
	if d.cursors.HasSelection() {
		if err := d.DeleteSelection(); err != nil {
			return err
		}
	}
	_, err := d.ApplyEdit(Edit{Kind: EditNewline, Pos: d.cursors.Cursor().Point()})
	return err
}

// Backspace deletes backward from the cursor, or the selection if one
// exists.
func (d *Document) Backspace() error {
	if d.cursors.HasSelection() {
		return d.DeleteSelection()
	}
	_, err := d.ApplyEdit(Edit{Kind: EditBackspace, Pos: d.cursors.Cursor().Point()})
	return err
}

// DeleteForward deletes the character at the cursor, or the selection
// if one exists.
func (d *Document) DeleteForward() error {
	if d.cursors.HasSelection() {
		return d.DeleteSelection()
	}
	_, err := d.ApplyEdit(Edit{Kind: EditDeleteForward, Pos: d.cursors.Cursor().Point()})
	return err
}

// DeleteSelection removes the selected text. No-op without a selection.
func (d *Document) DeleteSelection() error {
	if !d.cursors.HasSelection() {
		return nil
	}
	_, err := d.ApplyEdit(Edit{Kind: EditDelete, Range: d.cursors.Span()})
	return err
}

// SelectedText returns the selection's text, empty when collapsed.
func (d *Document) SelectedText() string {
	if !d.cursors.HasSelection() {
		return ""
	}
	return d.buf.TextRange(d.cursors.Span())
}

// Cursor returns the head cursor.
func (d *Document) Cursor() cursor.Cursor { return d.cursors.Cursor() }

// Selection returns the current selection.
func (d *Document) Selection() cursor.Selection { return d.cursors.Selection() }

// MoveTo places the cursor, collapsing any selection.
func (d *Document) MoveTo(line, col int) { d.cursors.MoveTo(d.buf, line, col) }

// MoveBy moves the cursor by lines and columns; vertical motion
// follows the preferred column.
func (d *Document) MoveBy(deltaLine, deltaCol int) { d.cursors.MoveBy(d.buf, deltaLine, deltaCol) }

// ExtendTo grows the selection head to the given position.
func (d *Document) ExtendTo(line, col int) { d.cursors.ExtendTo(d.buf, line, col) }

// ExtendBy grows the selection head by lines and columns.
func (d *Document) ExtendBy(deltaLine, deltaCol int) { d.cursors.ExtendBy(d.buf, deltaLine, deltaCol) }

// Collapse drops the selection.
func (d *Document) Collapse() { d.cursors.Collapse() }

// MoveLeft moves one grapheme cluster left. With a selection active it
// collapses to the selection start instead.
func (d *Document) MoveLeft() {
	if d.cursors.HasSelection() {
		start := d.cursors.Span().Start
		d.cursors.MoveTo(d.buf, start.Line, start.Column)
		return
	}
	p := d.buf.GraphemeStep(d.cursors.Cursor().Point(), -1)
	d.cursors.SetCaret(p)
}

// MoveRight moves one grapheme cluster right. With a selection active
// it collapses to the selection end instead.
func (d *Document) MoveRight() {
	if d.cursors.HasSelection() {
		end := d.cursors.Span().End
		d.cursors.MoveTo(d.buf, end.Line, end.Column)
		return
	}
	p := d.buf.GraphemeStep(d.cursors.Cursor().Point(), 1)
	d.cursors.SetCaret(p)
}

// Classification returns the screenplay kind of a line. Unknown never
// escapes: unclassified lines surface as Action. Pending parse work is
// flushed first so the answer reflects the current text.
func (d *Document) Classification(line int) parser.Kind {
	if d.tracker.HasPending(dirty.ForParser) {
		d.ReparseDirty()
	}
	return d.parse.Kind(line).Resolve()
}

// ReparseDirty consumes the parser's dirty queue and brings the
// classification table up to date. Lines whose classification changed
// beyond the edited span are marked for the renderer.
func (d *Document) ReparseDirty() {
	for _, sp := range d.tracker.Drain(dirty.ForParser) {
		if first, last, ok := d.parse.ApplyEdit(d.buf, sp.First, sp.Last, 0); ok {
			d.tracker.MarkFor(dirty.ForRenderer, dirty.Span(first, last))
		}
	}
}

// DrainRender flushes pending parse work and returns the lines the
// renderer must repaint since its last drain.
func (d *Document) DrainRender() []dirty.LineSpan {
	d.ReparseDirty()
	return d.tracker.Drain(dirty.ForRenderer)
}

// NeedsRender returns true if undrained renderer marks exist.
func (d *Document) NeedsRender() bool {
	return d.tracker.HasPending(dirty.ForRenderer) || d.tracker.HasPending(dirty.ForParser)
}

// LineAdvances returns the cumulative glyph advances for a line under
// the document's font. Element i is the x offset of column i.
func (d *Document) LineAdvances(line int) []float64 {
	return d.glyphs.LineAdvances(d.font, d.buf.LineText(line))
}

// Locate maps a pixel coordinate to the nearest document position.
func (d *Document) Locate(x, y float64) (line, col int) {
	return d.tester.Locate(x, y)
}

// SetFont switches the measurement context. Geometry changes wholesale,
// so every line is marked for the renderer.
func (d *Document) SetFont(font metrics.FontKey, lineHeight float64) {
	d.font = font
	d.tester.SetLineHeight(lineHeight)
	d.tracker.MarkFor(dirty.ForRenderer, dirty.Span(0, d.buf.LineCount()-1))
}

// Metrics exposes the glyph cache, mainly for stats and invalidation.
func (d *Document) Metrics() *metrics.Cache { return d.glyphs }

// Font returns the active font key.
func (d *Document) Font() metrics.FontKey { return d.font }
