package main

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/fountainkit/internal/config"
	"github.com/dshills/fountainkit/internal/document"
	"github.com/dshills/fountainkit/internal/engine/buffer"
	"github.com/dshills/fountainkit/internal/metrics"
	"github.com/dshills/fountainkit/internal/parser"
	"github.com/dshills/fountainkit/internal/textio"
)

// cellAdvances measures glyphs in terminal cells: CJK and other wide
// runes advance two cells, everything else one.
type cellAdvances struct{}

func (cellAdvances) GlyphAdvance(font metrics.FontID, size, dpiScale float64, r rune) float64 {
	return float64(runewidth.RuneWidth(r))
}

// reloadEvent is posted into the tcell event loop when the open file
// changes on disk.
type reloadEvent struct {
	when    time.Time
	removed bool
}

func (e *reloadEvent) When() time.Time { return e.when }

type editor struct {
	cfg      config.Config
	doc      *document.Document
	screen   tcell.Screen
	watcher  *textio.Watcher
	path     string
	topLine  int
	modified bool
}

func (ed *editor) shutdown() {
	if ed.watcher != nil {
		ed.watcher.Close()
	}
	ed.screen.Fini()
}

// forwardReloads pushes watcher events into the tcell loop so all
// document access stays on the event goroutine.
func (ed *editor) forwardReloads() {
	for ev := range ed.watcher.Events() {
		_ = ed.screen.PostEvent(&reloadEvent{when: time.Now(), removed: ev.Removed})
	}
}

func (ed *editor) loop() error {
	for {
		ed.draw()

		switch ev := ed.screen.PollEvent().(type) {
		case *tcell.EventKey:
			quit, err := ed.handleKey(ev)
			if err != nil {
				log.Printf("edit failed: %v", err)
			}
			if quit {
				return nil
			}
		case *tcell.EventMouse:
			ed.handleMouse(ev)
		case *tcell.EventResize:
			ed.screen.Sync()
		case *reloadEvent:
			ed.handleReload(ev)
		case nil:
			return nil
		}
	}
}

func (ed *editor) handleKey(ev *tcell.EventKey) (quit bool, err error) {
	extend := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		return true, nil
	case tcell.KeyCtrlS:
		return false, ed.save()
	case tcell.KeyUp:
		ed.move(extend, -1, 0)
	case tcell.KeyDown:
		ed.move(extend, 1, 0)
	case tcell.KeyLeft:
		if extend {
			ed.doc.ExtendBy(0, -1)
		} else {
			ed.doc.MoveLeft()
		}
	case tcell.KeyRight:
		if extend {
			ed.doc.ExtendBy(0, 1)
		} else {
			ed.doc.MoveRight()
		}
	case tcell.KeyHome:
		ed.doc.MoveTo(ed.doc.Cursor().Line, 0)
	case tcell.KeyEnd:
		line := ed.doc.Cursor().Line
		ed.doc.MoveTo(line, len([]rune(ed.doc.LineText(line))))
	case tcell.KeyEnter:
		err = ed.edit(ed.doc.InsertNewline)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		err = ed.edit(ed.doc.Backspace)
	case tcell.KeyDelete:
		err = ed.edit(ed.doc.DeleteForward)
	case tcell.KeyTab:
		err = ed.edit(func() error { return ed.doc.InsertText("\t") })
	case tcell.KeyRune:
		r := ev.Rune()
		err = ed.edit(func() error { return ed.doc.InsertText(string(r)) })
	}

	ed.scrollToCursor()
	return false, err
}

func (ed *editor) move(extend bool, dLine, dCol int) {
	if extend {
		ed.doc.ExtendBy(dLine, dCol)
	} else {
		ed.doc.MoveBy(dLine, dCol)
	}
}

func (ed *editor) edit(op func() error) error {
	if err := op(); err != nil {
		return err
	}
	ed.modified = true
	return nil
}

func (ed *editor) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}

	x, y := ev.Position()
	line := ed.topLine + y
	if line >= ed.doc.LineCount() {
		line = ed.doc.LineCount() - 1
	}

	// The view indents each line per its kind; undo that before the
	// raw-column hit test.
	indent := document.Indent(ed.doc.Classification(line))
	docLine, col := ed.doc.Locate(float64(x-indent), float64(line))

	if ev.Modifiers()&tcell.ModShift != 0 {
		ed.doc.ExtendTo(docLine, col)
	} else {
		ed.doc.MoveTo(docLine, col)
	}
	ed.scrollToCursor()
}

func (ed *editor) handleReload(ev *reloadEvent) {
	if ev.removed {
		log.Printf("%s removed externally", ed.path)
		return
	}
	if ed.modified {
		// Local edits win; do not clobber them with the disk state.
		log.Printf("%s changed externally, keeping modified buffer", ed.path)
		return
	}

	text, err := textio.Load(ed.path)
	if err != nil {
		log.Printf("reload failed: %v", err)
		return
	}
	ed.doc.SetText(text)
	log.Printf("reloaded %s (%d lines)", ed.path, ed.doc.LineCount())
}

func (ed *editor) save() error {
	if ed.path == "" {
		return nil
	}
	if err := textio.Save(ed.path, ed.doc.Text()); err != nil {
		return err
	}
	ed.modified = false
	log.Printf("saved %s", ed.path)
	return nil
}

func (ed *editor) scrollToCursor() {
	_, height := ed.screen.Size()
	if height < 2 {
		return
	}
	visible := height - 1 // bottom row is the status line

	line := ed.doc.Cursor().Line
	if line < ed.topLine {
		ed.topLine = line
	}
	if line >= ed.topLine+visible {
		ed.topLine = line - visible + 1
	}
}

var kindStyles = map[parser.Kind]tcell.Style{
	parser.KindSceneHeading:  tcell.StyleDefault.Bold(true),
	parser.KindCharacter:     tcell.StyleDefault.Foreground(tcell.ColorYellow),
	parser.KindDialogue:      tcell.StyleDefault,
	parser.KindParenthetical: tcell.StyleDefault.Italic(true),
	parser.KindTransition:    tcell.StyleDefault.Foreground(tcell.ColorGray),
	parser.KindAction:        tcell.StyleDefault,
}

func (ed *editor) draw() {
	ed.screen.Clear()
	width, height := ed.screen.Size()
	if height < 2 {
		ed.screen.Show()
		return
	}
	visible := height - 1

	sel := ed.doc.Selection()
	selSpan := sel.Span()

	for row := 0; row < visible; row++ {
		line := ed.topLine + row
		if line >= ed.doc.LineCount() {
			break
		}

		kind := ed.doc.Classification(line)
		style := kindStyles[kind]
		text := ed.doc.ProcessedText(line)
		indent := document.Indent(kind)

		x := 0
		col := -indent // raw column of the cell being painted
		for _, r := range text {
			if x >= width {
				break
			}
			st := style
			if !sel.IsEmpty() && inSelection(selSpan, line, col) {
				st = st.Reverse(true)
			}
			ed.screen.SetContent(x, row, r, nil, st)
			x += runewidth.RuneWidth(r)
			col++
		}
	}

	ed.drawStatus(width, height-1)

	c := ed.doc.Cursor()
	if c.Line >= ed.topLine && c.Line < ed.topLine+visible {
		ed.screen.ShowCursor(ed.doc.ProcessedColumn(c.Line, c.Column), c.Line-ed.topLine)
	} else {
		ed.screen.HideCursor()
	}

	ed.screen.Show()
}

func inSelection(span buffer.Range, line, col int) bool {
	if col < 0 {
		return false
	}
	p := buffer.Point{Line: line, Column: col}
	return p.Compare(span.Start) >= 0 && p.Compare(span.End) < 0
}

func (ed *editor) drawStatus(width, row int) {
	c := ed.doc.Cursor()
	name := ed.path
	if name == "" {
		name = "[untitled]"
	}
	mark := ""
	if ed.modified {
		mark = " [+]"
	}

	status := name + mark
	pos := ed.doc.Classification(c.Line).String()

	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		ed.screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < width-len(pos)-1; x++ {
		ed.screen.SetContent(x, row, ' ', nil, style)
	}
	for _, r := range pos {
		if x >= width {
			break
		}
		ed.screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
