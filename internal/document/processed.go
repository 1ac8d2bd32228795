package document

import (
	"strings"

	"github.com/dshills/fountainkit/internal/parser"
)

// Indent returns the formatted-view indent, in columns, for a
// classification. The values follow standard screenplay layout on a
// monospaced page.
func Indent(k parser.Kind) int {
	switch k {
	case parser.KindSceneHeading:
		return 2
	case parser.KindCharacter:
		return 24
	case parser.KindParenthetical:
		return 18
	case parser.KindDialogue:
		return 12
	case parser.KindTransition:
		return 40
	default:
		return 0
	}
}

// ProcessedText returns the formatted-view rendition of a line:
// indented per its classification, with sluglines, transitions, and
// character cues upper-cased.
func (d *Document) ProcessedText(line int) string {
	k := d.Classification(line)
	text := d.buf.LineText(line)

	switch k {
	case parser.KindSceneHeading, parser.KindTransition, parser.KindCharacter:
		text = strings.ToUpper(text)
	}
	if text == "" {
		return ""
	}
	return strings.Repeat(" ", Indent(k)) + text
}

// ProcessedColumn maps a raw column on a line to its column in the
// formatted view.
func (d *Document) ProcessedColumn(line, col int) int {
	return Indent(d.Classification(line)) + col
}
