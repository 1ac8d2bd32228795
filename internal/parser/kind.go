// Package parser classifies screenplay lines and keeps the per-line
// classification table current as the document changes.
//
// Classification is a pure function of a line's content and the kind of
// the immediately preceding line, so reparsing any line is reproducible
// from its neighbors alone. After an edit the parser re-evaluates the
// dirtied lines and then continues downward only while classifications
// keep changing, which bounds reparse cost to an edit-local neighborhood.
package parser

// Kind is the screenplay-structural classification of one line.
type Kind uint8

const (
	// KindUnknown marks a line no rule matched. It is internal to the
	// parse table; consumers surface it as KindAction via Resolve.
	KindUnknown Kind = iota

	// KindEmpty is a blank or whitespace-only line.
	KindEmpty

	// KindSceneHeading is a slugline such as "INT. HOUSE - DAY".
	KindSceneHeading

	// KindAction is ordinary description text.
	KindAction

	// KindCharacter is an upper-case speaker cue.
	KindCharacter

	// KindDialogue is a spoken line following a character cue.
	KindDialogue

	// KindParenthetical is a performance direction such as "(quietly)".
	KindParenthetical

	// KindTransition is a scene transition such as "CUT TO:".
	KindTransition
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindEmpty:
		return "empty"
	case KindSceneHeading:
		return "scene-heading"
	case KindAction:
		return "action"
	case KindCharacter:
		return "character"
	case KindDialogue:
		return "dialogue"
	case KindParenthetical:
		return "parenthetical"
	case KindTransition:
		return "transition"
	default:
		return "invalid"
	}
}

// Resolve maps the internal Unknown kind to Action for external
// consumers. All other kinds pass through.
func (k Kind) Resolve() Kind {
	if k == KindUnknown {
		return KindAction
	}
	return k
}

// speechContext returns true if a line of this kind carries dialogue
// context onto the next line. Empty deliberately does not: a blank line
// resets the context.
func (k Kind) speechContext() bool {
	return k == KindCharacter || k == KindDialogue || k == KindParenthetical
}
