package parser

import (
	"strings"
	"testing"
)

// sliceSource adapts a line slice to LineSource for tests.
type sliceSource []string

func (s sliceSource) LineCount() int          { return len(s) }
func (s sliceSource) LineText(i int) string   { return s[i] }
func (s *sliceSource) set(i int, text string) { (*s)[i] = text }

func parseAll(lines ...string) *Parser {
	p := New()
	src := sliceSource(lines)
	p.ReparseAll(&src)
	return p
}

func TestClassifyRules(t *testing.T) {
	tests := []struct {
		line string
		prev Kind
		want Kind
	}{
		{"INT. HOUSE - DAY", KindEmpty, KindSceneHeading},
		{"ext. alley - night", KindEmpty, KindSceneHeading},
		{"EST. CITY SKYLINE", KindEmpty, KindSceneHeading},
		{"I/E. CAR - DAY", KindEmpty, KindSceneHeading},
		{"CUT TO:", KindEmpty, KindTransition},
		{"SMASH CUT TO:", KindEmpty, KindTransition},
		{"FADE OUT.", KindEmpty, KindTransition},
		{"FADE TO BLACK.", KindEmpty, KindTransition},
		{"cut to:", KindEmpty, KindUnknown},
		{"JOHN", KindEmpty, KindCharacter},
		{"MRS. O'BRIEN-SMITH", KindEmpty, KindCharacter},
		{"JOHN (V.O.)", KindEmpty, KindCharacter},
		{"AGENT 47", KindEmpty, KindCharacter},
		{"JOHN:", KindEmpty, KindUnknown},           // colon suffix excluded
		{"A B C D E", KindEmpty, KindUnknown},       // too many words
		{strings.Repeat("A", 33), KindEmpty, KindUnknown}, // too long
		{"(quietly)", KindDialogue, KindParenthetical},
		{"(quietly)", KindCharacter, KindParenthetical},
		{"(quietly)", KindParenthetical, KindParenthetical},
		{"(quietly)", KindEmpty, KindUnknown}, // no speech context
		{"Hello there.", KindCharacter, KindDialogue},
		{"Hello there.", KindDialogue, KindDialogue},
		{"Hello there.", KindParenthetical, KindDialogue},
		{"Hello there.", KindEmpty, KindUnknown},
		{"Some action text.", KindAction, KindUnknown},
		{"", KindDialogue, KindEmpty},
		{"   \t ", KindCharacter, KindEmpty},
	}

	for _, tt := range tests {
		if got := Classify(tt.line, tt.prev); got != tt.want {
			t.Errorf("Classify(%q, %v): expected %v, got %v", tt.line, tt.prev, tt.want, got)
		}
	}
}

func TestHeadingBeatsCharacterHeuristic(t *testing.T) {
	// Upper-case and short, but the prefix wins.
	if got := Classify("INT. HOUSE", KindEmpty); got != KindSceneHeading {
		t.Errorf("expected scene heading, got %v", got)
	}
	if got := Classify("SMASH CUT TO:", KindEmpty); got != KindTransition {
		t.Errorf("expected transition, got %v", got)
	}
}

func TestResolveNeverYieldsUnknown(t *testing.T) {
	if KindUnknown.Resolve() != KindAction {
		t.Error("Unknown must resolve to Action")
	}
	for _, k := range []Kind{KindEmpty, KindSceneHeading, KindCharacter, KindDialogue, KindParenthetical, KindTransition, KindAction} {
		if k.Resolve() != k {
			t.Errorf("%v should resolve to itself", k)
		}
	}
}

func TestReparseAllFountainSubset(t *testing.T) {
	p := parseAll(
		"INT. COFFEE SHOP - DAY",
		"",
		"SARAH",
		"(smiling)",
		"It is just text.",
		"CUT TO:",
	)

	want := []Kind{
		KindSceneHeading,
		KindEmpty,
		KindCharacter,
		KindParenthetical,
		KindDialogue,
		KindTransition,
	}
	for i, k := range want {
		if got := p.Kind(i); got != k {
			t.Errorf("line %d: expected %v, got %v", i, k, got)
		}
	}
}

func TestEmptyLineResetsContext(t *testing.T) {
	p := parseAll(
		"JOHN",
		"Hello.",
		"",
		"He walks away.",
	)

	if got := p.Kind(1); got != KindDialogue {
		t.Errorf("line 1: expected dialogue, got %v", got)
	}
	if got := p.Kind(3); got != KindUnknown {
		t.Errorf("line after blank must not inherit speech context, got %v", got)
	}
}

func TestUppercaseAfterEmptyIsCharacter(t *testing.T) {
	p := parseAll(
		"",
		"RANDOM TEXT",
		"spoken words",
	)

	// The upper-case heuristic applies regardless of what follows.
	if got := p.Kind(1); got != KindCharacter {
		t.Errorf("expected character cue, got %v", got)
	}
	if got := p.Kind(2); got != KindDialogue {
		t.Errorf("expected dialogue under the cue, got %v", got)
	}
}

func TestApplyEditPropagatesToFixedPoint(t *testing.T) {
	src := sliceSource{
		"john",
		"some words",
		"more words",
		"",
		"unrelated text",
	}
	p := New()
	p.ReparseAll(&src)

	if p.Kind(0) != KindUnknown || p.Kind(1) != KindUnknown {
		t.Fatal("precondition: plain lines classify Unknown")
	}

	// Upper-casing line 0 turns it into a cue; the following lines
	// become dialogue until the blank line stops the propagation.
	src.set(0, "JOHN")
	first, last, ok := p.ApplyEdit(&src, 0, 0, 0)
	if !ok {
		t.Fatal("edit should change classifications")
	}
	if first != 0 || last != 2 {
		t.Errorf("expected changes in [0,2], got [%d,%d]", first, last)
	}

	want := []Kind{KindCharacter, KindDialogue, KindDialogue, KindEmpty, KindUnknown}
	for i, k := range want {
		if got := p.Kind(i); got != k {
			t.Errorf("line %d: expected %v, got %v", i, k, got)
		}
	}
}

func TestApplyEditStopsAtFirstUnchangedLine(t *testing.T) {
	src := sliceSource{
		"INT. HOUSE - DAY",
		"Action here.",
		"More action.",
	}
	p := New()
	p.ReparseAll(&src)

	// Editing the heading's text does not disturb the lines below.
	src.set(0, "INT. GARDEN - DAY")
	first, last, ok := p.ApplyEdit(&src, 0, 0, 0)
	if ok {
		t.Errorf("no classification changed, got changes in [%d,%d]", first, last)
	}
}

func TestApplyEditLineInsert(t *testing.T) {
	src := sliceSource{
		"JOHN",
		"Hello there.",
	}
	p := New()
	p.ReparseAll(&src)

	// Split line 1 at column 5: "Hello" / " there.".
	src = sliceSource{"JOHN", "Hello", " there."}
	_, _, _ = p.ApplyEdit(&src, 1, 2, 1)

	if p.LineCount() != 3 {
		t.Fatalf("table out of sync: %d lines", p.LineCount())
	}
	if p.Kind(1) != KindDialogue || p.Kind(2) != KindDialogue {
		t.Errorf("both halves should be dialogue, got %v / %v", p.Kind(1), p.Kind(2))
	}
}

func TestApplyEditLineDelete(t *testing.T) {
	src := sliceSource{
		"JOHN",
		"Hello there.",
		"",
		"Action.",
	}
	p := New()
	p.ReparseAll(&src)

	// Delete the cue line; the dialogue loses its context.
	src = sliceSource{"Hello there.", "", "Action."}
	first, _, ok := p.ApplyEdit(&src, 0, 0, -1)

	if p.LineCount() != 3 {
		t.Fatalf("table out of sync: %d lines", p.LineCount())
	}
	if !ok || first != 0 {
		t.Error("deleting the cue must reclassify the dialogue line")
	}
	if got := p.Kind(0); got != KindUnknown {
		t.Errorf("expected orphaned dialogue to become Unknown, got %v", got)
	}
}

func TestReparseIdempotent(t *testing.T) {
	lines := sliceSource{
		"INT. HOUSE - DAY",
		"",
		"JOHN",
		"(beat)",
		"Fine.",
		"CUT TO:",
	}
	p := New()
	p.ReparseAll(&lines)

	before := make([]Kind, lines.LineCount())
	for i := range before {
		before[i] = p.Kind(i)
	}

	// Reparsing unchanged content must not move anything.
	if _, _, ok := p.ApplyEdit(&lines, 0, lines.LineCount()-1, 0); ok {
		t.Error("reparse of unchanged lines reported changes")
	}
	for i := range before {
		if p.Kind(i) != before[i] {
			t.Errorf("line %d drifted from %v to %v", i, before[i], p.Kind(i))
		}
	}
}
