package parser

import "strings"

// sceneHeadingPrefixes are matched case-insensitively at line start.
var sceneHeadingPrefixes = []string{"INT.", "EXT.", "EST.", "INT/EXT.", "I/E."}

// fixedTransitions are complete transition lines that do not end in "TO:".
var fixedTransitions = []string{"CUT TO:", "FADE OUT.", "FADE TO BLACK."}

const (
	maxCharacterLen   = 32
	maxCharacterWords = 4
)

// Classify returns the kind of a line given the kind of the immediately
// preceding line. The rules apply in fixed priority order; scene-heading
// and transition patterns take precedence over the upper-case character
// heuristic.
func Classify(raw string, prev Kind) Kind {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		return KindEmpty
	}
	if isSceneHeading(trimmed) {
		return KindSceneHeading
	}
	if isTransition(trimmed) {
		return KindTransition
	}
	if isCharacter(trimmed) {
		return KindCharacter
	}
	if prev.speechContext() {
		if isParenthetical(trimmed) {
			return KindParenthetical
		}
		return KindDialogue
	}
	return KindUnknown
}

func isSceneHeading(line string) bool {
	upper := strings.ToUpper(line)
	for _, prefix := range sceneHeadingPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

// isTransition requires the line to already be upper-case; "cut to:" is
// dialogue or action, not a transition.
func isTransition(line string) bool {
	if line != strings.ToUpper(line) {
		return false
	}
	if strings.HasSuffix(line, " TO:") {
		return true
	}
	for _, t := range fixedTransitions {
		if line == t {
			return true
		}
	}
	return false
}

func isCharacter(line string) bool {
	runes := []rune(line)
	if len(runes) > maxCharacterLen {
		return false
	}

	words := len(strings.Fields(line))
	if words == 0 || words > maxCharacterWords {
		return false
	}

	for _, r := range runes {
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		if strings.ContainsRune(" .()'-", r) {
			continue
		}
		return false
	}

	return !strings.HasSuffix(line, ":")
}

func isParenthetical(line string) bool {
	return strings.HasPrefix(line, "(") && strings.HasSuffix(line, ")")
}
