package rope

import "unicode/utf8"

// Summary holds aggregated metrics for a span of text.
// It forms a monoid under Add with Summary{} as identity, which is what
// lets internal nodes answer line and rune queries without scanning text.
type Summary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Runes is the Unicode code point count.
	Runes int

	// Lines is the number of newline characters.
	Lines int
}

// Add combines two summaries for adjacent spans.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Bytes: s.Bytes + other.Bytes,
		Runes: s.Runes + other.Runes,
		Lines: s.Lines + other.Lines,
	}
}

// IsZero returns true if the summary describes empty text.
func (s Summary) IsZero() bool {
	return s.Bytes == 0
}

// Summarize computes the metrics for a string.
func Summarize(text string) Summary {
	var sum Summary
	sum.Bytes = len(text)
	for _, r := range text {
		sum.Runes++
		if r == '\n' {
			sum.Lines++
		}
	}
	return sum
}

// findNthNewline returns the byte index of the nth newline (1-indexed),
// or -1 if the string contains fewer newlines.
func findNthNewline(text string, n int) int {
	if n <= 0 {
		return -1
	}
	count := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			count++
			if count == n {
				return i
			}
		}
	}
	return -1
}

// byteForRuneInString returns the byte index of the given rune index.
// A rune index past the end maps to len(text).
func byteForRuneInString(text string, runeIdx int) int {
	if runeIdx <= 0 {
		return 0
	}
	count := 0
	for i := range text {
		if count == runeIdx {
			return i
		}
		count++
	}
	return len(text)
}

// runeForByteInString returns the rune index of the given byte offset.
func runeForByteInString(text string, byteIdx int) int {
	if byteIdx <= 0 {
		return 0
	}
	if byteIdx > len(text) {
		byteIdx = len(text)
	}
	return utf8.RuneCountInString(text[:byteIdx])
}
