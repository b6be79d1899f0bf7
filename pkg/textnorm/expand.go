package textnorm

import (
	"strings"
	"unicode/utf8"
)

// Expand greedily extends the first occurrence of substring inside text one
// rune at a time in both directions, as long as the adjacent rune belongs to
// {ASCII letter, ASCII digit} ∪ customChars.
//
// A prospective extension is rejected before it is accepted when the rune
// would land in forbiddenStart (leftward) or forbiddenEnd (rightward); a
// forbidden rune blocks that direction only. Expansion never crosses the
// buffer boundaries.
//
// If substring does not occur in text, Expand returns substring unchanged;
// a missing occurrence is a defined no-op, not an error.
func Expand(text, substring, customChars, forbiddenStart, forbiddenEnd string) string {
	byteIdx := strings.Index(text, substring)
	if byteIdx < 0 {
		return substring
	}

	set := newClassSet(customChars)
	forbidStart := newClassSet(forbiddenStart)
	forbidEnd := newClassSet(forbiddenEnd)

	runes := []rune(text)
	start := utf8.RuneCountInString(text[:byteIdx])
	end := start + utf8.RuneCountInString(substring)

	for start > 0 {
		prev := runes[start-1]
		if !set.contains(prev) {
			break
		}
		if _, forbidden := forbidStart[prev]; forbidden {
			break
		}
		start--
	}

	for end < len(runes) {
		next := runes[end]
		if !set.contains(next) {
			break
		}
		if _, forbidden := forbidEnd[next]; forbidden {
			break
		}
		end++
	}

	return string(runes[start:end])
}
