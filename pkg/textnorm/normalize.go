// Package textnorm implements deterministic text canonicalization and
// character-class scanning primitives. Every function in this package is
// pure and total: no I/O, no shared state, no failure modes on well-formed
// string input. All offsets produced or consumed here are half-open
// codepoint (rune) offsets, not byte offsets.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// nonBreakingSpaces are removed outright during normalization, not replaced.
var nonBreakingSpaces = map[rune]struct{}{
	'\u00A0': {}, // no-break space
	'\u2007': {}, // figure space
	'\u202F': {}, // narrow no-break space
}

// invisibleRunes are stripped during normalization: zero-width characters,
// the byte-order mark, and bidi control characters.
var invisibleRunes = map[rune]struct{}{
	'\u200B': {}, // zero width space
	'\u200C': {}, // zero width non-joiner
	'\u200D': {}, // zero width joiner
	'\uFEFF': {}, // byte order mark
	'\u202A': {}, // left-to-right embedding
	'\u202B': {}, // right-to-left embedding
	'\u202C': {}, // pop directional formatting
	'\u202D': {}, // left-to-right override
	'\u202E': {}, // right-to-left override
}

// spaceVariants are mapped to a plain ASCII space during normalization.
var spaceVariants = map[rune]struct{}{
	'\u3000': {}, // ideographic space
	'\u00A0': {}, // no-break space
	'\u2000': {}, // en quad
	'\u2001': {}, // em quad
	'\u2002': {}, // en space
	'\u2003': {}, // em space
	'\u2004': {}, // three-per-em space
	'\u2005': {}, // four-per-em space
	'\u2006': {}, // six-per-em space
	'\u2007': {}, // figure space
	'\u2008': {}, // punctuation space
	'\u2009': {}, // thin space
	'\u200A': {}, // hair space
	'\u202F': {}, // narrow no-break space
	'\u205F': {}, // medium mathematical space
	'\u2060': {}, // word joiner
}

// FoldWidth folds fullwidth and other compatibility forms to their standard
// equivalents via Unicode NFKC normalization.
func FoldWidth(s string) string {
	return norm.NFKC.String(s)
}

// StripNonBreakingSpaces removes non-breaking space code points entirely.
func StripNonBreakingSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if _, ok := nonBreakingSpaces[r]; ok {
			return -1
		}
		return r
	}, s)
}

// StripInvisible removes zero-width characters, the byte-order mark, bidi
// control characters, and ASCII control characters (0x00-0x1F, 0x7F).
func StripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		if _, ok := invisibleRunes[r]; ok {
			return -1
		}
		if r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, s)
}

// MapSpaceVariants maps Unicode space variants to the plain ASCII space.
func MapSpaceVariants(s string) string {
	return strings.Map(func(r rune) rune {
		if _, ok := spaceVariants[r]; ok {
			return ' '
		}
		return r
	}, s)
}

// CollapseSpaces collapses runs of two or more ASCII spaces into one.
// Only the ASCII space is collapsed; other whitespace passes through.
func CollapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if r == ' ' {
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize converts arbitrary input text into the canonical form used for
// character-class scanning. The steps run in a fixed order; each assumes the
// output form of the previous one:
//
//  1. width/compatibility folding (NFKC)
//  2. non-breaking space removal
//  3. lowercasing
//  4. invisible-character removal
//  5. space-variant mapping
//  6. space collapsing
//  7. trim
//
// Normalize is pure, total, deterministic, and idempotent.
func Normalize(s string) string {
	s = FoldWidth(s)
	s = StripNonBreakingSpaces(s)
	s = strings.ToLower(s)
	s = StripInvisible(s)
	s = MapSpaceVariants(s)
	s = CollapseSpaces(s)
	return strings.TrimSpace(s)
}
