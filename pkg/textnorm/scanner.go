package textnorm

// Run is a maximal sequence of class-eligible characters found by a scan.
// Start and End are half-open rune offsets into the scanned text.
type Run struct {
	Text  string `json:"text"`
	Start int    `json:"start_index"`
	End   int    `json:"end_index"`
}

// classSet is a compiled character class: ASCII letters and digits plus a
// caller-supplied set of extra runes.
type classSet map[rune]struct{}

func newClassSet(customChars string) classSet {
	set := make(classSet, len(customChars))
	for _, r := range customChars {
		set[r] = struct{}{}
	}
	return set
}

func (s classSet) contains(r rune) bool {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
		return true
	}
	_, ok := s[r]
	return ok
}

// scanRuns collects all maximal runs of runes satisfying pred, left to right.
func scanRuns(text string, pred func(rune) bool) []Run {
	runes := []rune(text)
	var runs []Run
	i := 0
	for i < len(runes) {
		if !pred(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && pred(runes[i]) {
			i++
		}
		runs = append(runs, Run{
			Text:  string(runes[start:i]),
			Start: start,
			End:   i,
		})
	}
	return runs
}

// DetectRuns finds all maximal runs of characters belonging to
// {ASCII letter, ASCII digit} ∪ customChars.
//
// Anchoring narrows which runs qualify: with startAnchored only a run
// beginning at offset 0 is returned; with endAnchored only a run ending at
// the buffer's end; with both set the entire buffer must be a single run.
// Runs are returned in left-to-right order.
func DetectRuns(text, customChars string, startAnchored, endAnchored bool) []Run {
	set := newClassSet(customChars)
	runs := scanRuns(text, set.contains)
	if !startAnchored && !endAnchored {
		return runs
	}

	textLen := len([]rune(text))
	var out []Run
	for _, run := range runs {
		if startAnchored && run.Start != 0 {
			continue
		}
		if endAnchored && run.End != textLen {
			continue
		}
		out = append(out, run)
	}
	return out
}

// DetectLetterRuns finds all maximal runs of ASCII letters.
func DetectLetterRuns(text string) []Run {
	return scanRuns(text, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
}

// DetectAlphanumericRuns finds all maximal runs of ASCII letters and digits.
func DetectAlphanumericRuns(text string) []Run {
	return scanRuns(text, classSet(nil).contains)
}

// IsAlphanumeric reports whether text is non-empty and consists solely of
// ASCII letters and digits.
func IsAlphanumeric(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !classSet(nil).contains(r) {
			return false
		}
	}
	return true
}

// IsSurrounded reports whether the substring at [start, end) is bounded by
// non-class characters: the rune immediately before start (if any) and the
// rune at end (if any) are both outside {letter, digit} ∪ customChars.
// Offsets are rune offsets; out-of-range intervals return false.
func IsSurrounded(text string, start, end int, customChars string) bool {
	runes := []rune(text)
	if start < 0 || end < start || end > len(runes) {
		return false
	}
	set := newClassSet(customChars)
	leftOK := start == 0 || !set.contains(runes[start-1])
	rightOK := end == len(runes) || !set.contains(runes[end])
	return leftOK && rightOK
}
