// Package entity resolves entity spans in free text: candidate spans are
// produced by a pluggable recognizer (or a character-class fallback scan),
// greedily expanded to their maximal extent, and optionally rewritten by a
// pluggable corrector.
package entity

import (
	"encoding/json"
	"fmt"
)

// Kind records how a span reached its final form.
type Kind int

const (
	// KindRecognized marks a span produced by the recognizer and kept as-is.
	KindRecognized Kind = iota
	// KindDetected marks a span produced by the fallback character-class scan.
	KindDetected
	// KindCorrected marks a span whose text was rewritten by the corrector.
	KindCorrected
)

var kindNames = map[Kind]string{
	KindRecognized: "recognized",
	KindDetected:   "detected",
	KindCorrected:  "corrected",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown span kind %q", name)
}

// Span is an entity occurrence inside a normalized buffer. Start and End
// are half-open rune offsets into the buffer the span was resolved against.
type Span struct {
	Text  string `json:"text"`
	Start int    `json:"start_index"`
	End   int    `json:"end_index"`
	Kind  Kind   `json:"kind"`
}

// Len returns the span's width in runes.
func (s Span) Len() int { return s.End - s.Start }

// Overlaps reports whether the two half-open intervals intersect.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && s.End > other.Start
}
