package entity

import (
	"unicode/utf8"

	"github.com/NolinearTang/data-correct/pkg/errors"
)

// ClassConfig parameterizes the character class used for the fallback scan
// and for span expansion. The effective class is always
// {ASCII letter, ASCII digit} ∪ CustomChars.
type ClassConfig struct {
	// CustomChars lists extra runes that belong to the entity class,
	// e.g. "_-" for identifier-like entities.
	CustomChars string `json:"custom_chars" mapstructure:"custom_chars"`

	// ForbiddenStartChars blocks leftward expansion: growth in that
	// direction stops before a rune in this set is taken.
	ForbiddenStartChars string `json:"forbidden_start_chars" mapstructure:"forbidden_start_chars"`

	// ForbiddenEndChars blocks rightward expansion the same way.
	ForbiddenEndChars string `json:"forbidden_end_chars" mapstructure:"forbidden_end_chars"`

	// StartAnchored restricts the fallback scan to a run beginning at
	// offset zero.
	StartAnchored bool `json:"start_anchored" mapstructure:"start_anchored"`

	// EndAnchored restricts the fallback scan to a run ending at the end
	// of the buffer.
	EndAnchored bool `json:"end_anchored" mapstructure:"end_anchored"`
}

// Validate rejects configs whose character sets are not well-formed UTF-8.
func (c ClassConfig) Validate() error {
	for _, s := range []struct {
		name  string
		value string
	}{
		{"custom_chars", c.CustomChars},
		{"forbidden_start_chars", c.ForbiddenStartChars},
		{"forbidden_end_chars", c.ForbiddenEndChars},
	} {
		if !utf8.ValidString(s.value) {
			return errors.Newf(errors.ErrCodeInvalidCharClass, "%s is not valid UTF-8", s.name)
		}
	}
	return nil
}
