package entity

import "context"

// Recognizer produces candidate spans for a normalized buffer. Offsets in
// the returned spans are rune offsets into text. Returning an empty slice
// is not an error; it switches the resolver to its fallback scan.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Span, error)
}

// RecognizerFunc adapts a plain function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, text string) ([]Span, error)

func (f RecognizerFunc) Recognize(ctx context.Context, text string) ([]Span, error) {
	return f(ctx, text)
}

// Corrector may rewrite a span after expansion. It receives the original
// span text, the expanded text, and the original rune interval; returning
// nil means "leave the span alone".
type Corrector interface {
	Correct(ctx context.Context, original, expanded string, start, end int) (*Span, error)
}

// CorrectorFunc adapts a plain function to the Corrector interface.
type CorrectorFunc func(ctx context.Context, original, expanded string, start, end int) (*Span, error)

func (f CorrectorFunc) Correct(ctx context.Context, original, expanded string, start, end int) (*Span, error) {
	return f(ctx, original, expanded, start, end)
}
