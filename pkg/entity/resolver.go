package entity

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/NolinearTang/data-correct/internal/infrastructure/monitoring/logging"
	"github.com/NolinearTang/data-correct/pkg/errors"
	"github.com/NolinearTang/data-correct/pkg/textnorm"
)

// ---------------------------------------------------------------------------
// Resolver
// ---------------------------------------------------------------------------

// Resolver normalizes a query and resolves its entity spans.
//
// A resolver is stateless apart from its logger and metrics sink and is safe
// for concurrent use.
type Resolver struct {
	logger  logging.Logger
	metrics Metrics
}

// NewResolver builds a Resolver. A nil logger or metrics sink is replaced
// with a no-op implementation.
func NewResolver(logger logging.Logger, metrics Metrics) *Resolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = NewNopMetrics()
	}
	return &Resolver{
		logger:  logger.Named("entity.resolver"),
		metrics: metrics,
	}
}

// Resolve normalizes query and returns the normalized buffer together with
// its resolved entity spans, in ascending Start order.
//
// Candidates come from rec when it yields at least one span; otherwise a
// character-class scan of the buffer supplies them, tagged KindDetected.
// Each candidate is expanded to its maximal extent; if the expansion would
// overlap another candidate's original interval the candidate is kept
// unchanged. An expansion that actually grew the span is submitted to corr,
// whose non-nil result replaces the span as KindCorrected.
//
// A recognizer or corrector error aborts the whole call.
func (r *Resolver) Resolve(ctx context.Context, query string, rec Recognizer, corr Corrector, cfg ClassConfig) (string, []Span, error) {
	started := time.Now()
	stats := ResolveStats{}
	defer func() {
		stats.Duration = time.Since(started)
		r.metrics.ObserveResolve(stats)
	}()

	if err := cfg.Validate(); err != nil {
		stats.Err = err
		return "", nil, err
	}

	buf := textnorm.Normalize(query)

	candidates, fallback, err := r.gatherCandidates(ctx, buf, rec, cfg)
	if err != nil {
		stats.Err = err
		return "", nil, err
	}
	stats.Candidates = len(candidates)
	stats.Fallback = fallback

	spans := make([]Span, 0, len(candidates))
	for i := range candidates {
		span, vetoed, err := r.resolveOne(ctx, buf, i, candidates, corr, cfg)
		if err != nil {
			stats.Err = err
			return "", nil, err
		}
		if vetoed {
			stats.Vetoed++
		}
		switch span.Kind {
		case KindCorrected:
			stats.Corrected++
		case KindDetected:
			stats.Detected++
		default:
			stats.Recognized++
		}
		spans = append(spans, span)
	}

	r.logger.Debug("resolved spans",
		logging.Int("candidates", len(candidates)),
		logging.Int("spans", len(spans)),
		logging.Bool("fallback", fallback),
	)
	return buf, spans, nil
}

// gatherCandidates asks the recognizer first and falls back to the
// character-class scan when it yields nothing.
func (r *Resolver) gatherCandidates(ctx context.Context, buf string, rec Recognizer, cfg ClassConfig) ([]Span, bool, error) {
	if rec != nil {
		found, err := rec.Recognize(ctx, buf)
		if err != nil {
			return nil, false, errors.Wrap(err, errors.ErrCodeRecognizerFailed, "recognizer failed")
		}
		if len(found) > 0 {
			candidates := make([]Span, len(found))
			copy(candidates, found)
			for i := range candidates {
				candidates[i].Kind = KindRecognized
			}
			sort.SliceStable(candidates, func(i, j int) bool {
				return candidates[i].Start < candidates[j].Start
			})
			return candidates, false, nil
		}
	}

	runs := textnorm.DetectRuns(buf, cfg.CustomChars, cfg.StartAnchored, cfg.EndAnchored)
	candidates := make([]Span, 0, len(runs))
	for _, run := range runs {
		candidates = append(candidates, Span{
			Text:  run.Text,
			Start: run.Start,
			End:   run.End,
			Kind:  KindDetected,
		})
	}
	return candidates, true, nil
}

// resolveOne expands candidate idx, vetoes expansions that collide with the
// original interval of any other candidate, and runs the corrector when the
// expansion grew the span.
func (r *Resolver) resolveOne(ctx context.Context, buf string, idx int, all []Span, corr Corrector, cfg ClassConfig) (Span, bool, error) {
	cand := all[idx]

	expanded := textnorm.Expand(buf, cand.Text, cfg.CustomChars, cfg.ForbiddenStartChars, cfg.ForbiddenEndChars)
	if expanded == cand.Text {
		return cand, false, nil
	}

	byteIdx := strings.Index(buf, expanded)
	if byteIdx < 0 {
		return cand, false, nil
	}
	expStart := utf8.RuneCountInString(buf[:byteIdx])
	expEnd := expStart + utf8.RuneCountInString(expanded)

	for j := range all {
		if j == idx {
			continue
		}
		if expStart < all[j].End && expEnd > all[j].Start {
			r.logger.Debug("expansion vetoed by neighbouring candidate",
				logging.String("candidate", cand.Text),
				logging.String("expanded", expanded),
				logging.Int("neighbour_start", all[j].Start),
				logging.Int("neighbour_end", all[j].End),
			)
			return cand, true, nil
		}
	}

	if corr == nil {
		return cand, false, nil
	}

	result, err := corr.Correct(ctx, cand.Text, expanded, cand.Start, cand.End)
	if err != nil {
		return Span{}, false, errors.Wrap(err, errors.ErrCodeCorrectorFailed, "corrector failed")
	}
	if result == nil {
		return cand, false, nil
	}

	corrected := *result
	corrected.Kind = KindCorrected
	return corrected, false, nil
}
