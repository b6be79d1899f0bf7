package chatlog

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/NolinearTang/data-correct/internal/infrastructure/monitoring/logging"
	"github.com/NolinearTang/data-correct/pkg/entity"
	"github.com/NolinearTang/data-correct/pkg/errors"
	"github.com/NolinearTang/data-correct/pkg/textnorm"
)

// SortByTime orders records by session and then by creation time, keeping
// input order for ties.
func SortByTime(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].SessionID != records[j].SessionID {
			return records[i].SessionID < records[j].SessionID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}

// NormalizeContent canonicalizes the question and answer of every record
// in place.
func NormalizeContent(records []Record) {
	for i := range records {
		records[i].Question = textnorm.Normalize(records[i].Question)
		records[i].Answer = textnorm.Normalize(records[i].Answer)
	}
}

// FilterByRounds drops every session with more rounds than maxRounds and
// returns the survivors plus the number of dropped sessions. maxRounds <= 0
// disables the filter.
func FilterByRounds(records []Record, maxRounds int) ([]Record, int) {
	if maxRounds <= 0 {
		return records, 0
	}

	rounds := make(map[string]int)
	for _, rec := range records {
		rounds[rec.SessionID]++
	}

	dropped := 0
	for _, n := range rounds {
		if n > maxRounds {
			dropped++
		}
	}
	if dropped == 0 {
		return records, 0
	}

	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		if rounds[rec.SessionID] <= maxRounds {
			kept = append(kept, rec)
		}
	}
	return kept, dropped
}

// BuildWindows assembles per-session sliding windows from time-ordered
// records. Each window carries the previous round's question and answer;
// the first round of a session gets empty previous fields.
func BuildWindows(records []Record) []Window {
	windows := make([]Window, 0, len(records))
	for i, rec := range records {
		w := Window{
			SessionID: rec.SessionID,
			UserName:  rec.UserName,
			Question:  rec.Question,
		}
		if i > 0 && records[i-1].SessionID == rec.SessionID {
			w.PrevQuestion = records[i-1].Question
			w.PrevAnswer = records[i-1].Answer
		}
		windows = append(windows, w)
	}
	return windows
}

// Stats aggregates a record set.
func Stats(records []Record) Summary {
	s := Summary{PerUser: make(map[string]int)}
	s.Records = len(records)

	sessions := make(map[string]struct{})
	users := make(map[string]struct{})
	lenSum := 0
	for i, rec := range records {
		sessions[rec.SessionID] = struct{}{}
		users[rec.UserName] = struct{}{}
		s.PerUser[rec.UserName]++

		if rec.Question == "" {
			s.EmptyQuestions++
		}
		if rec.Answer == "" {
			s.EmptyAnswers++
		}

		n := utf8.RuneCountInString(rec.Question)
		lenSum += n
		if i == 0 || n < s.QuestionLen.Min {
			s.QuestionLen.Min = n
		}
		if n > s.QuestionLen.Max {
			s.QuestionLen.Max = n
		}
	}
	s.Sessions = len(sessions)
	s.Users = len(users)
	if s.Records > 0 {
		s.QuestionLen.Mean = float64(lenSum) / float64(s.Records)
	}
	return s
}

var outputHeader = []string{"prev_question", "prev_answer", "question", "session_id", "user_name"}

// Write renders windows as delimited text.
func Write(w io.Writer, windows []Window, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}

	if err := cw.Write(outputHeader); err != nil {
		return errors.Wrap(err, errors.ErrCodeLogFileWrite, "write header")
	}
	for _, win := range windows {
		row := []string{win.PrevQuestion, win.PrevAnswer, win.Question, win.SessionID, win.UserName}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, errors.ErrCodeLogFileWrite, "write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.ErrCodeLogFileWrite, "flush output")
	}
	return nil
}

// WriteFile renders windows to the file at path.
func WriteFile(path string, windows []Window, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeLogFileWrite, "create output file")
	}
	if err := Write(f, windows, delimiter); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.ErrCodeLogFileWrite, "close output file")
	}
	return nil
}

// Pipeline runs the full chat-log flow: normalize, order, filter, window,
// and optionally resolve entity spans in each question.
type Pipeline struct {
	opts     Options
	loader   *Loader
	resolver *entity.Resolver
	class    entity.ClassConfig
	logger   logging.Logger
	metrics  Metrics
}

// NewPipeline builds a Pipeline. resolver may be nil to skip span
// annotation; nil logger and metrics are replaced with no-ops.
func NewPipeline(opts Options, resolver *entity.Resolver, class entity.ClassConfig, logger logging.Logger, metrics Metrics) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Pipeline{
		opts:     opts,
		loader:   NewLoader(opts, logger, metrics),
		resolver: resolver,
		class:    class,
		logger:   logger.Named("chatlog.pipeline"),
		metrics:  metrics,
	}
}

// Run loads the chat log at inputPath and returns its context windows and
// summary statistics.
func (p *Pipeline) Run(ctx context.Context, inputPath string) ([]Window, Summary, error) {
	records, err := p.loader.LoadFile(inputPath)
	if err != nil {
		return nil, Summary{}, err
	}
	return p.Process(ctx, records)
}

// Process runs the in-memory part of the pipeline over records.
func (p *Pipeline) Process(ctx context.Context, records []Record) ([]Window, Summary, error) {
	NormalizeContent(records)
	SortByTime(records)

	records, dropped := FilterByRounds(records, p.opts.MaxRounds)
	if dropped > 0 {
		p.metrics.SessionsFiltered(dropped)
		p.logger.Info("sessions dropped by round limit",
			logging.Int("sessions", dropped),
			logging.Int("max_rounds", p.opts.MaxRounds),
		)
	}

	summary := Stats(records)
	windows := BuildWindows(records)
	p.metrics.WindowsBuilt(len(windows))

	if p.resolver != nil {
		for i := range windows {
			_, spans, err := p.resolver.Resolve(ctx, windows[i].Question, nil, nil, p.class)
			if err != nil {
				return nil, Summary{}, err
			}
			windows[i].Spans = spans
		}
	}
	return windows, summary, nil
}
