// Package chatlog loads multi-turn chat session exports, orders them,
// assembles sliding context windows, and writes the result back out.
package chatlog

import (
	"time"

	"github.com/NolinearTang/data-correct/pkg/entity"
)

// Record is one question/answer round of a chat session.
type Record struct {
	// ID is assigned at load time and is unique per run.
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Question  string    `json:"question_content"`
	Answer    string    `json:"answer_content"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"create_time"`
}

// Window is a sliding context window over one session: the previous round
// plus the current question. The first round of a session has empty
// previous fields.
type Window struct {
	SessionID    string        `json:"session_id"`
	UserName     string        `json:"user_name"`
	PrevQuestion string        `json:"prev_question"`
	PrevAnswer   string        `json:"prev_answer"`
	Question     string        `json:"question"`
	Spans        []entity.Span `json:"spans,omitempty"`
}

// Summary aggregates a record set for reporting.
type Summary struct {
	Records        int            `json:"records"`
	Sessions       int            `json:"sessions"`
	Users          int            `json:"users"`
	EmptyQuestions int            `json:"empty_questions"`
	EmptyAnswers   int            `json:"empty_answers"`
	QuestionLen    LengthStats    `json:"question_length"`
	PerUser        map[string]int `json:"per_user"`
}

// LengthStats describes rune-length distribution of a text column.
type LengthStats struct {
	Mean float64 `json:"mean"`
	Min  int     `json:"min"`
	Max  int     `json:"max"`
}

// Options parameterizes loading and windowing.
type Options struct {
	// Delimiter separates fields in the input, ',' for CSV or '\t' for TSV.
	Delimiter rune
	// TimeLayouts are tried in order against the create_time column.
	TimeLayouts []string
	// MaxRounds drops whole sessions with more rounds than this; zero
	// disables the filter.
	MaxRounds int
}

// Metrics receives pipeline counters. *prometheus.PipelineMetrics satisfies
// it.
type Metrics interface {
	RecordsLoaded(status string, n int)
	SessionsFiltered(n int)
	WindowsBuilt(n int)
}

type nopMetrics struct{}

func (nopMetrics) RecordsLoaded(string, int) {}
func (nopMetrics) SessionsFiltered(int)      {}
func (nopMetrics) WindowsBuilt(int)          {}
