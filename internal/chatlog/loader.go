package chatlog

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NolinearTang/data-correct/internal/infrastructure/monitoring/logging"
	"github.com/NolinearTang/data-correct/pkg/errors"
)

const (
	colSessionID = "session_id"
	colQuestion  = "question_content"
	colAnswer    = "answer_content"
	colCreatedAt = "create_time"
	colUserName  = "user_name"
)

var requiredColumns = []string{colSessionID, colQuestion, colAnswer, colCreatedAt, colUserName}

// columnIndex maps the required columns to their positions in the header.
// Header names are matched case-insensitively after trimming.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Newf(errors.ErrCodeLogMissingColumn,
			"missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseTime(value string, layouts []string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.Newf(errors.ErrCodeLogBadTimestamp,
		"timestamp %q matches none of the configured layouts", value)
}

// Loader reads chat-log exports.
type Loader struct {
	opts    Options
	logger  logging.Logger
	metrics Metrics
}

// NewLoader builds a Loader. Nil logger and metrics are replaced with
// no-op implementations; a zero delimiter defaults to ','.
func NewLoader(opts Options, logger logging.Logger, metrics Metrics) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if len(opts.TimeLayouts) == 0 {
		opts.TimeLayouts = []string{"2006-01-02 15:04:05"}
	}
	return &Loader{opts: opts, logger: logger.Named("chatlog.loader"), metrics: metrics}
}

// LoadFile reads records from the file at path.
func (l *Loader) LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeLogFileOpen, "open chat log")
	}
	defer f.Close()
	return l.Read(f)
}

// Read parses records from r. Rows with a wrong field count or an
// unparseable timestamp are skipped and counted, not fatal; a malformed
// header is.
func (l *Loader) Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = l.opts.Delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeLogFileParse, "read header")
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	skipped := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeLogFileParse, "read row")
		}
		if len(row) < len(header) {
			l.logger.Warn("skipping short row", logging.Int("line", line))
			skipped++
			continue
		}

		ts, err := parseTime(row[idx[colCreatedAt]], l.opts.TimeLayouts)
		if err != nil {
			l.logger.Warn("skipping row with bad timestamp",
				logging.Int("line", line),
				logging.String("value", row[idx[colCreatedAt]]),
			)
			skipped++
			continue
		}

		records = append(records, Record{
			ID:        uuid.NewString(),
			SessionID: strings.TrimSpace(row[idx[colSessionID]]),
			Question:  row[idx[colQuestion]],
			Answer:    row[idx[colAnswer]],
			UserName:  strings.TrimSpace(row[idx[colUserName]]),
			CreatedAt: ts,
		})
	}

	l.metrics.RecordsLoaded("ok", len(records))
	if skipped > 0 {
		l.metrics.RecordsLoaded("skipped", skipped)
	}
	l.logger.Info("chat log loaded",
		logging.Int("records", len(records)),
		logging.Int("skipped", skipped),
	)
	return records, nil
}
