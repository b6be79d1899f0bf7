package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NolinearTang/data-correct/internal/chatlog"
	"github.com/NolinearTang/data-correct/pkg/entity"
	"github.com/NolinearTang/data-correct/pkg/errors"
)

// NewChatlogCmd creates the chatlog command group.
func NewChatlogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatlog",
		Short: "Process multi-turn chat log exports",
	}
	cmd.AddCommand(newChatlogProcessCmd(), newChatlogStatsCmd())
	return cmd
}

func chatlogOptions(cmd *cobra.Command, cliCtx *CLIContext, maxRounds int) (chatlog.Options, error) {
	cfg := cliCtx.Config.Chatlog
	delim := []rune(cfg.Delimiter)
	if len(delim) != 1 {
		return chatlog.Options{}, errors.Newf(errors.ErrCodeValidation,
			"delimiter must be a single rune, got %q", cfg.Delimiter)
	}

	opts := chatlog.Options{
		Delimiter:   delim[0],
		TimeLayouts: cfg.TimeLayouts,
		MaxRounds:   cfg.MaxRounds,
	}
	if cmd.Flags().Changed("max-rounds") {
		opts.MaxRounds = maxRounds
	}
	return opts, nil
}

func newChatlogProcessCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		maxRounds  int
		annotate   bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Build sliding context windows from a chat log export",
		Long:  "Process loads a CSV or TSV chat log, normalizes its text, orders rounds\nby session and time, drops oversized sessions, and emits one context\nwindow per round (previous question, previous answer, question).",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			opts, err := chatlogOptions(cmd, cliCtx, maxRounds)
			if err != nil {
				return err
			}

			var resolver *entity.Resolver
			doAnnotate := cliCtx.Config.Chatlog.Annotate
			if cmd.Flags().Changed("annotate") {
				doAnnotate = annotate
			}
			if doAnnotate {
				var metrics entity.Metrics
				if cliCtx.Metrics != nil {
					metrics = cliCtx.Metrics
				}
				resolver = entity.NewResolver(cliCtx.Logger, metrics)
			}

			var metrics chatlog.Metrics
			if cliCtx.Metrics != nil {
				metrics = cliCtx.Metrics
			}
			pipeline := chatlog.NewPipeline(opts, resolver, cliCtx.Config.Resolver.Class, cliCtx.Logger, metrics)

			windows, summary, err := pipeline.Run(cmd.Context(), inputPath)
			if err != nil {
				return err
			}

			if outputPath != "" {
				if err := chatlog.WriteFile(outputPath, windows, opts.Delimiter); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d windows to %s\n", len(windows), outputPath)
				return PrintResult(cmd, summaryResult{summary})
			}
			if err := chatlog.Write(cmd.OutOrStdout(), windows, opts.Delimiter); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "chat log file to read")
	cmd.Flags().StringVarP(&outputPath, "output", "O", "", "file to write windows to (default: stdout)")
	cmd.Flags().IntVar(&maxRounds, "max-rounds", 0, "drop sessions with more rounds than this (0 disables)")
	cmd.Flags().BoolVar(&annotate, "annotate", false, "resolve entity spans in each question")
	cmd.MarkFlagRequired("input")

	return cmd
}

type summaryResult struct {
	chatlog.Summary
}

func (s summaryResult) TableHeaders() []string {
	return []string{"METRIC", "VALUE"}
}

func (s summaryResult) TableRows() [][]string {
	rows := [][]string{
		{"records", strconv.Itoa(s.Records)},
		{"sessions", strconv.Itoa(s.Sessions)},
		{"users", strconv.Itoa(s.Users)},
		{"empty_questions", strconv.Itoa(s.EmptyQuestions)},
		{"empty_answers", strconv.Itoa(s.EmptyAnswers)},
		{"question_len_mean", strconv.FormatFloat(s.QuestionLen.Mean, 'f', 2, 64)},
		{"question_len_min", strconv.Itoa(s.QuestionLen.Min)},
		{"question_len_max", strconv.Itoa(s.QuestionLen.Max)},
	}

	users := make([]string, 0, len(s.PerUser))
	for user := range s.PerUser {
		users = append(users, user)
	}
	sort.Strings(users)
	for _, user := range users {
		rows = append(rows, []string{"user:" + user, strconv.Itoa(s.PerUser[user])})
	}
	return rows
}

func newChatlogStatsCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a chat log export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			opts, err := chatlogOptions(cmd, cliCtx, 0)
			if err != nil {
				return err
			}
			// Stats describe the raw export, so the round filter is off.
			opts.MaxRounds = 0

			var metrics chatlog.Metrics
			if cliCtx.Metrics != nil {
				metrics = cliCtx.Metrics
			}
			loader := chatlog.NewLoader(opts, cliCtx.Logger, metrics)
			records, err := loader.LoadFile(inputPath)
			if err != nil {
				return err
			}
			chatlog.NormalizeContent(records)
			return PrintResult(cmd, summaryResult{chatlog.Stats(records)})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "chat log file to read")
	cmd.MarkFlagRequired("input")

	return cmd
}
