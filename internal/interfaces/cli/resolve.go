package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NolinearTang/data-correct/pkg/entity"
)

type resolveResult struct {
	Query      string        `json:"query"`
	Normalized string        `json:"normalized"`
	Spans      []entity.Span `json:"spans"`
}

func (r resolveResult) TableHeaders() []string {
	return []string{"TEXT", "START", "END", "KIND"}
}

func (r resolveResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Spans))
	for _, span := range r.Spans {
		rows = append(rows, []string{
			span.Text,
			strconv.Itoa(span.Start),
			strconv.Itoa(span.End),
			span.Kind.String(),
		})
	}
	return rows
}

// NewResolveCmd creates the resolve subcommand.
func NewResolveCmd() *cobra.Command {
	var (
		customChars    string
		forbiddenStart string
		forbiddenEnd   string
		startAnchored  bool
		endAnchored    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <text>...",
		Short: "Normalize text and resolve its entity spans",
		Long:  "Resolve runs the full span pipeline: the text is normalized, candidate\nspans are detected, and each candidate is expanded to its maximal\nextent unless the expansion collides with a neighbouring candidate.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			class := cliCtx.Config.Resolver.Class
			if cmd.Flags().Changed("custom-chars") {
				class.CustomChars = customChars
			}
			if cmd.Flags().Changed("forbidden-start") {
				class.ForbiddenStartChars = forbiddenStart
			}
			if cmd.Flags().Changed("forbidden-end") {
				class.ForbiddenEndChars = forbiddenEnd
			}
			if cmd.Flags().Changed("start-anchored") {
				class.StartAnchored = startAnchored
			}
			if cmd.Flags().Changed("end-anchored") {
				class.EndAnchored = endAnchored
			}

			var metrics entity.Metrics
			if cliCtx.Metrics != nil {
				metrics = cliCtx.Metrics
			}
			resolver := entity.NewResolver(cliCtx.Logger, metrics)

			query := strings.Join(args, " ")
			normalized, spans, err := resolver.Resolve(cmd.Context(), query, nil, nil, class)
			if err != nil {
				return err
			}
			return PrintResult(cmd, resolveResult{
				Query:      query,
				Normalized: normalized,
				Spans:      spans,
			})
		},
	}

	cmd.Flags().StringVar(&customChars, "custom-chars", "", "extra runes that count as entity characters")
	cmd.Flags().StringVar(&forbiddenStart, "forbidden-start", "", "runes a span may not grow onto leftward")
	cmd.Flags().StringVar(&forbiddenEnd, "forbidden-end", "", "runes a span may not grow onto rightward")
	cmd.Flags().BoolVar(&startAnchored, "start-anchored", false, "keep only a candidate starting at offset 0")
	cmd.Flags().BoolVar(&endAnchored, "end-anchored", false, "keep only a candidate ending at the end of the text")

	return cmd
}
