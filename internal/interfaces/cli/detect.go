package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NolinearTang/data-correct/pkg/textnorm"
)

type detectResult struct {
	Text string         `json:"text"`
	Runs []textnorm.Run `json:"runs"`
}

func (r detectResult) TableHeaders() []string {
	return []string{"TEXT", "START", "END"}
}

func (r detectResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Runs))
	for _, run := range r.Runs {
		rows = append(rows, []string{
			run.Text,
			strconv.Itoa(run.Start),
			strconv.Itoa(run.End),
		})
	}
	return rows
}

// NewDetectCmd creates the detect subcommand.
func NewDetectCmd() *cobra.Command {
	var (
		customChars   string
		startAnchored bool
		endAnchored   bool
		skipNormalize bool
	)

	cmd := &cobra.Command{
		Use:   "detect <text>...",
		Short: "Find maximal character-class runs in text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("custom-chars") {
				customChars = cliCtx.Config.Resolver.Class.CustomChars
			}

			text := strings.Join(args, " ")
			if !skipNormalize {
				text = textnorm.Normalize(text)
			}

			runs := textnorm.DetectRuns(text, customChars, startAnchored, endAnchored)
			return PrintResult(cmd, detectResult{Text: text, Runs: runs})
		},
	}

	cmd.Flags().StringVar(&customChars, "custom-chars", "", "extra runes that count as entity characters")
	cmd.Flags().BoolVar(&startAnchored, "start-anchored", false, "keep only a run starting at offset 0")
	cmd.Flags().BoolVar(&endAnchored, "end-anchored", false, "keep only a run ending at the end of the text")
	cmd.Flags().BoolVar(&skipNormalize, "no-normalize", false, "scan the text as given, without normalizing first")

	return cmd
}
