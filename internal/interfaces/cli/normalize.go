package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NolinearTang/data-correct/pkg/textnorm"
)

// NewNormalizeCmd creates the normalize subcommand.
func NewNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Canonicalize text (width folding, lowercasing, space cleanup)",
		Long:  "Normalize folds fullwidth characters, lowercases, strips invisible\ncharacters, maps exotic spaces to plain ones, and collapses runs of\nspaces. Without arguments it normalizes each line read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return PrintResult(cmd, textnorm.Normalize(strings.Join(args, " ")))
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for scanner.Scan() {
				if err := PrintResult(cmd, textnorm.Normalize(scanner.Text())); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
}
