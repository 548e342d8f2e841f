package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/backmassage/hdrbatch/internal/naming"
	"github.com/backmassage/hdrbatch/internal/ranges"
)

func newRangesCommand(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "ranges [file]...",
		Short: "Collapse file names into numeric ranges",
		Long: `Sort the given names in natural order and collapse consecutive numbered
files (prefix_NUMBER.ext) into "first:last" tokens, one per line. Names are
read from standard input, one per line, when none are given. The files do
not need to exist.

At most --max-items tokens are printed unless --all is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()

			names := args
			if len(names) == 0 {
				var err error
				if names, err = readLines(cmd); err != nil {
					return err
				}
			}

			tokens := ranges.Runs(naming.SortNatural(names))
			if !all {
				tokens = ranges.Truncate(tokens, a.cfg.MaxItems)
			}
			for _, t := range tokens {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Print every token, ignoring --max-items")
	return cmd
}

// readLines returns the non-blank lines of the command's input.
func readLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	return lines, nil
}
