package cli

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/hdrbatch/internal/display"
	"github.com/backmassage/hdrbatch/internal/pipeline"
)

func newPlanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <file-or-folder>...",
		Short: "Group files into brackets and print the merge plan",
		Long: `Discover the files, group each folder (and the loose files) into brackets
and print one merge job per bracket. With --plan-file the plans are also
written as YAML for the merge step.

Exit code: 0 if every batch grouped, 1 otherwise`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()
			display.PrintBanner(cmd.OutOrStdout())

			plans, _, err := pipeline.Run(cmd.Context(), &a.cfg, a.log, args)
			printPlans(cmd.OutOrStdout(), plans)
			if isGroupingError(err) {
				return ErrFailed
			}
			return err
		},
	}
}
