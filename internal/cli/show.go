package cli

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/hdrbatch/internal/planner"
)

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <plan-file>",
		Short: "Print a plan file written by 'plan --plan-file'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()

			plans, err := planner.ReadPlans(args[0])
			if err != nil {
				return err
			}
			printPlans(cmd.OutOrStdout(), plans)
			return nil
		},
	}
}
