package cli

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/hdrbatch/internal/check"
	"github.com/backmassage/hdrbatch/internal/pipeline"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file-or-folder>...",
		Short: "Check that every batch will group cleanly",
		Long: `Report, per batch, the image and manifest counts, manifests that cannot be
read, files listed by more than one manifest, and whether the remaining
files divide into brackets of --interval. When they do not, the interval
sizes that would fit are listed.

Exit code: 0 if every batch passes, 1 otherwise`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()

			batches, err := pipeline.Discover(args, &a.cfg, a.log)
			if err != nil {
				return err
			}

			failed := 0
			for _, b := range batches {
				if !check.RunCheck(&a.cfg, b.Source, b.Files, a.log) {
					failed++
				}
			}
			if failed > 0 {
				a.log.Error("%d of %d batch(es) will not group", failed, len(batches))
				return ErrFailed
			}
			a.log.Success("All %d batch(es) will group", len(batches))
			return nil
		},
	}
}
