package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/backmassage/hdrbatch/internal/bracket"
	"github.com/backmassage/hdrbatch/internal/display"
	"github.com/backmassage/hdrbatch/internal/planner"
)

var (
	sourceColor   = color.New(color.FgHiWhite, color.Bold)
	manifestColor = color.New(color.FgHiCyan)
	outputColor   = color.New(color.FgHiGreen)
)

// printPlans lists every bracket of every plan with its collapsed inputs.
func printPlans(w io.Writer, plans []*planner.Plan) {
	for _, p := range plans {
		fmt.Fprintln(w)
		sourceColor.Fprintf(w, "%s", p.Source)
		fmt.Fprintf(w, "  (%d files, %d brackets, interval %d)\n", p.Files, len(p.Brackets), p.Interval)
		for _, d := range p.Duplicates {
			fmt.Fprintf(w, "  ! listed more than once: %s\n", d)
		}
		for _, b := range p.Brackets {
			fmt.Fprintf(w, "  [%d] ", b.Index)
			if b.Kind == planner.KindManifest {
				manifestColor.Fprintf(w, "%s", filepath.Base(b.Manifest))
			} else {
				fmt.Fprintf(w, "%d exposures", len(b.Inputs))
			}
			if b.Output != "" {
				fmt.Fprint(w, " -> ")
				outputColor.Fprintf(w, "%s", b.Output)
			}
			fmt.Fprintln(w)
			fmt.Fprint(w, display.FormatTokens(b.Display, "      "))
		}
	}
}

// isGroupingError reports whether err came from grouping a batch rather
// than from discovery or I/O around it.
func isGroupingError(err error) bool {
	var sizeErr *bracket.BracketSizeMismatchError
	var readErr *bracket.ManifestReadError
	var dupErr *bracket.DuplicateMemberError
	return errors.As(err, &sizeErr) || errors.As(err, &readErr) || errors.As(err, &dupErr)
}
