package pipeline

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/hdrbatch/internal/term"
)

// progress counts finished batches. The zero value is a no-op, used when
// stdout is not a terminal or verbose logging would interleave with the bar.
type progress struct {
	bar *progressbar.ProgressBar
}

func newProgress(total int, verbose bool) progress {
	if verbose || !term.IsTerminal(os.Stdout) {
		return progress{}
	}
	return progress{bar: newBar(total, os.Stdout)}
}

func newBar(total int, w io.Writer) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(term.Enabled()),
		progressbar.OptionSetDescription("grouping"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	_ = bar.RenderBlank()
	return bar
}

func (p progress) done() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
