// Command hdrbatch is the CLI entrypoint for the HDR bracket planner.
//
// It builds the cobra command tree, cancels the context on SIGINT/SIGTERM
// so a running plan stops scheduling batches, and maps errors to the exit
// code.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/hdrbatch/internal/cli"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.1.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(version, commit)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrFailed) {
			fmt.Fprintf(os.Stderr, "hdrbatch: %v\n", err)
		}
		return 1
	}
	return 0
}
