package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/backmassage/hdrbatch/internal/bracket"
	"github.com/backmassage/hdrbatch/internal/config"
	"github.com/backmassage/hdrbatch/internal/display"
	"github.com/backmassage/hdrbatch/internal/logging"
	"github.com/backmassage/hdrbatch/internal/planner"
)

// batchResult is the outcome of planning one batch.
type batchResult struct {
	plan *planner.Plan
	err  error
	done bool // false when the batch was never scheduled
}

// Run is the top-level batch entry point. It discovers batches, plans them
// on cfg.Workers goroutines, resolves output collisions in discovery order,
// logs a summary and, when cfg.PlanFile is set, writes every plan to it.
// Plans are returned in discovery order.
//
// A batch that fails to group is logged and counted; the other batches still
// run. The returned error wraps the first failure, or reports cancellation.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, items []string) ([]*planner.Plan, RunStats, error) {
	var stats RunStats

	batches, err := Discover(items, cfg, log)
	if err != nil {
		return nil, stats, err
	}
	stats.Batches = len(batches)
	logBatchHeader(cfg, log, batches)

	p := planner.New(cfg)
	results := planAll(ctx, cfg, log, p, batches)

	var plans []*planner.Plan
	var firstErr error
	for i, r := range results {
		b := batches[i]
		switch {
		case !r.done:
			stats.Skipped++
			continue
		case r.err != nil:
			stats.Failed++
			log.Error("%s: %v", b.Source, r.err)
			logFailureHint(log, r.err)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", b.Source, r.err)
			}
			continue
		}
		p.ResolveOutputs(r.plan)
		plans = append(plans, r.plan)
		stats.Files += r.plan.Files
		stats.Brackets += len(r.plan.Brackets)
		stats.Manifests += r.plan.Manifests()
		stats.Duplicates += len(r.plan.Duplicates)
		stats.TotalInputBytes += b.Bytes
		logPlan(cfg, log, r.plan)
	}

	logSummary(log, &stats)

	if cfg.PlanFile != "" && len(plans) > 0 {
		if err := planner.WritePlans(cfg.PlanFile, plans); err != nil {
			return plans, stats, err
		}
		log.Success("Plan written to %s", cfg.PlanFile)
	}

	if ctx.Err() != nil {
		return plans, stats, fmt.Errorf("interrupted: %w", ctx.Err())
	}
	return plans, stats, firstErr
}

// planAll fans batches out to at most cfg.Workers goroutines. Once ctx is
// cancelled no further batch is scheduled; running ones finish. Output
// collisions are not resolved here: worker completion order varies.
func planAll(ctx context.Context, cfg *config.Config, log *logging.Logger, p *planner.Planner, batches []Batch) []batchResult {
	results := make([]batchResult, len(batches))
	bar := newProgress(len(batches), log.Verbose())

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range batches {
		if ctx.Err() == nil {
			select {
			case <-ctx.Done():
			case sem <- struct{}{}:
			}
		}
		if ctx.Err() != nil {
			log.Warn("Interrupted, %d batch(es) not planned", len(batches)-i)
			break
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			plan, err := planBatch(cfg, p, batches[i])
			results[i] = batchResult{plan: plan, err: err, done: true}
			log.Debug("Planned %s (%d files)", batches[i].Source, len(batches[i].Files))
			bar.done()
		}(i)
	}

	wg.Wait()
	bar.finish()
	return results
}

// planBatch groups one batch and builds its plan.
func planBatch(cfg *config.Config, p *planner.Planner, b Batch) (*planner.Plan, error) {
	res, err := bracket.Group(b.Files, cfg.Interval, bracket.Options{StrictManifests: cfg.StrictManifests})
	if err != nil {
		return nil, err
	}
	return p.BuildPlan(b.Source, b.Files, res)
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, batches []Batch) {
	files := 0
	for _, b := range batches {
		files += len(b.Files)
	}
	log.Info("Found %d files in %d batch(es)", files, len(batches))
	log.Info("Interval: %d exposures per bracket", cfg.Interval)
	if cfg.StrictManifests {
		log.Info("Manifests: strict (a file may belong to one manifest only)")
	}
	if cfg.OutputDir != "" {
		log.Info("Output: %s (*.%s)", cfg.OutputDir, cfg.OutputExt)
	} else {
		log.Info("Output: next to the first exposure (*.%s)", cfg.OutputExt)
	}
	log.Info("")
}

func logPlan(cfg *config.Config, log *logging.Logger, plan *planner.Plan) {
	log.Info("%s: %d files, %d bracket(s)", plan.Source, plan.Files, len(plan.Brackets))
	for _, line := range display.FormatTokenLines(plan.Summary, "  ") {
		log.Info("%s", line)
	}
	for _, d := range plan.Duplicates {
		log.Warn("  Listed by more than one manifest: %s", filepath.Base(d))
	}
	for _, b := range plan.Brackets {
		label := fmt.Sprintf("interval of %d", cfg.Interval)
		if b.Kind == planner.KindManifest {
			label = "manifest " + filepath.Base(b.Manifest)
		}
		if len(b.Inputs) == 0 {
			log.Warn("  [%d] %s lists no files", b.Index, label)
			continue
		}
		log.Debug("  [%d] %s -> %s", b.Index, label, b.Output)
		for _, line := range display.FormatTokenLines(b.Display, "      ") {
			log.Debug("%s", line)
		}
	}
}

// logFailureHint adds an actionable line for errors the user can fix by
// changing parameters.
func logFailureHint(log *logging.Logger, err error) {
	var sizeErr *bracket.BracketSizeMismatchError
	var readErr *bracket.ManifestReadError
	var dupErr *bracket.DuplicateMemberError
	switch {
	case errors.As(err, &sizeErr):
		log.Warn("  Adjust --interval or add a manifest for the odd exposures (try 'hdrbatch check')")
	case errors.As(err, &readErr):
		log.Warn("  Check that %s exists and is readable", readErr.Path)
	case errors.As(err, &dupErr):
		log.Warn("  Remove the duplicate entry or drop --strict-manifests")
	}
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d planned, %d failed", stats.Planned(), stats.Failed)
	log.Info("Summary report:")
	log.Info("  Files: %d (%s)", stats.Files, display.FormatBytes(stats.TotalInputBytes))
	log.Info("  Brackets: %d (%d from manifests)", stats.Brackets, stats.Manifests)
	if stats.Duplicates > 0 {
		log.Warn("  Files listed by more than one manifest: %d", stats.Duplicates)
	}
	if stats.Failed == 0 {
		log.Success("  All batches grouped")
	}
}
