package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/hdrbatch/internal/bracket"
	"github.com/backmassage/hdrbatch/internal/config"
	"github.com/backmassage/hdrbatch/internal/naming"
	"github.com/backmassage/hdrbatch/internal/ranges"
)

// Planner builds plans for any number of batches. [Planner.BuildPlan] is
// safe for concurrent use; [Planner.ResolveOutputs] makes output paths unique
// across plans and must be called in a fixed order for stable results.
type Planner struct {
	cfg      *config.Config
	resolver *naming.CollisionResolver
	now      func() time.Time
}

// New returns a Planner using cfg's interval, item limit and output settings.
func New(cfg *config.Config) *Planner {
	return &Planner{
		cfg:      cfg,
		resolver: naming.NewCollisionResolver(),
		now:      time.Now,
	}
}

// BuildPlan produces the plan for one batch. files is the batch's full,
// naturally sorted file list (manifests included) and res its grouping.
// Output paths are the requested ones; collisions with other plans are left
// to [Planner.ResolveOutputs].
//
// Flow:
//  1. Summary: collapse the image files for display
//  2. For each sequence: kind, display tokens, output path
func (p *Planner) BuildPlan(source string, files []string, res bracket.Result) (*Plan, error) {
	_, images := bracket.SplitManifests(files)
	summary, err := ranges.Collapse(images, p.cfg.MaxItems)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", source, err)
	}

	plan := &Plan{
		ID:         uuid.NewString(),
		Created:    p.now().UTC(),
		Source:     source,
		Interval:   p.cfg.Interval,
		Files:      len(images),
		Summary:    summary,
		Duplicates: res.Duplicates,
		Brackets:   make([]BracketPlan, 0, len(res.Sequences)),
	}

	for i, seq := range res.Sequences {
		bp := BracketPlan{
			Index:    i + 1,
			Kind:     KindInterval,
			Manifest: seq.Manifest,
			Inputs:   seq.Files,
		}
		if seq.FromManifest() {
			bp.Kind = KindManifest
		}

		bp.Display, err = ranges.Collapse(naming.SortNatural(seq.Files), p.cfg.MaxItems)
		if err != nil {
			return nil, fmt.Errorf("summarize bracket %d of %s: %w", bp.Index, source, err)
		}

		if len(seq.Files) > 0 {
			bp.Output = naming.OutputPath(seq.Files[0], p.cfg.OutputDir, p.cfg.OutputExt)
		}
		plan.Brackets = append(plan.Brackets, bp)
	}
	return plan, nil
}

// ResolveOutputs renames outputs of plan that collide with an output of any
// plan resolved earlier by this Planner. The first plan to claim a path
// keeps it, so callers resolve plans in input order.
func (p *Planner) ResolveOutputs(plan *Plan) {
	for i := range plan.Brackets {
		b := &plan.Brackets[i]
		if b.Output == "" {
			continue
		}
		b.Output = p.resolver.Resolve(fmt.Sprintf("%s#%d", plan.Source, b.Index), b.Output)
	}
}
