// Package check provides the preflight report (hdrbatch check): it predicts
// whether a batch will group cleanly and, when it will not, which interval
// sizes would.
package check

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/hdrbatch/internal/bracket"
	"github.com/backmassage/hdrbatch/internal/config"
)

// MaxSuggestedInterval bounds the interval sizes offered by RunCheck.
const MaxSuggestedInterval = 9

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck reports on one batch without grouping it: file and manifest
// counts, manifest readability, files claimed twice, and whether the
// unclaimed files divide into brackets of cfg.Interval. It returns false
// exactly when grouping the batch would fail. Claimed and unclaimed files
// come from [bracket.GroupByManifest], the same pass grouping uses.
func RunCheck(cfg *config.Config, source string, files []string, log Logger) bool {
	log.Info("=== Check: %s ===", source)

	manifests, images := bracket.SplitManifests(files)
	manifests, images = distinct(manifests), distinct(images)
	log.Info("Files: %d image(s), %d manifest(s)", len(images), len(manifests))

	readable := true
	for _, m := range manifests {
		entries, err := bracket.ReadManifest(m)
		if err != nil {
			log.Error("%v", err)
			readable = false
			continue
		}
		if len(entries) == 0 {
			log.Warn("Manifest %s lists no files", filepath.Base(m))
		} else {
			log.Success("Manifest %s: %d file(s)", filepath.Base(m), len(entries))
		}
		for _, e := range entries {
			if _, err := os.Stat(e); err != nil {
				log.Warn("  %s lists %s, which does not exist", filepath.Base(m), e)
			}
		}
	}
	if !readable {
		return false
	}

	mr, err := bracket.GroupByManifest(files, bracket.Options{})
	if err != nil {
		log.Error("%v", err)
		return false
	}

	ok := checkDuplicates(cfg, mr.Duplicates, log)
	if !checkInterval(cfg.Interval, len(mr.Remaining), log) {
		ok = false
	}
	return ok
}

// checkDuplicates warns about files claimed more than once; in strict mode
// they are errors.
func checkDuplicates(cfg *config.Config, dups []string, log Logger) bool {
	report := log.Warn
	if cfg.StrictManifests {
		report = log.Error
	}
	for _, d := range dups {
		report("%s is listed by more than one manifest entry", d)
	}
	return !cfg.StrictManifests || len(dups) == 0
}

// checkInterval reports whether n unclaimed files split into brackets of
// size, offering sizes that would fit when they do not.
func checkInterval(size, n int, log Logger) bool {
	if n == 0 {
		log.Info("No files left for fixed-interval brackets")
		return true
	}
	if n%size == 0 {
		log.Success("%d unclaimed file(s) form %d bracket(s) of %d", n, n/size, size)
		return true
	}

	log.Error("%d unclaimed file(s) do not divide into brackets of %d (%d left over)", n, size, n%size)
	if fits := SuggestIntervals(n, MaxSuggestedInterval); len(fits) > 0 {
		log.Info("Intervals that fit: %s", joinInts(fits))
	} else {
		log.Info("No interval up to %d fits; list the odd exposures in a manifest", MaxSuggestedInterval)
	}
	return false
}

// SuggestIntervals returns the bracket sizes from 2 to limit, ascending, that
// divide n evenly.
func SuggestIntervals(n, limit int) []int {
	var fits []int
	for size := 2; size <= limit && size <= n; size++ {
		if n%size == 0 {
			fits = append(fits, size)
		}
	}
	return fits
}

// distinct drops repeated paths, keeping the first occurrence of each.
func distinct(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var out []string
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func joinInts(vals []int) string {
	s := ""
	for i, v := range vals {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(v)
	}
	return s
}
