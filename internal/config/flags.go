package config

// This file binds Config fields to command-line flags. Flags write straight
// into the Config they are bound to; --no-color is resolved after parsing by
// [ApplyNegatedFlags].

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flag names, shared with the YAML merge so a set flag wins over the file.
const (
	flagInterval   = "interval"
	flagStrict     = "strict-manifests"
	flagMaxItems   = "max-items"
	flagExtensions = "ext"
	flagExcludes   = "exclude"
	flagRecursive  = "recursive"
	flagOutputDir  = "output-dir"
	flagOutputExt  = "output-ext"
	flagPlanFile   = "plan-file"
	flagWorkers    = "workers"
	flagVerbose    = "verbose"
	flagColor      = "color"
	flagNoColor    = "no-color"
	flagLog        = "log"
)

// BindFlags registers every Config flag on fs, using cfg's current values
// as defaults.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	// Grouping.
	fs.IntVarP(&cfg.Interval, flagInterval, "n", cfg.Interval, "Exposures per bracket for files not listed in a manifest")
	fs.BoolVar(&cfg.StrictManifests, flagStrict, cfg.StrictManifests, "Fail when a file is listed by more than one manifest")

	// Display.
	fs.IntVarP(&cfg.MaxItems, flagMaxItems, "m", cfg.MaxItems, "Max range tokens per summary")

	// Discovery.
	fs.StringSliceVar(&cfg.Extensions, flagExtensions, cfg.Extensions, "Allowed file extensions (comma-separated)")
	fs.StringSliceVar(&cfg.Excludes, flagExcludes, cfg.Excludes, "File names to skip during discovery")
	fs.BoolVarP(&cfg.Recursive, flagRecursive, "r", cfg.Recursive, "Scan subfolders; each folder is its own batch")

	// Planning output.
	fs.StringVarP(&cfg.OutputDir, flagOutputDir, "o", cfg.OutputDir, "Directory for merged HDR files (default: next to the exposures)")
	fs.StringVar(&cfg.OutputExt, flagOutputExt, cfg.OutputExt, "Extension of merged HDR files")
	fs.StringVarP(&cfg.PlanFile, flagPlanFile, "p", cfg.PlanFile, "Write the bracket plan to this YAML file")

	// Execution.
	fs.IntVarP(&cfg.Workers, flagWorkers, "j", cfg.Workers, "Batches planned concurrently")

	// Display and logging.
	fs.BoolVarP(&cfg.Verbose, flagVerbose, "v", cfg.Verbose, "Verbose output")
	fs.Var(&colorModeValue{&cfg.ColorMode}, flagColor, "Color output: auto | always | never")
	fs.Bool(flagNoColor, false, "Same as --color never")
	fs.StringVarP(&cfg.LogFile, flagLog, "l", cfg.LogFile, "Append logs to file")
}

// ApplyNegatedFlags folds --no-color into cfg after parsing.
func ApplyNegatedFlags(fs *pflag.FlagSet, cfg *Config) {
	if noColor, err := fs.GetBool(flagNoColor); err == nil && noColor {
		cfg.ColorMode = ColorNever
	}
}

// colorModeValue adapts ColorMode to pflag.Value.
type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		*c.p = m
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
