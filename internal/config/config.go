// Package config holds runtime configuration: defaults, YAML file loading,
// CLI flag binding, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = ".hdrbatch.yaml"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then [LoadFile], then CLI flags, and passed by pointer to the packages
// that need it.
type Config struct {
	// Grouping.
	Interval        int  // Exposures per fixed-interval bracket. Default: 3.
	StrictManifests bool // Reject files listed by more than one manifest.

	// Display.
	MaxItems int // Max range tokens shown per summary. Default: 20.

	// Discovery.
	Extensions []string // Allowed extensions, lowercase, no dot. Manifests need "txt".
	Excludes   []string // Base names skipped during discovery (e.g. "Thumbs.db").
	Recursive  bool     // Descend into subfolders; each folder is its own batch.

	// Planning output.
	OutputDir string // Where merged HDRs go. Default: next to the first exposure.
	OutputExt string // Merged file extension. Default: "hdr".
	PlanFile  string // Optional YAML plan output path.

	// Execution.
	Workers int // Batches planned concurrently. Default: 4.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		Interval: 3,
		MaxItems: 20,
		Extensions: []string{
			"jpg", "jpeg", "png", "tif", "tiff", "exr", "hdr",
			"cr2", "cr3", "nef", "arw", "dng", "orf", "rw2", "raf",
			"txt",
		},
		Excludes:  []string{"Thumbs.db", ".DS_Store"},
		OutputExt: "hdr",
		Workers:   4,
		ColorMode: ColorAuto,
	}
}

// Validate checks numeric limits and the color mode, and normalizes
// Extensions to lowercase without a leading dot.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be a positive integer (got %d)", c.Interval)
	}
	if c.MaxItems <= 0 {
		return fmt.Errorf("max items must be a positive integer (got %d)", c.MaxItems)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be a positive integer (got %d)", c.Workers)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	exts := make([]string, 0, len(c.Extensions))
	for _, e := range c.Extensions {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			exts = append(exts, e)
		}
	}
	if len(exts) == 0 {
		return errors.New("at least one file extension must be allowed")
	}
	c.Extensions = exts

	c.OutputExt = strings.TrimPrefix(strings.TrimSpace(c.OutputExt), ".")
	if c.OutputExt == "" {
		return errors.New("output extension must not be empty")
	}
	return nil
}

// AllowsExtension reports whether path has one of the allowed extensions.
// Call after [Config.Validate].
func (c *Config) AllowsExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, e := range c.Extensions {
		if strings.HasSuffix(lower, "."+e) {
			return true
		}
	}
	return false
}

// Excluded reports whether a base name is in Excludes (case-insensitive).
func (c *Config) Excluded(name string) bool {
	for _, x := range c.Excludes {
		if strings.EqualFold(x, name) {
			return true
		}
	}
	return false
}
