package config

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for YAML decoding. Pointer fields tell "absent"
// apart from a zero value so only keys present in the file override.
type fileConfig struct {
	Interval        *int      `yaml:"interval"`
	StrictManifests *bool     `yaml:"strict_manifests"`
	MaxItems        *int      `yaml:"max_items"`
	Extensions      *[]string `yaml:"extensions"`
	Excludes        *[]string `yaml:"excludes"`
	Recursive       *bool     `yaml:"recursive"`
	OutputDir       *string   `yaml:"output_dir"`
	OutputExt       *string   `yaml:"output_ext"`
	PlanFile        *string   `yaml:"plan_file"`
	Workers         *int      `yaml:"workers"`
	Verbose         *bool     `yaml:"verbose"`
	Color           *string   `yaml:"color"`
	LogFile         *string   `yaml:"log_file"`
}

// LoadFile merges the YAML file at path into cfg. A missing file is not an
// error; a malformed one is. Unknown keys are rejected.
func LoadFile(path string, cfg *Config) error {
	return MergeFile(path, cfg, nil)
}

// MergeFile is [LoadFile] for use after flag parsing: keys whose flag was set
// on the command line (fs.Changed) keep the flag value, so the precedence
// is defaults < file < flags. A nil fs merges every key.
func MergeFile(path string, cfg *Config, fs *pflag.FlagSet) error {
	f, err := os.Open(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	changed := func(string) bool { return false }
	if fs != nil {
		changed = fs.Changed
	}
	fc.apply(cfg, changed)
	return nil
}

func (fc *fileConfig) apply(cfg *Config, changed func(flag string) bool) {
	set := func(flag string, fn func()) {
		if !changed(flag) {
			fn()
		}
	}
	set(flagInterval, func() { setIf(&cfg.Interval, fc.Interval) })
	set(flagStrict, func() { setIf(&cfg.StrictManifests, fc.StrictManifests) })
	set(flagMaxItems, func() { setIf(&cfg.MaxItems, fc.MaxItems) })
	set(flagExtensions, func() { setIf(&cfg.Extensions, fc.Extensions) })
	set(flagExcludes, func() { setIf(&cfg.Excludes, fc.Excludes) })
	set(flagRecursive, func() { setIf(&cfg.Recursive, fc.Recursive) })
	set(flagOutputDir, func() { setIf(&cfg.OutputDir, fc.OutputDir) })
	set(flagOutputExt, func() { setIf(&cfg.OutputExt, fc.OutputExt) })
	set(flagPlanFile, func() { setIf(&cfg.PlanFile, fc.PlanFile) })
	set(flagWorkers, func() { setIf(&cfg.Workers, fc.Workers) })
	set(flagVerbose, func() { setIf(&cfg.Verbose, fc.Verbose) })
	set(flagLog, func() { setIf(&cfg.LogFile, fc.LogFile) })
	if fc.Color != nil && !changed(flagColor) && !changed(flagNoColor) {
		cfg.ColorMode = ColorMode(*fc.Color)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
