package planner

import "time"

// Kind records how a bracket was formed.
type Kind string

const (
	KindManifest Kind = "manifest" // Declared by a .txt manifest.
	KindInterval Kind = "interval" // Fixed-size chunk of unclaimed files.
)

// BracketPlan is one merge job.
type BracketPlan struct {
	Index    int      `yaml:"index"`
	Kind     Kind     `yaml:"kind"`
	Manifest string   `yaml:"manifest,omitempty"`
	Inputs   []string `yaml:"inputs"`
	Display  []string `yaml:"display"` // collapsed, truncated; display only
	Output   string   `yaml:"output,omitempty"`
}

// Plan holds every bracket found in one batch (one folder, or the loose
// files given on the command line).
type Plan struct {
	ID         string        `yaml:"id"`
	Created    time.Time     `yaml:"created"`
	Source     string        `yaml:"source"`
	Interval   int           `yaml:"interval"`
	Files      int           `yaml:"files"`
	Summary    []string      `yaml:"summary"`
	Duplicates []string      `yaml:"duplicates,omitempty"`
	Brackets   []BracketPlan `yaml:"brackets"`
}

// Manifests counts the manifest-declared brackets.
func (p *Plan) Manifests() int {
	n := 0
	for _, b := range p.Brackets {
		if b.Kind == KindManifest {
			n++
		}
	}
	return n
}

// document is the on-disk layout of a plan file.
type document struct {
	Version int     `yaml:"version"`
	Plans   []*Plan `yaml:"plans"`
}

const documentVersion = 1
