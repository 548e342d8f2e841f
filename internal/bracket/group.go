package bracket

// Sequence is one HDR source: the exposures merged into a single image.
type Sequence struct {
	Files []string
	// Manifest is the manifest that declared the bracket, or "" for a
	// fixed-interval chunk.
	Manifest string
}

// FromManifest reports whether the sequence was declared by a manifest.
func (s Sequence) FromManifest() bool { return s.Manifest != "" }

// Result is the outcome of [Group].
type Result struct {
	Sequences  []Sequence
	Duplicates []string
}

// Group is the full grouping pass: manifest brackets first, then the
// unclaimed images chunked by size. Manifest sequences precede fixed ones in
// the result. An empty file list yields an empty Result without validating
// anything else.
func Group(files []string, size int, opts Options) (Result, error) {
	if len(files) == 0 {
		return Result{}, nil
	}
	if size <= 0 {
		return Result{}, &InvalidArgumentError{Name: "interval", Value: size}
	}

	mr, err := GroupByManifest(files, opts)
	if err != nil {
		return Result{}, err
	}
	fixed, err := GroupFixed(mr.Remaining, size)
	if err != nil {
		return Result{}, err
	}

	seqs := make([]Sequence, 0, len(mr.Sequences)+len(fixed))
	seqs = append(seqs, mr.Sequences...)
	seqs = append(seqs, fixed...)
	return Result{Sequences: seqs, Duplicates: mr.Duplicates}, nil
}
