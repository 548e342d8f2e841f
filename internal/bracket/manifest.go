package bracket

import (
	"os"
	"slices"
	"strings"
)

// Options tunes manifest handling.
type Options struct {
	// StrictManifests rejects a file claimed by more than one manifest
	// entry instead of reporting it in Duplicates.
	StrictManifests bool
}

// ManifestResult is the outcome of [GroupByManifest].
type ManifestResult struct {
	Sequences  []Sequence // one per manifest, in manifest input order
	Remaining  []string   // unclaimed image files, input order preserved
	Duplicates []string   // files claimed more than once, sorted
}

// IsManifest reports whether path names a manifest (.txt, any case).
func IsManifest(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".txt")
}

// SplitManifests separates manifests from image files, keeping input order
// within each group.
func SplitManifests(files []string) (manifests, images []string) {
	for _, f := range files {
		if IsManifest(f) {
			manifests = append(manifests, f)
		} else {
			images = append(images, f)
		}
	}
	return manifests, images
}

// ReadManifest reads a manifest in full and returns the file paths it lists.
// Entries are separated by commas (line breaks also separate); surrounding
// whitespace is trimmed and empty entries are dropped. Entries are returned
// verbatim otherwise.
func ReadManifest(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestReadError{Path: path, Err: err}
	}
	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	entries := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			entries = append(entries, f)
		}
	}
	return entries, nil
}

// GroupByManifest builds one sequence per manifest in files and removes the
// files they claim from the image pool. The claimed set is computed before
// the pool is filtered, so the pool is walked exactly once. A path given
// more than once in files counts once.
func GroupByManifest(files []string, opts Options) (ManifestResult, error) {
	manifests, images := SplitManifests(files)
	manifests = unique(manifests)

	var seqs []Sequence
	claimedBy := make(map[string][]string)
	for _, m := range manifests {
		entries, err := ReadManifest(m)
		if err != nil {
			return ManifestResult{}, err
		}
		seqs = append(seqs, Sequence{Files: entries, Manifest: m})
		for _, e := range entries {
			claimedBy[e] = append(claimedBy[e], m)
		}
	}

	var dups []string
	for path, owners := range claimedBy {
		if len(owners) > 1 {
			dups = append(dups, path)
		}
	}
	slices.Sort(dups)
	if opts.StrictManifests && len(dups) > 0 {
		return ManifestResult{}, &DuplicateMemberError{Path: dups[0], Manifests: claimedBy[dups[0]]}
	}

	remaining := make([]string, 0, len(images))
	for _, img := range unique(images) {
		if _, claimed := claimedBy[img]; !claimed {
			remaining = append(remaining, img)
		}
	}

	return ManifestResult{Sequences: seqs, Remaining: remaining, Duplicates: dups}, nil
}

// unique drops repeated paths, keeping the first occurrence of each.
func unique(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0:0]
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
