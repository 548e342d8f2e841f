package ranges

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/backmassage/hdrbatch/internal/bracket"
)

// reNumbered matches a numbered leaf such as IMG_0042.cr2.
var reNumbered = regexp.MustCompile(`^([A-Za-z]+)_([0-9]+)\.([A-Za-z0-9]+)$`)

// numbered is the parsed form of a path whose leaf matches reNumbered.
type numbered struct {
	key    string // directory + prefix + extension; runs never cross keys
	number uint64
}

// parseNumbered splits path into directory and leaf (either separator) and
// parses the leaf. Numbers too large for uint64 are treated as unnumbered.
func parseNumbered(path string) (numbered, bool) {
	dir, leaf := "", path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		dir, leaf = path[:i+1], path[i+1:]
	}
	m := reNumbered.FindStringSubmatch(leaf)
	if m == nil {
		return numbered{}, false
	}
	n, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return numbered{}, false
	}
	return numbered{key: dir + m[1] + "." + m[3], number: n}, true
}

// run is the collapser state: the files of the current run and, when the
// run is numbered, its key and last number.
type run struct {
	files []string
	keyed bool
	key   string
	last  uint64
}

// token renders the run: a bare path for one file, "first:last" for more.
func (r *run) token() string {
	if len(r.files) == 1 {
		return r.files[0]
	}
	return r.files[0] + ":" + r.files[len(r.files)-1]
}

// continues reports whether n extends the run by exactly one.
func (r *run) continues(n numbered, ok bool) bool {
	return ok && r.keyed && n.key == r.key && n.number == r.last+1
}

// Runs collapses sorted into range tokens without any length limit. The
// input must already be in natural order; it is not re-sorted.
func Runs(sorted []string) []string {
	var tokens []string
	var cur run
	for _, f := range sorted {
		n, ok := parseNumbered(f)
		if cur.continues(n, ok) {
			cur.files = append(cur.files, f)
			cur.last = n.number
			continue
		}
		if len(cur.files) > 0 {
			tokens = append(tokens, cur.token())
		}
		cur = run{files: []string{f}, keyed: ok, key: n.key, last: n.number}
	}
	if len(cur.files) > 0 {
		tokens = append(tokens, cur.token())
	}
	return tokens
}

// Collapse returns the range tokens for sorted, reduced with [Truncate] so
// the result never exceeds maxItems.
func Collapse(sorted []string, maxItems int) ([]string, error) {
	if maxItems <= 0 {
		return nil, &bracket.InvalidArgumentError{Name: "max items", Value: maxItems}
	}
	return Truncate(Runs(sorted), maxItems), nil
}

// Truncate keeps every Nth token, N = ceil(len(tokens)/maxItems), when there
// are more than maxItems tokens; otherwise tokens is returned unchanged. A
// non-positive maxItems leaves tokens unchanged; use [Collapse] to have it
// rejected instead.
func Truncate(tokens []string, maxItems int) []string {
	if maxItems <= 0 || len(tokens) <= maxItems {
		return tokens
	}
	step := (len(tokens) + maxItems - 1) / maxItems
	out := make([]string, 0, maxItems)
	for i := 0; i < len(tokens); i += step {
		out = append(out, tokens[i])
	}
	return out
}
