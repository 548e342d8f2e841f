package bracket

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is matched (via errors.Is) by every [InvalidArgumentError].
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a non-positive interval size or item limit.
type InvalidArgumentError struct {
	Name  string
	Value int
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s must be a positive integer (got %d)", e.Name, e.Value)
}

// Is makes errors.Is(err, ErrInvalidArgument) succeed.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ManifestReadError reports a manifest that could not be opened or read.
type ManifestReadError struct {
	Path string
	Err  error
}

func (e *ManifestReadError) Error() string {
	return fmt.Sprintf("read manifest %q: %v", e.Path, e.Err)
}

func (e *ManifestReadError) Unwrap() error { return e.Err }

// BracketSizeMismatchError reports an unclaimed file count that the interval
// size does not divide.
type BracketSizeMismatchError struct {
	Expected int // interval size (divisor)
	Actual   int // unclaimed file count
}

func (e *BracketSizeMismatchError) Error() string {
	return fmt.Sprintf("bad number of files left: expected a multiple of %d, got %d", e.Expected, e.Actual)
}

// DuplicateMemberError is returned in strict mode when a file is claimed
// more than once across manifests.
type DuplicateMemberError struct {
	Path      string
	Manifests []string
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("%q is listed more than once (manifests: %s)", e.Path, strings.Join(e.Manifests, ", "))
}
